package lsp

import (
	"unicode/utf8"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/aarongreenlee/prosemirror-noting/internal/checker"
)

// utf16Len returns the number of UTF-16 code units encoding r; LSP
// positions count characters in those units, not bytes.
func utf16Len(r rune) uint32 {
	if r > 0xFFFF {
		return 2
	}
	return 1
}

// positionToOffset converts a line/character position into a byte
// offset, clamped to the line and document length.
func positionToOffset(content string, pos protocol.Position) int {
	offset := 0
	line := uint32(0)

	for offset < len(content) && line < pos.Line {
		if content[offset] == '\n' {
			line++
		}
		offset++
	}

	var units uint32
	for offset < len(content) && units < pos.Character {
		r, size := utf8.DecodeRuneInString(content[offset:])
		if r == '\n' {
			break
		}
		units += utf16Len(r)
		offset += size
	}
	return offset
}

// offsetToPosition converts a byte offset into a line/character
// position.
func offsetToPosition(content string, offset int) protocol.Position {
	if offset > len(content) {
		offset = len(content)
	}

	var line, character uint32
	for i := 0; i < offset; {
		r, size := utf8.DecodeRuneInString(content[i:])
		if r == '\n' {
			line++
			character = 0
		} else {
			character += utf16Len(r)
		}
		i += size
	}
	return protocol.Position{Line: line, Character: character}
}

// matchesToDiagnostics converts validation matches into LSP
// diagnostics positioned in the given content.
func matchesToDiagnostics(content string, matches []checker.Match) []protocol.Diagnostic {
	var diagnostics []protocol.Diagnostic

	severity := protocol.DiagnosticSeverityWarning
	source := lsName
	for _, m := range matches {
		code := protocol.IntegerOrString{Value: m.Rule}
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range: protocol.Range{
				Start: offsetToPosition(content, m.From),
				End:   offsetToPosition(content, m.To),
			},
			Severity: &severity,
			Source:   &source,
			Code:     &code,
			Message:  m.Annotation,
		})
	}
	return diagnostics
}

func reportDiagnostics(context *glsp.Context, uri string, diagnostics []protocol.Diagnostic) {
	if diagnostics == nil {
		diagnostics = []protocol.Diagnostic{}
	}
	params := protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	}
	// Use the Notify function from the context to send the diagnostics
	context.Notify("textDocument/publishDiagnostics", params)
}
