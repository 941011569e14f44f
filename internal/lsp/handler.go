package lsp

import (
	"bytes"
	"fmt"
	"log"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/aarongreenlee/prosemirror-noting/internal/checker"
	"github.com/aarongreenlee/prosemirror-noting/internal/document"
	"github.com/aarongreenlee/prosemirror-noting/internal/engine"
	"github.com/aarongreenlee/prosemirror-noting/internal/store"
	"github.com/aarongreenlee/prosemirror-noting/internal/utils"
)

func (ls *LanguageServer) initialize(
	context *glsp.Context,
	params *protocol.InitializeParams,
) (any, error) {
	capabilities := ls.handler.CreateServerCapabilities()
	syncKind := protocol.TextDocumentSyncKindIncremental
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: &protocol.True,
		Change:    &syncKind,
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &version,
		},
	}, nil
}

func (ls *LanguageServer) initialized(
	context *glsp.Context,
	params *protocol.InitializedParams,
) error {
	log.Println("Server initialized")
	return nil
}

func (ls *LanguageServer) shutdown(context *glsp.Context) error {
	log.Println("Server shutting down")
	ls.sched.Stop()
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (ls *LanguageServer) textDocumentDidOpen(
	context *glsp.Context,
	params *protocol.DidOpenTextDocumentParams,
) error {
	doc := document.New(params.TextDocument.Text)
	eng := engine.New(doc, checker.DefaultRules())
	ls.restoreFromStore(params.TextDocument.URI, params.TextDocument.Text, eng)
	ls.setEngine(params.TextDocument.URI, eng)

	ls.scheduleValidation(context, params.TextDocument.URI, eng)
	return nil
}

// restoreFromStore seeds eng with the persisted result for uri when
// its checksum still matches content, skipping a full re-check of an
// unchanged file. A stale result is deleted. Reports whether matches
// were restored.
func (ls *LanguageServer) restoreFromStore(uri string, content string, eng *engine.Engine) bool {
	path, err := utils.URI2Path(uri)
	if err != nil {
		return false
	}
	res, err := ls.results.Get(path)
	if err != nil {
		return false
	}
	if !bytes.Equal(res.Checksum, utils.ComputeChecksum([]byte(content))) {
		if err := ls.results.Delete(path); err != nil {
			log.Printf("Failed to delete stale result for %s: %v", path, err)
		}
		return false
	}
	eng.Restore(res.Matches)
	return true
}

func (ls *LanguageServer) textDocumentDidChange(
	context *glsp.Context,
	params *protocol.DidChangeTextDocumentParams,
) error {
	eng, ok := ls.engineFor(params.TextDocument.URI)
	if !ok {
		return fmt.Errorf("document not open: %s", params.TextDocument.URI)
	}

	for _, change := range params.ContentChanges {
		switch contentChange := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			// Full sync: start over with a fresh engine; the old edit
			// log no longer describes the content.
			doc := document.New(contentChange.Text)
			eng = engine.New(doc, checker.DefaultRules())
			ls.setEngine(params.TextDocument.URI, eng)

		case protocol.TextDocumentContentChangeEvent:
			if contentChange.Range == nil {
				continue
			}
			content := eng.Document().Content()
			from := positionToOffset(content, contentChange.Range.Start)
			to := positionToOffset(content, contentChange.Range.End)
			err := eng.Apply(document.Change{
				From: from,
				To:   to,
				Text: contentChange.Text,
			})
			if err != nil {
				return fmt.Errorf("failed to apply change: %w", err)
			}
		}
	}

	ls.scheduleValidation(context, params.TextDocument.URI, eng)
	return nil
}

func (ls *LanguageServer) textDocumentDidSave(
	context *glsp.Context,
	params *protocol.DidSaveTextDocumentParams,
) error {
	eng, ok := ls.engineFor(params.TextDocument.URI)
	if !ok {
		return nil
	}

	path, err := utils.URI2Path(params.TextDocument.URI)
	if err != nil {
		log.Printf("Skipping persistence: %v", err)
		return nil
	}

	content := eng.Document().Content()
	res := store.Result{
		Path:     path,
		Checksum: utils.ComputeChecksum([]byte(content)),
		Time:     eng.Document().LastTime(),
		Matches:  eng.Matches(),
	}
	if err := ls.results.Save(res); err != nil {
		return fmt.Errorf("failed to persist results: %w", err)
	}
	return nil
}

func (ls *LanguageServer) textDocumentDidClose(
	context *glsp.Context,
	params *protocol.DidCloseTextDocumentParams,
) error {
	ls.dropEngine(params.TextDocument.URI)
	reportDiagnostics(context, params.TextDocument.URI, nil)
	return nil
}

// scheduleValidation queues a re-validation of uri; the matches are
// published as diagnostics when it finishes.
func (ls *LanguageServer) scheduleValidation(context *glsp.Context, uri string, eng *engine.Engine) {
	err := ls.sched.Schedule(engine.Task{
		Name: "validate " + uri,
		Execute: func() error {
			matches, err := eng.Validate()
			if err != nil {
				log.Printf("Validation of %s failed: %v", uri, err)
				return err
			}
			content := eng.Document().Content()
			reportDiagnostics(context, uri, matchesToDiagnostics(content, matches))
			return nil
		},
	})
	if err != nil {
		log.Printf("Failed to schedule validation: %v", err)
	}
}
