package main

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/aarongreenlee/prosemirror-noting/internal/checker"
	"github.com/aarongreenlee/prosemirror-noting/internal/document"
	"github.com/aarongreenlee/prosemirror-noting/internal/engine"
	"github.com/aarongreenlee/prosemirror-noting/internal/lsp"
	"github.com/aarongreenlee/prosemirror-noting/internal/store"
	"github.com/aarongreenlee/prosemirror-noting/internal/store/sqlite"
	"github.com/aarongreenlee/prosemirror-noting/internal/utils"
)

var CLI struct {
	Lsp   LspCmd   `cmd:"" help:"Run the language server over stdio."`
	Check CheckCmd `cmd:"" help:"Validate a file and print its matches."`
}

type LspCmd struct {
	DB string `help:"Persist validation results to this sqlite database." type:"path"`
}

func (c *LspCmd) Run() error {
	// Set up logging
	commonlog.Configure(1, nil)

	logsDir := filepath.Join(os.TempDir(), "noting")
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}

	logFile, err := os.OpenFile(
		filepath.Join(logsDir, "noting.log"),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND,
		0666,
	)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()

	multiWriter := io.MultiWriter(os.Stderr, logFile)
	log.SetOutput(multiWriter)
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)
	log.Println("Starting noting LSP server...")

	results, err := openStore(c.DB)
	if err != nil {
		return err
	}
	defer results.Close()

	server, err := lsp.NewServer(results)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	return server.RunStdio()
}

type CheckCmd struct {
	File string `arg:"" type:"existingfile" help:"File to validate."`
	DB   string `help:"Persist validation results to this sqlite database." type:"path"`
}

func (c *CheckCmd) Run() error {
	content, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", c.File, err)
	}
	checksum := utils.ComputeChecksum(content)

	var results *sqlite.Store
	if c.DB != "" {
		results, err = sqlite.New(c.DB)
		if err != nil {
			return fmt.Errorf("failed to open result store: %w", err)
		}
		defer results.Close()
	}

	var matches []checker.Match
	cached := false
	if results != nil {
		// An unchanged file keeps its persisted result.
		if res, err := results.Get(c.File); err == nil && bytes.Equal(res.Checksum, checksum) {
			matches = res.Matches
			cached = true
		}
	}

	if !cached {
		doc := document.New(string(content))
		eng := engine.New(doc, checker.DefaultRules())
		matches, err = eng.Validate()
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}

		if results != nil {
			res := store.Result{
				Path:     c.File,
				Checksum: checksum,
				Time:     doc.LastTime(),
				Matches:  matches,
			}
			if err := results.Save(res); err != nil {
				return fmt.Errorf("failed to persist results: %w", err)
			}
		}
	}

	for _, m := range matches {
		fmt.Printf("%s:%d-%d %s: %s\n", c.File, m.From, m.To, m.Rule, m.Annotation)
	}

	if len(matches) > 0 {
		return fmt.Errorf("%d issue(s) found", len(matches))
	}
	return nil
}

func openStore(path string) (store.Store, error) {
	if path == "" {
		return store.NewMemoryStore(), nil
	}
	s, err := sqlite.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open result store: %w", err)
	}
	return s, nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("noting"),
		kong.Description("Incremental re-validation engine for plain-text documents."),
		kong.UsageOnError(),
	)
	ctx.FatalIfErrorf(ctx.Run())
}
