// Package lsp publishes validation matches to an editor over the
// Language Server Protocol: one engine per open document, matches
// pushed as diagnostics after every change.
package lsp

import (
	"sync"

	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/aarongreenlee/prosemirror-noting/internal/engine"
	"github.com/aarongreenlee/prosemirror-noting/internal/store"
)

const lsName = "noting"

var version = "0.1.0"

type LanguageServer struct {
	handler *protocol.Handler
	sched   *engine.Scheduler
	results store.Store

	mu      sync.Mutex
	engines map[string]*engine.Engine // keyed by document URI
}

// NewServer builds the LSP server. results may be a MemoryStore when
// nothing should be persisted.
func NewServer(results store.Store) (*server.Server, error) {
	ls := &LanguageServer{
		sched:   engine.NewScheduler(16),
		results: results,
		engines: make(map[string]*engine.Engine),
	}
	ls.sched.Run()

	ls.handler = &protocol.Handler{
		Initialize:            ls.initialize,
		Initialized:           ls.initialized,
		TextDocumentDidOpen:   ls.textDocumentDidOpen,
		TextDocumentDidChange: ls.textDocumentDidChange,
		TextDocumentDidSave:   ls.textDocumentDidSave,
		TextDocumentDidClose:  ls.textDocumentDidClose,
		Shutdown:              ls.shutdown,
	}

	return server.NewServer(ls.handler, lsName, false), nil
}

func (ls *LanguageServer) engineFor(uri string) (*engine.Engine, bool) {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	eng, ok := ls.engines[uri]
	return eng, ok
}

func (ls *LanguageServer) setEngine(uri string, eng *engine.Engine) {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	ls.engines[uri] = eng
}

func (ls *LanguageServer) dropEngine(uri string) {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	delete(ls.engines, uri)
}
