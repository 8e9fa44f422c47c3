package lsp

import (
	"sync"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

const serverName = "hexfilter-lsp"

// defaultSeed seeds hover searches.
const defaultSeed = 1

var log = commonlog.GetLogger("hexfilter.lsp")

type Server struct {
	handler protocol.Handler
	docs    *DocumentStore
	filters *filterCache
	version string

	mu      sync.RWMutex
	results map[string]*AnalysisResult
}

func NewServer(version string) *Server {
	s := &Server{
		docs:    NewDocumentStore(),
		filters: newFilterCache(defaultSeed),
		version: version,
		results: make(map[string]*AnalysisResult),
	}

	s.handler = protocol.Handler{
		Initialize:                    s.initialize,
		Initialized:                   s.initialized,
		Shutdown:                      s.shutdown,
		SetTrace:                      s.setTrace,
		TextDocumentDidOpen:           s.textDocumentDidOpen,
		TextDocumentDidChange:         s.textDocumentDidChange,
		TextDocumentDidClose:          s.textDocumentDidClose,
		TextDocumentHover:             s.textDocumentHover,
		TextDocumentDefinition:        s.textDocumentDefinition,
		TextDocumentColor:             s.textDocumentDocumentColor,
		TextDocumentColorPresentation: s.textDocumentColorPresentation,
		TextDocumentFormatting:        s.textDocumentFormatting,
	}

	return s
}

func (s *Server) Run() error {
	commonlog.Configure(1, nil)
	srv := server.NewServer(&s.handler, serverName, false)
	return srv.RunStdio()
}

func (s *Server) initialize(_ *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := s.handler.CreateServerCapabilities()

	syncKind := protocol.TextDocumentSyncKindFull
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: &protocol.True,
		Change:    &syncKind,
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    serverName,
			Version: &s.version,
		},
	}, nil
}

func (s *Server) initialized(_ *glsp.Context, _ *protocol.InitializedParams) error {
	return nil
}

func (s *Server) shutdown(_ *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (s *Server) setTrace(_ *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	uri := string(params.TextDocument.URI)
	s.docs.Open(uri, params.TextDocument.Text, params.TextDocument.Version)
	s.analyze(ctx, uri, params.TextDocument.Text)
	return nil
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := string(params.TextDocument.URI)
	changed := false
	for _, change := range params.ContentChanges {
		if c, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			if s.docs.Update(uri, c.Text, params.TextDocument.Version) {
				changed = true
			} else {
				log.Debugf("%s: dropping stale change (version %d)", uri, params.TextDocument.Version)
			}
		}
	}
	if !changed {
		return nil
	}
	if content, ok := s.docs.Get(uri); ok {
		s.analyze(ctx, uri, content)
	}
	return nil
}

func (s *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := string(params.TextDocument.URI)
	s.docs.Close(uri)

	s.mu.Lock()
	delete(s.results, uri)
	s.mu.Unlock()

	s.publish(ctx, uri, []protocol.Diagnostic{})
	return nil
}

// analyze re-analyzes a document, stores the result and publishes its diagnostics.
func (s *Server) analyze(ctx *glsp.Context, uri, content string) {
	result := Analyze(uri, content)
	log.Debugf("%s: %d diagnostics, %d colors", uri, len(result.Diagnostics), len(result.Colors))

	s.mu.Lock()
	s.results[uri] = result
	s.mu.Unlock()

	diags := result.Diagnostics
	if diags == nil {
		diags = []protocol.Diagnostic{}
	}
	s.publish(ctx, uri, diags)
}

func (s *Server) publish(ctx *glsp.Context, uri string, diags []protocol.Diagnostic) {
	if ctx == nil {
		return
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         protocol.DocumentUri(uri),
		Diagnostics: diags,
	})
}

// getResult returns the latest analysis of uri, or nil if it is not open.
func (s *Server) getResult(uri string) *AnalysisResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.results[uri]
}
