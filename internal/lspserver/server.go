// Package lspserver implements the LSP adapter: Content-Length-framed
// JSON-RPC 2.0 over stdio, wired to the diagnostics engine.
package lspserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/sofmeright/version-lsp/internal/cache"
	"github.com/sofmeright/version-lsp/internal/diagnostics"
	"github.com/sofmeright/version-lsp/internal/parser"
	"github.com/sofmeright/version-lsp/internal/registrykind"
)

// Server is the LSP adapter's top-level state: one transport, the
// diagnostics engine, and the parser dispatch table.
type Server struct {
	t       *transport
	engine  *diagnostics.Engine
	cache   *cache.Cache
	log     zerolog.Logger
	wg      sync.WaitGroup // tracks in-flight request handlers for a best-effort drain on shutdown
	version string
}

// New builds a Server reading requests from r and writing responses/
// notifications to w.
func New(r io.Reader, w io.Writer, engine *diagnostics.Engine, c *cache.Cache, log zerolog.Logger, version string) *Server {
	return &Server{
		t:       newTransport(r, w),
		engine:  engine,
		cache:   c,
		log:     log,
		version: version,
	}
}

// Run reads and dispatches messages until the transport's read side
// closes. It returns nil on a clean EOF (the client closed stdin after
// shutdown/exit).
func (s *Server) Run(ctx context.Context) error {
	for {
		body, err := s.t.readMessage()
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.wg.Wait()
				return nil
			}
			return fmt.Errorf("reading message: %w", err)
		}

		var req request
		if err := json.Unmarshal(body, &req); err != nil {
			s.log.Warn().Err(err).Msg("discarding malformed JSON-RPC message")
			continue
		}
		s.dispatch(ctx, req)
	}
}

func (s *Server) dispatch(ctx context.Context, req request) {
	switch req.Method {
	case "initialize":
		s.handleInitialize(req)
	case "initialized":
		s.handleInitialized()
	case "textDocument/didOpen":
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleDidOpen(ctx, req)
		}()
	case "shutdown":
		s.respond(req.ID, json.RawMessage("null"), nil)
	case "exit":
		// Nothing to flush; the transport's read loop ends on EOF when
		// the client closes stdin right after this notification.
	default:
		if len(req.ID) > 0 {
			s.respond(req.ID, nil, &responseError{Code: -32601, Message: "method not found: " + req.Method})
		}
	}
}

func (s *Server) handleInitialize(req request) {
	var params initializeParams
	_ = json.Unmarshal(req.Params, &params)

	result := initializeResult{
		Capabilities: serverCapabilities{
			TextDocumentSync: textDocumentSyncOptions{
				OpenClose: true,
				Change:    textDocumentSyncKindIncremental,
			},
		},
		ServerInfo: serverInfo{Name: "version-lsp", Version: s.version},
	}
	s.respond(req.ID, result, nil)
}

// handleInitialized fires the background stale-package scan: it only logs
// counts and must never block this handler's return.
func (s *Server) handleInitialized() {
	if s.cache == nil {
		return
	}
	go s.scanStalePackages()
}

func (s *Server) scanStalePackages() {
	stale, err := s.cache.PackagesNeedingRefresh(context.Background(), time.Now().UnixMilli(), staleThresholdMs)
	if err != nil {
		s.log.Warn().Err(err).Msg("stale package scan failed")
		return
	}
	s.log.Info().Int("count", len(stale)).Msg("stale package scan complete")
}

// staleThresholdMs matches config.DefaultRefreshIntervalMs; duplicated
// here as a literal so this package doesn't need to import config just
// for one constant.
const staleThresholdMs = 24 * 60 * 60 * 1000

func (s *Server) handleDidOpen(ctx context.Context, req request) {
	var params didOpenParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		s.log.Warn().Err(err).Msg("malformed didOpen params")
		return
	}

	kind, ok := registrykind.Detect(params.TextDocument.URI)
	if !ok {
		s.publishDiagnostics(params.TextDocument.URI, nil)
		return
	}
	p, ok := parser.ForKind(kind)
	if !ok {
		s.publishDiagnostics(params.TextDocument.URI, nil)
		return
	}

	content := []byte(params.TextDocument.Text)
	infos, err := p.Parse(content)
	if err != nil {
		s.log.Warn().Err(err).Str("uri", params.TextDocument.URI).Msg("parse failed")
		s.publishDiagnostics(params.TextDocument.URI, nil)
		return
	}

	findings := s.engine.Evaluate(ctx, infos)
	diags := make([]Diagnostic, 0, len(findings))
	for _, f := range findings {
		sev := SeverityWarning
		if f.Severity == diagnostics.SeverityError {
			sev = SeverityError
		}
		diags = append(diags, Diagnostic{
			Range:    toRange(content, f.Span),
			Severity: sev,
			Source:   "version-lsp",
			Message:  f.Message,
		})
	}
	s.publishDiagnostics(params.TextDocument.URI, diags)
}

func (s *Server) publishDiagnostics(uri string, diags []Diagnostic) {
	if diags == nil {
		diags = []Diagnostic{}
	}
	note := notification{
		JSONRPC: jsonrpcVersion,
		Method:  "textDocument/publishDiagnostics",
		Params:  PublishDiagnosticsParams{URI: uri, Diagnostics: diags},
	}
	if err := s.t.writeMessage(note); err != nil {
		s.log.Warn().Err(err).Msg("publishDiagnostics write failed")
	}
}

func (s *Server) respond(id json.RawMessage, result any, respErr *responseError) {
	if len(id) == 0 {
		return // notification, no response expected
	}
	resp := response{JSONRPC: jsonrpcVersion, ID: id, Result: result, Error: respErr}
	if err := s.t.writeMessage(resp); err != nil {
		s.log.Warn().Err(err).Msg("response write failed")
	}
}
