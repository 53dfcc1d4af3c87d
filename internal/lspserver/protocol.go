package lspserver

import "encoding/json"

// jsonrpcVersion is the only version this server speaks.
const jsonrpcVersion = "2.0"

// request is an incoming JSON-RPC request or notification. ID is nil for
// notifications.
type request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// response is an outgoing JSON-RPC response to a request with an ID.
type response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *responseError  `json:"error,omitempty"`
}

type responseError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// notification is an outgoing JSON-RPC message with no ID, used here only
// for textDocument/publishDiagnostics.
type notification struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  any    `json:"params"`
}

// Position is a zero-indexed line/character pair. Character counts UTF-16
// code units, per the LSP specification.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Range spans from Start (inclusive) to End (exclusive).
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// DiagnosticSeverity follows the LSP numeric encoding: 1=Error, 2=Warning.
type DiagnosticSeverity int

const (
	SeverityError   DiagnosticSeverity = 1
	SeverityWarning DiagnosticSeverity = 2
)

// Diagnostic is one published finding, per the LSP textDocument/
// publishDiagnostics notification shape.
type Diagnostic struct {
	Range    Range              `json:"range"`
	Severity DiagnosticSeverity `json:"severity"`
	Source   string             `json:"source"`
	Message  string             `json:"message"`
}

// PublishDiagnosticsParams is the payload of a publishDiagnostics
// notification.
type PublishDiagnosticsParams struct {
	URI         string       `json:"uri"`
	Diagnostics []Diagnostic `json:"diagnostics"`
}

// initializeParams is the subset of the initialize request this server
// reads; the rest of the payload (client capabilities, workspace folders)
// goes unused since diagnostics publishing needs none of it.
type initializeParams struct {
	ProcessID int `json:"processId"`
}

// textDocumentSyncKindIncremental is the LSP TextDocumentSyncKind value
// for incremental sync. This server only ever reads the full buffer off
// didOpen; didChange handling isn't implemented, so the capability is
// declarative only.
const textDocumentSyncKindIncremental = 2

type textDocumentSyncOptions struct {
	OpenClose bool `json:"openClose"`
	Change    int  `json:"change"`
}

type serverCapabilities struct {
	TextDocumentSync textDocumentSyncOptions `json:"textDocumentSync"`
}

type serverInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type initializeResult struct {
	Capabilities serverCapabilities `json:"capabilities"`
	ServerInfo   serverInfo         `json:"serverInfo"`
}

type textDocumentItem struct {
	URI  string `json:"uri"`
	Text string `json:"text"`
}

type didOpenParams struct {
	TextDocument textDocumentItem `json:"textDocument"`
}
