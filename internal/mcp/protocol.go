// Package mcp implements the JSON-RPC-shaped tool dispatch surface: the tool
// registry, the timing/error-wrapping dispatcher and the method router, plus
// a line-delimited stdio transport.
package mcp

import "encoding/json"

// JSON-RPC 2.0 error codes used by the router.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

const (
	protocolVersion = "2024-11-05"
	serverName      = "enterprise-llm-orchestrator"
	serverVersion   = "1.0.0"
)

// Request is one inbound dispatch unit.
type Request struct {
	Version string          `json:"jsonrpc,omitempty"`
	ID      any             `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// Response carries exactly one of Result or Error.
type Response struct {
	Version string `json:"jsonrpc"`
	ID      any    `json:"id"`
	Result  any    `json:"result,omitempty"`
	Error   *Error `json:"error,omitempty"`
}

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ContentBlock is one element of a tools/call result envelope.
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// CallResult is the safe-call envelope: always returned, never an error.
type CallResult struct {
	Content []ContentBlock `json:"content"`
	IsError bool           `json:"isError"`
}

func errorResponse(id any, code int, message string, data any) Response {
	return Response{
		Version: "2.0",
		ID:      id,
		Error:   &Error{Code: code, Message: message, Data: data},
	}
}

func resultResponse(id any, result any) Response {
	return Response{Version: "2.0", ID: id, Result: result}
}
