// Package jsonrpc implements the JSON-RPC 2.0 protocol engine used by the
// streamrpc server: envelope validation, the method registry, and dispatch.
//
// This package implements the JSON-RPC 2.0 specification
// (https://www.jsonrpc.org/specification) over newline-delimited JSON. Each
// line is exactly one request or response; array batching is not supported.
//
// # Basic Usage
//
// Create a registry, register methods, and hand it to a server:
//
//	reg := jsonrpc.NewRegistry()
//	reg.Register("math", &MathMethods{})
//
//	srv := server.New(":7878", reg)
//	srv.Start()
//
// Methods are defined on a struct with a params type:
//
//	type MathMethods struct{}
//
//	type AddParams struct {
//	    A int `json:"a"`
//	    B int `json:"b"`
//	}
//
//	func (m *MathMethods) Add(ctx context.Context, params AddParams) (int, error) {
//	    return params.A + params.B, nil
//	}
//
// # Method Signatures
//
// Reflection-registered methods must have this signature:
//
//	func(ctx context.Context, params P) (result, error)
//
// When P is a struct, positional (array) params map to its fields in
// declaration order and named (object) params map by json tags. Any other P,
// such as a slice, receives the whole params value:
//
//	func (m *Methods) Sum(ctx context.Context, nums []float64) (float64, error)
//
// Handlers needing full control over params decoding register a HandlerFunc
// directly:
//
//	reg.RegisterFunc("add", func(ctx context.Context, params json.RawMessage) (interface{}, error) {
//	    ...
//	})
//
// # Namespaces
//
// The namespace prefixes method names. Use empty string for no prefix:
//
//	reg.Register("math", &MathMethods{})  // -> "math.Add"
//	reg.Register("", &MathMethods{})      // -> "Add"
//
// A `_` field with a `jsonrpc` tag overrides the method name:
//
//	type AddParams struct {
//	    _ struct{} `jsonrpc:"add"`  // method name becomes lowercase "add"
//	    A int `json:"a"`
//	    B int `json:"b"`
//	}
//
// Registering a name twice replaces the previous handler; the last
// registration wins.
//
// # Error Handling
//
// Return *Error for protocol-level errors:
//
//	return 0, jsonrpc.NewError(jsonrpc.CodeInvalidParams, "division by zero")
//
// Standard error codes are defined as constants:
//   - CodeParseError (-32700)
//   - CodeInvalidRequest (-32600)
//   - CodeMethodNotFound (-32601)
//   - CodeInvalidParams (-32602)
//   - CodeInternalError (-32603)
//
// Other errors, and panics inside handlers, surface as -32603 responses and
// never terminate the connection.
//
// # Notifications
//
// A request whose id is absent or null is a notification. Its handler runs
// for side effects but no response is ever written for it, regardless of
// outcome. The only exception is a line that fails parsing or envelope
// validation before an id could be determined: those are always answered,
// with id null.
package jsonrpc
