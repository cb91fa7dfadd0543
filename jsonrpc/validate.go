package jsonrpc

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Validate parses one raw line into a Request. On failure it returns a
// complete error Response instead, carrying the classified code and whatever
// id could be recovered from the envelope.
//
// Checks run in order, first failure wins:
//
//  1. the line must be valid JSON text (-32700, with the parser's own byte
//     offset and reason in the message)
//  2. the value must be an object (-32600)
//  3. jsonrpc must be present and equal "2.0" (-32600)
//  4. method must be present and a string (-32600)
//  5. params, if present, must be an array or an object (-32600)
//  6. id, if present, must be a string, number or null (-32600)
//
// Method existence and per-method params shapes are the dispatcher's concern.
//
// A parse failure (-32700) always reports id null. A shape failure (-32600)
// echoes the request id only when a legal string or number id was recovered
// from the object before the failing check; otherwise id is null.
func Validate(raw []byte) (*Request, *Response) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		var syn *json.SyntaxError
		if errors.As(err, &syn) {
			msg := fmt.Sprintf("JSON Parse Error at %d: %s", syn.Offset, syn.Error())
			return nil, NewFailure(nil, NewError(CodeParseError, msg))
		}
		// Valid JSON of a non-object top-level type.
		return nil, invalidRequest(nil)
	}
	if fields == nil {
		// The null literal unmarshals into a nil map without error.
		return nil, invalidRequest(nil)
	}

	var version string
	rawVersion, ok := fields["jsonrpc"]
	if !ok || json.Unmarshal(rawVersion, &version) != nil || version != Version {
		return nil, invalidRequest(recoverID(fields))
	}

	var method string
	rawMethod, ok := fields["method"]
	if !ok || json.Unmarshal(rawMethod, &method) != nil {
		return nil, invalidRequest(recoverID(fields))
	}

	params, ok := fields["params"]
	if ok && (len(params) == 0 || (params[0] != '[' && params[0] != '{')) {
		return nil, invalidRequest(recoverID(fields))
	}

	id, ok := fields["id"]
	if ok && !legalID(id) {
		return nil, invalidRequest(nil)
	}

	return &Request{Method: method, Params: params, ID: id}, nil
}

func invalidRequest(id json.RawMessage) *Response {
	return NewFailure(id, NewError(CodeInvalidRequest, "Invalid Request"))
}

// legalID reports whether raw is a string, number or null. Booleans and
// composite values are not valid request ids.
func legalID(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}
	switch raw[0] {
	case '"':
		return true
	case 'n':
		return string(raw) == "null"
	case 't', 'f', '[', '{':
		return false
	default:
		return true
	}
}

// recoverID extracts a usable id for an error response from a partially valid
// envelope. Only a legal non-null id is worth echoing; anything else falls
// back to null.
func recoverID(fields map[string]json.RawMessage) json.RawMessage {
	raw, ok := fields["id"]
	if !ok || !legalID(raw) || string(raw) == "null" {
		return nil
	}
	return raw
}
