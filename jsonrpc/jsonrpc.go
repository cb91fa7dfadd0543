package jsonrpc

import "encoding/json"

const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// Version is the protocol version accepted in requests and stamped on every
// response.
const Version = "2.0"

type Error struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

func NewError(code int, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Request is a validated request envelope. Params and ID hold the raw JSON of
// the corresponding fields; a nil slice means the field was absent. The null
// literal in ID is preserved as-is so responses can echo it untouched.
type Request struct {
	Method string
	Params json.RawMessage
	ID     json.RawMessage
}

// IsNotification reports whether the request must never receive a response,
// which is the case when the id is absent or null.
func (r *Request) IsNotification() bool {
	return len(r.ID) == 0 || string(r.ID) == "null"
}

// Response is a response envelope. Exactly one of Result and Error is
// populated; a nil ID marshals as null.
type Response struct {
	ID     json.RawMessage
	Result interface{}
	Error  *Error
}

func NewResult(id json.RawMessage, result interface{}) *Response {
	return &Response{ID: id, Result: result}
}

func NewFailure(id json.RawMessage, err *Error) *Response {
	return &Response{ID: id, Error: err}
}

// MarshalJSON writes the canonical wire forms:
//
//	{"jsonrpc":"2.0","id":<id>,"result":<result>}
//	{"jsonrpc":"2.0","error":{"code":...,"message":...},"id":<id>}
//
// The result member is emitted even when the result value is null, and an
// error response always carries an id, defaulting to null when none could be
// recovered from the request.
func (r *Response) MarshalJSON() ([]byte, error) {
	id := r.ID
	if len(id) == 0 {
		id = json.RawMessage("null")
	}
	if r.Error != nil {
		return json.Marshal(struct {
			JSONRPC string          `json:"jsonrpc"`
			Error   *Error          `json:"error"`
			ID      json.RawMessage `json:"id"`
		}{Version, r.Error, id})
	}
	return json.Marshal(struct {
		JSONRPC string          `json:"jsonrpc"`
		ID      json.RawMessage `json:"id"`
		Result  interface{}     `json:"result"`
	}{Version, id, r.Result})
}
