package jsonrpc

import (
	"strings"
	"testing"
)

func TestValidateParseError(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"truncated object", `{"jsonrpc":"2.0","method":"add","par`},
		{"bare garbage", `{]`},
		{"unterminated string", `{"jsonrpc":"2.0","method":"ad`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, failure := Validate([]byte(tt.raw))
			if req != nil {
				t.Fatal("expected no request")
			}
			if failure == nil || failure.Error == nil {
				t.Fatal("expected failure response")
			}
			if failure.Error.Code != CodeParseError {
				t.Errorf("got code %d, want %d", failure.Error.Code, CodeParseError)
			}
			if !strings.HasPrefix(failure.Error.Message, "JSON Parse Error at ") {
				t.Errorf("got message %q, want JSON Parse Error prefix", failure.Error.Message)
			}
			if failure.ID != nil {
				t.Errorf("parse errors must report id null, got %s", failure.ID)
			}
		})
	}
}

func TestValidateInvalidRequest(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		wantID string // "" means null
	}{
		{"array", `[1,2,3]`, ""},
		{"string", `"hello"`, ""},
		{"number", `42`, ""},
		{"null", `null`, ""},
		{"bool", `true`, ""},
		{"missing jsonrpc", `{"method":"add"}`, ""},
		{"wrong version", `{"jsonrpc":"1.0","method":"add"}`, ""},
		{"numeric version", `{"jsonrpc":2.0,"method":"add"}`, ""},
		{"missing method", `{"jsonrpc":"2.0"}`, ""},
		{"non-string method", `{"jsonrpc":"2.0","method":42}`, ""},
		{"scalar params", `{"jsonrpc":"2.0","method":"add","params":5}`, ""},
		{"string params", `{"jsonrpc":"2.0","method":"add","params":"x"}`, ""},
		{"bool id", `{"jsonrpc":"2.0","method":"add","id":true}`, ""},
		{"array id", `{"jsonrpc":"2.0","method":"add","id":[1]}`, ""},
		{"missing method with id", `{"jsonrpc":"2.0","id":7}`, `7`},
		{"non-string method with string id", `{"jsonrpc":"2.0","method":7,"id":"abc"}`, `"abc"`},
		{"missing jsonrpc with id", `{"method":"add","id":1}`, `1`},
		{"missing method with null id", `{"jsonrpc":"2.0","id":null}`, ""},
		{"missing method with illegal id", `{"jsonrpc":"2.0","id":{}}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, failure := Validate([]byte(tt.raw))
			if req != nil {
				t.Fatal("expected no request")
			}
			if failure == nil || failure.Error == nil {
				t.Fatal("expected failure response")
			}
			if failure.Error.Code != CodeInvalidRequest {
				t.Errorf("got code %d, want %d", failure.Error.Code, CodeInvalidRequest)
			}
			if failure.Error.Message != "Invalid Request" {
				t.Errorf("got message %q, want %q", failure.Error.Message, "Invalid Request")
			}
			gotID := string(failure.ID)
			if gotID != tt.wantID {
				t.Errorf("got id %q, want %q", gotID, tt.wantID)
			}
		})
	}
}

func TestValidateSuccess(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantMethod string
		wantParams string
		wantID     string
		wantNotify bool
	}{
		{
			name:       "full request",
			raw:        `{"jsonrpc":"2.0","method":"add","params":[1,2,3],"id":1}`,
			wantMethod: "add",
			wantParams: `[1,2,3]`,
			wantID:     `1`,
		},
		{
			name:       "object params and string id",
			raw:        `{"jsonrpc":"2.0","method":"subtract","params":{"minuend":42,"subtrahend":23},"id":"req-9"}`,
			wantMethod: "subtract",
			wantParams: `{"minuend":42,"subtrahend":23}`,
			wantID:     `"req-9"`,
		},
		{
			name:       "no params no id",
			raw:        `{"jsonrpc":"2.0","method":"ping"}`,
			wantMethod: "ping",
			wantNotify: true,
		},
		{
			name:       "explicit null id",
			raw:        `{"jsonrpc":"2.0","method":"ping","id":null}`,
			wantMethod: "ping",
			wantID:     `null`,
			wantNotify: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, failure := Validate([]byte(tt.raw))
			if failure != nil {
				t.Fatalf("unexpected failure: %+v", failure.Error)
			}
			if req.Method != tt.wantMethod {
				t.Errorf("got method %q, want %q", req.Method, tt.wantMethod)
			}
			if string(req.Params) != tt.wantParams {
				t.Errorf("got params %q, want %q", req.Params, tt.wantParams)
			}
			if string(req.ID) != tt.wantID {
				t.Errorf("got id %q, want %q", req.ID, tt.wantID)
			}
			if req.IsNotification() != tt.wantNotify {
				t.Errorf("got IsNotification %v, want %v", req.IsNotification(), tt.wantNotify)
			}
		})
	}
}

func TestValidateDoesNotCheckMethodExistence(t *testing.T) {
	req, failure := Validate([]byte(`{"jsonrpc":"2.0","method":"no.such.method","id":1}`))
	if failure != nil {
		t.Fatalf("unexpected failure: %+v", failure.Error)
	}
	if req.Method != "no.such.method" {
		t.Errorf("got method %q", req.Method)
	}
}
