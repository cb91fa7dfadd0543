package jsonrpc

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
)

// Dispatcher resolves validated requests against a registry and converts
// every handler outcome into a Response. No failure escapes Dispatch: panics
// and unexpected errors inside handlers become -32603 responses.
type Dispatcher struct {
	registry *Registry
	log      zerolog.Logger
}

func NewDispatcher(registry *Registry, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{registry: registry, log: log}
}

// Dispatch invokes the handler for req and returns its Response, or nil when
// req is a notification. Notifications still run their handler for side
// effects; every outcome, including errors, is suppressed.
func (d *Dispatcher) Dispatch(ctx context.Context, req *Request) *Response {
	notification := req.IsNotification()

	fn, ok := d.registry.Lookup(req.Method)
	if !ok {
		if notification {
			return nil
		}
		return NewFailure(req.ID, NewError(CodeMethodNotFound, "Method not found"))
	}

	result, err := d.invoke(ctx, fn, req)
	if notification {
		return nil
	}
	if err != nil {
		return NewFailure(req.ID, d.convertError(req, err))
	}
	return NewResult(req.ID, result)
}

// invoke is the recovery boundary: a panicking handler terminates neither the
// connection nor the server.
func (d *Dispatcher) invoke(ctx context.Context, fn HandlerFunc, req *Request) (result interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error().
				Str("method", req.Method).
				Interface("panic", r).
				Msg("handler panicked")
			result = nil
			err = NewError(CodeInternalError, "Internal error")
		}
	}()
	return fn(ctx, req.Params)
}

// convertError maps a handler error to a wire error. *Error values keep their
// declared code; anything else is an internal fault with the underlying
// message attached as data.
func (d *Dispatcher) convertError(req *Request, err error) *Error {
	var rpcErr *Error
	if errors.As(err, &rpcErr) {
		return rpcErr
	}
	d.log.Warn().
		Str("method", req.Method).
		Err(err).
		Msg("handler failed")
	return &Error{Code: CodeInternalError, Message: "Internal error", Data: err.Error()}
}
