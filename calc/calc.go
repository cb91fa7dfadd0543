// Package calc provides the reference arithmetic method set served by the
// example binaries.
package calc

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/mnehpets/streamrpc/jsonrpc"
)

// Register installs the arithmetic methods on reg under their wire names
// "add" and "subtract".
func Register(reg *jsonrpc.Registry) {
	reg.RegisterFunc("add", Add)
	reg.Register("", &Service{})
}

var errInvalidParams = jsonrpc.NewError(jsonrpc.CodeInvalidParams, "Invalid params")

// Add sums a JSON array of numbers of any length; the empty array sums to 0.
// The sum stays in exact int64 arithmetic while every input is integral and
// switches to IEEE-754 double semantics as soon as one is not. Params that
// are not an array of numbers yield -32602.
func Add(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var values []interface{}
	dec := json.NewDecoder(bytes.NewReader(params))
	dec.UseNumber()
	if len(params) == 0 || dec.Decode(&values) != nil || values == nil {
		return nil, errInvalidParams
	}

	var intSum int64
	var floatSum float64
	exact := true
	for _, v := range values {
		n, ok := v.(json.Number)
		if !ok {
			return nil, errInvalidParams
		}
		if exact {
			if i, err := n.Int64(); err == nil {
				intSum += i
				continue
			}
			exact = false
			floatSum = float64(intSum)
		}
		f, err := n.Float64()
		if err != nil {
			return nil, errInvalidParams
		}
		floatSum += f
	}
	if exact {
		return intSum, nil
	}
	return floatSum, nil
}

// Service carries the reflection-registered methods.
type Service struct{}

type SubtractParams struct {
	_ struct{} `jsonrpc:"subtract"`

	Minuend    float64 `json:"minuend"`
	Subtrahend float64 `json:"subtrahend"`
}

// Subtract takes exactly two numbers, positionally or named, and returns
// their difference.
func (s *Service) Subtract(ctx context.Context, p SubtractParams) (float64, error) {
	return p.Minuend - p.Subtrahend, nil
}
