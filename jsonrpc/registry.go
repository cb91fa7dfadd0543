package jsonrpc

import (
	"context"
	"encoding/json"
	"reflect"
	"strings"
	"sync"
)

// HandlerFunc is the unit of business logic bound to a method name. It
// receives the raw params field (nil when absent) and returns a
// JSON-serializable result or an error. Returning an *Error preserves its
// code on the wire; any other error maps to -32603.
type HandlerFunc func(ctx context.Context, params json.RawMessage) (interface{}, error)

// Registry maps method names to handlers. It is safe for concurrent lookup
// and registration, though servers typically populate it once at startup.
type Registry struct {
	mu      sync.RWMutex
	methods map[string]HandlerFunc
}

func NewRegistry() *Registry {
	return &Registry{
		methods: make(map[string]HandlerFunc),
	}
}

// RegisterFunc binds fn to name, replacing any existing handler. Last
// registration wins.
func (r *Registry) RegisterFunc(name string, fn HandlerFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.methods[name] = fn
}

// Lookup returns the handler bound to name.
func (r *Registry) Lookup(name string) (HandlerFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.methods[name]
	return fn, ok
}

// Register adds methods from a receiver struct to the registry.
// The namespace prefixes all method names (e.g., "math" + "Add" -> "math.Add").
// Use empty string for no namespace (method names used directly).
// Only exported methods with valid signatures are registered.
//
// Methods must have this signature:
//
//	func(ctx context.Context, params P) (result, error)
//
// When P is a struct, array params map to its fields in declaration order and
// object params map by json tags. Any other P (slice, map, ...) receives the
// whole params value. A `_` field with a `jsonrpc` tag overrides the method
// name.
func (r *Registry) Register(namespace string, receiver interface{}) {
	val := reflect.ValueOf(receiver)
	typ := val.Type()

	for i := 0; i < val.NumMethod(); i++ {
		method := typ.Method(i)
		if !method.IsExported() {
			continue
		}

		m, methodName := parseMethod(val, method)
		if m == nil {
			continue
		}

		name := methodName
		if namespace != "" {
			name = namespace + "." + methodName
		}
		r.RegisterFunc(name, m.call)
	}
}

// rpcMethod holds reflection data for a registered RPC method.
type rpcMethod struct {
	receiver    reflect.Value
	method      reflect.Method
	paramType   reflect.Type
	paramNames  []string // JSON tag names for validation and named params
	paramFields []int    // Field indices for positional params unmarshaling
	methodName  string
}

func (m *rpcMethod) call(ctx context.Context, params json.RawMessage) (interface{}, error) {
	args := make([]reflect.Value, 0, 3)
	args = append(args, m.receiver)
	args = append(args, reflect.ValueOf(ctx))

	if params == nil {
		params = json.RawMessage("null")
	}

	param := reflect.New(m.paramType)
	if m.paramType.Kind() == reflect.Struct {
		if err := m.unmarshalStruct(params, param); err != nil {
			return nil, err
		}
	} else if err := json.Unmarshal(params, param.Interface()); err != nil {
		return nil, NewError(CodeInvalidParams, "Invalid params")
	}
	args = append(args, param.Elem())

	results := m.method.Func.Call(args)

	var retErr error
	if !results[1].IsNil() {
		retErr = results[1].Interface().(error)
	}
	return results[0].Interface(), retErr
}

func (m *rpcMethod) unmarshalStruct(params json.RawMessage, param reflect.Value) error {
	var paramList []json.RawMessage
	if err := json.Unmarshal(params, &paramList); err == nil {
		// Positional params: array elements map to struct fields by declaration order.
		if len(paramList) != len(m.paramFields) {
			return NewError(CodeInvalidParams, "Invalid params")
		}
		for i, rawElem := range paramList {
			field := param.Elem().Field(m.paramFields[i])
			if err := json.Unmarshal(rawElem, field.Addr().Interface()); err != nil {
				return NewError(CodeInvalidParams, "Invalid params")
			}
		}
		return nil
	}

	// Named params: JSON object keys map to struct fields by json tags.
	if err := json.Unmarshal(params, param.Interface()); err != nil {
		return NewError(CodeInvalidParams, "Invalid params")
	}
	// Verify all required params are present in the JSON object.
	var paramMap map[string]json.RawMessage
	if err := json.Unmarshal(params, &paramMap); err == nil {
		for _, name := range m.paramNames {
			if _, ok := paramMap[name]; !ok {
				return NewError(CodeInvalidParams, "missing param: "+name)
			}
		}
	}
	return nil
}

// parseMethod extracts method signature information via reflection.
// Returns nil for invalid signatures.
func parseMethod(receiver reflect.Value, method reflect.Method) (*rpcMethod, string) {
	ft := method.Func.Type()

	if ft.NumIn() != 3 {
		return nil, ""
	}
	if ft.In(1) != reflect.TypeOf((*context.Context)(nil)).Elem() {
		return nil, ""
	}
	if ft.NumOut() != 2 {
		return nil, ""
	}
	if ft.Out(1) != reflect.TypeOf((*error)(nil)).Elem() {
		return nil, ""
	}

	m := &rpcMethod{
		receiver:   receiver,
		method:     method,
		paramType:  ft.In(2),
		methodName: method.Name,
	}

	if m.paramType.Kind() != reflect.Struct {
		return m, m.methodName
	}

	paramNames := make([]string, 0)
	paramFields := make([]int, 0)
	for i := 0; i < m.paramType.NumField(); i++ {
		field := m.paramType.Field(i)
		if field.Name == "_" {
			if tag := field.Tag.Get("jsonrpc"); tag != "" {
				m.methodName = tag
			}
			continue
		}
		jsonTag := field.Tag.Get("json")
		if jsonTag == "" {
			paramNames = append(paramNames, field.Name)
			paramFields = append(paramFields, i)
		} else {
			name := strings.Split(jsonTag, ",")[0]
			if name == "" || name == "-" {
				continue
			}
			paramNames = append(paramNames, name)
			paramFields = append(paramFields, i)
		}
	}
	m.paramNames = paramNames
	m.paramFields = paramFields

	return m, m.methodName
}
