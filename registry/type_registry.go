package registry

import (
	"encoding/json"
	"fmt"
)

// DecodeFunc takes a raw document and returns the decoded, typed object.
type DecodeFunc func(raw json.RawMessage) (interface{}, error)

// typeRegistry holds the mapping from a document type name (the value of a
// document's "type" field) to its decode function.
var typeRegistry = make(map[string]DecodeFunc)

// RegisterType registers a decode function for a given document type name.
// If a function is already registered for the name, it panics to prevent
// accidental overrides.
func RegisterType(name string, fn DecodeFunc) {
	if _, exists := typeRegistry[name]; exists {
		panic(fmt.Sprintf("type registry: type %q already registered", name))
	}
	typeRegistry[name] = fn
}

// GetDecodeFunc returns the registered decode function for the given type
// name. If no function is registered, it returns an error.
func GetDecodeFunc(name string) (DecodeFunc, error) {
	fn, ok := typeRegistry[name]
	if !ok {
		return nil, fmt.Errorf("type registry: no type registered for %q", name)
	}
	return fn, nil
}

// DecodeDocument decodes a raw document through the registry, using the
// document's "type" field as the discriminator. Documents without a type,
// or with an unregistered one, come back as a generic map.
func DecodeDocument(raw json.RawMessage) (interface{}, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("probe document type: %w", err)
	}
	if probe.Type != "" {
		if fn, err := GetDecodeFunc(probe.Type); err == nil {
			return fn(raw)
		}
	}
	var generic map[string]interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("decode generic document: %w", err)
	}
	return generic, nil
}
