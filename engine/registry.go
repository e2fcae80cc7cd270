package engine

import (
	"fmt"
	"log"
	"maps"
)

// Policy selects how the registry and world treat questionable input.
// Permissive logs a warning and carries on, which suits prototyping;
// Strict turns unregistered component types into hard errors.
type Policy int

const (
	PolicyPermissive Policy = iota
	PolicyStrict
)

// FieldKind constrains the dynamic type of a schema field.
type FieldKind int

const (
	KindAny FieldKind = iota
	KindNumber
	KindString
	KindBool
	KindList
	KindMap
)

func (k FieldKind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "any"
	}
}

// Field declares validation rules for a single schema field.
type Field struct {
	Required bool
	Kind     FieldKind
	Default  any
	Validate func(value any) error
}

// Schema maps field names to their rules.
type Schema map[string]Field

// Factory normalizes raw component data after defaults are applied and
// before validation runs.
type Factory func(data Component) Component

// ValidationError reports a schema violation for a single field.
type ValidationError struct {
	Type   string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("component %q: field %q: %s", e.Type, e.Field, e.Reason)
}

// ErrUnregisteredType is reported by Create under PolicyStrict when the
// component type has no registration.
type ErrUnregisteredType struct {
	Type string
}

func (e *ErrUnregisteredType) Error() string {
	return fmt.Sprintf("component type %q is not registered", e.Type)
}

type registration struct {
	schema  Schema
	factory Factory
}

// ComponentRegistry holds component type registrations: an optional
// per-field schema and an optional defaulting/normalization factory.
type ComponentRegistry struct {
	policy  Policy
	logf    func(format string, args ...any)
	entries map[string]registration
}

// NewComponentRegistry creates an empty registry with the permissive
// policy.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		logf:    log.Printf,
		entries: make(map[string]registration),
	}
}

// SetPolicy switches between permissive and strict handling of
// unregistered types.
func (r *ComponentRegistry) SetPolicy(p Policy) {
	r.policy = p
}

// SetLogger redirects warning output. Mainly for tests.
func (r *ComponentRegistry) SetLogger(logf func(format string, args ...any)) {
	if logf != nil {
		r.logf = logf
	}
}

// Register adds a component type with an optional schema and factory.
// Re-registering an existing type is a warning and a no-op, so
// registration is idempotent across hot reloads.
func (r *ComponentRegistry) Register(ctype string, schema Schema, factory Factory) {
	if _, exists := r.entries[ctype]; exists {
		r.logf("registry: component type %q already registered, ignored", ctype)
		return
	}
	r.entries[ctype] = registration{schema: schema, factory: factory}
}

// IsRegistered reports whether the type has a registration.
func (r *ComponentRegistry) IsRegistered(ctype string) bool {
	_, ok := r.entries[ctype]
	return ok
}

// Types returns the registered type names.
func (r *ComponentRegistry) Types() []string {
	types := make([]string, 0, len(r.entries))
	for ctype := range r.entries {
		types = append(types, ctype)
	}
	return types
}

// Create returns normalized component data for the given type:
// schema defaults are applied first, caller data is merged over them,
// the factory (if any) normalizes the result, and the schema (if any)
// validates it. Unregistered types pass through with a warning under
// PolicyPermissive and fail under PolicyStrict. The input map is never
// mutated.
func (r *ComponentRegistry) Create(ctype string, data Component) (Component, error) {
	entry, ok := r.entries[ctype]
	if !ok {
		if r.policy == PolicyStrict {
			return nil, &ErrUnregisteredType{Type: ctype}
		}
		r.logf("registry: component type %q is not registered, passing data through", ctype)
		if data == nil {
			return Component{}, nil
		}
		return maps.Clone(data), nil
	}

	out := Component{}
	for name, field := range entry.schema {
		if field.Default != nil {
			out[name] = field.Default
		}
	}
	for k, v := range data {
		out[k] = v
	}
	if entry.factory != nil {
		if normalized := entry.factory(out); normalized != nil {
			out = normalized
		}
	}
	if err := validate(ctype, entry.schema, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Validate checks data against the type's schema without creating
// anything. Types without a schema always validate.
func (r *ComponentRegistry) Validate(ctype string, data Component) error {
	entry, ok := r.entries[ctype]
	if !ok {
		if r.policy == PolicyStrict {
			return &ErrUnregisteredType{Type: ctype}
		}
		return nil
	}
	return validate(ctype, entry.schema, data)
}

func validate(ctype string, schema Schema, data Component) error {
	for name, field := range schema {
		value, present := data[name]
		if !present {
			if field.Required {
				return &ValidationError{Type: ctype, Field: name, Reason: "required field missing"}
			}
			continue
		}
		if !kindMatches(field.Kind, value) {
			return &ValidationError{
				Type:   ctype,
				Field:  name,
				Reason: fmt.Sprintf("expected %s, got %T", field.Kind, value),
			}
		}
		if field.Validate != nil {
			if err := field.Validate(value); err != nil {
				return &ValidationError{Type: ctype, Field: name, Reason: err.Error()}
			}
		}
	}
	return nil
}

func kindMatches(kind FieldKind, value any) bool {
	switch kind {
	case KindAny:
		return true
	case KindNumber:
		switch value.(type) {
		case int, int8, int16, int32, int64,
			uint, uint8, uint16, uint32, uint64,
			float32, float64:
			return true
		}
		return false
	case KindString:
		_, ok := value.(string)
		return ok
	case KindBool:
		_, ok := value.(bool)
		return ok
	case KindList:
		switch value.(type) {
		case []any, []string, []float64, []int:
			return true
		}
		return false
	case KindMap:
		switch value.(type) {
		case map[string]any, Component:
			return true
		}
		return false
	}
	return false
}

// AsFloat coerces a numeric schema value to float64. Non-numeric input
// returns 0, false.
func AsFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	}
	return 0, false
}
