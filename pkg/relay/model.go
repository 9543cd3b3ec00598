package relay

import (
	"errors"
	"fmt"
	"net/url"
	"sync"
)

// Bindable is implemented by model instances. Assign stores an already
// coerced value into the named field.
type Bindable interface {
	Assign(field string, value any) error
}

// FieldSpec declares one model field and the literal type its raw values
// are coerced to
type FieldSpec struct {
	Name string
	Type LiteralType
}

// ModelSchema is the static field table of a model type
type ModelSchema struct {
	Type   string
	Fields []FieldSpec
	New    func() Bindable
}

// Field returns the declared field named name
func (s ModelSchema) Field(name string) (FieldSpec, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

func (s ModelSchema) validate() error {
	if s.Type == "" {
		return errors.New("model type cannot be empty")
	}
	if s.New == nil {
		return fmt.Errorf("model %s has no constructor", s.Type)
	}
	seen := make(map[string]struct{}, len(s.Fields))
	for _, f := range s.Fields {
		if f.Name == "" {
			return fmt.Errorf("model %s declares a field without a name", s.Type)
		}
		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("model %s declares field %s twice", s.Type, f.Name)
		}
		seen[f.Name] = struct{}{}
		if _, err := ParseLiteralType(string(f.Type)); err != nil {
			return fmt.Errorf("model %s field %s: %w", s.Type, f.Name, err)
		}
	}
	return nil
}

// ModelRegistry holds the schemas of every bindable model type
type ModelRegistry struct {
	mu      sync.RWMutex
	schemas map[string]ModelSchema
}

// NewModelRegistry creates an empty model registry
func NewModelRegistry() *ModelRegistry {
	return &ModelRegistry{schemas: make(map[string]ModelSchema)}
}

// Register validates and stores a schema
func (r *ModelRegistry) Register(schema ModelSchema) error {
	if err := schema.validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.schemas[schema.Type]; exists {
		return fmt.Errorf("model %s is already registered", schema.Type)
	}
	r.schemas[schema.Type] = schema
	return nil
}

// MustRegister is like Register but panics on error
func (r *ModelRegistry) MustRegister(schemas ...ModelSchema) {
	for _, s := range schemas {
		if err := r.Register(s); err != nil {
			panic(err)
		}
	}
}

// Schema returns the schema registered for a model type
func (r *ModelRegistry) Schema(modelType string) (ModelSchema, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.schemas[modelType]
	return s, ok
}

// Hydrate builds a model instance from a raw mapping. Keys are applied in
// sorted order; any failure is reported as the cause of a ModelBindingError
// by the caller.
func (s ModelSchema) Hydrate(raw any) (Bindable, error) {
	model := s.New()
	if raw == nil {
		return model, nil
	}

	fields, err := asMapping(raw)
	if err != nil {
		return nil, err
	}

	for _, key := range sortedKeys(fields) {
		field, ok := s.Field(key)
		if !ok {
			return nil, fmt.Errorf("unknown property %q", key)
		}
		value, err := Coerce(fields[key], field.Type)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", key, err)
		}
		if err := model.Assign(key, value); err != nil {
			return nil, fmt.Errorf("assign %q: %w", key, err)
		}
	}
	return model, nil
}

// asMapping accepts the mapping shapes transports produce
func asMapping(raw any) (map[string]any, error) {
	switch v := raw.(type) {
	case map[string]any:
		return v, nil
	case Values:
		return v, nil
	case map[string]string:
		m := make(map[string]any, len(v))
		for k, s := range v {
			m[k] = s
		}
		return m, nil
	case url.Values:
		return flattenMulti(v), nil
	case map[string][]string:
		return flattenMulti(v), nil
	default:
		return nil, fmt.Errorf("expected a mapping, got %T", raw)
	}
}

func flattenMulti(v map[string][]string) map[string]any {
	m := make(map[string]any, len(v))
	for k, values := range v {
		if len(values) == 1 {
			m[k] = values[0]
			continue
		}
		list := make([]any, len(values))
		for i, s := range values {
			list[i] = s
		}
		m[k] = list
	}
	return m
}
