package relay

import "fmt"

// ParamKind selects the resolution strategy of a ParameterSpec
type ParamKind int

const (
	// LiteralParam coerces the raw request value to a LiteralType
	LiteralParam ParamKind = iota
	// EntityParam loads an entity by the integer id found in the request
	EntityParam
	// ModelParam hydrates a registered model from a request mapping
	ModelParam
)

// String returns the string representation of the parameter kind
func (k ParamKind) String() string {
	switch k {
	case LiteralParam:
		return "literal"
	case EntityParam:
		return "entity"
	case ModelParam:
		return "model"
	default:
		return "unknown"
	}
}

// LiteralType is one of the four scalar/list types a literal parameter or a
// model field can be coerced to
type LiteralType string

const (
	IntType    LiteralType = "int"
	StringType LiteralType = "string"
	BoolType   LiteralType = "bool"
	ListType   LiteralType = "list"
)

// literalAliases maps alternative spellings to their literal type
var literalAliases = map[string]LiteralType{
	"integer": IntType,
	"boolean": BoolType,
	"array":   ListType,
}

// ParseLiteralType converts a type tag to a LiteralType, accepting the
// aliases "integer", "boolean" and "array"
func ParseLiteralType(s string) (LiteralType, error) {
	switch t := LiteralType(s); t {
	case IntType, StringType, BoolType, ListType:
		return t, nil
	}
	if t, ok := literalAliases[s]; ok {
		return t, nil
	}
	return "", fmt.Errorf("unknown literal type: %s", s)
}

// IsLiteralType reports whether a declared static type names a literal type
func IsLiteralType(s string) bool {
	_, err := ParseLiteralType(s)
	return err == nil
}

// ParameterSpec declares how one named handler parameter is resolved.
// Exactly one of LiteralType, EntityType or ModelType is meaningful,
// depending on Kind.
type ParameterSpec struct {
	Name        string
	Kind        ParamKind
	LiteralType LiteralType
	EntityType  string
	ModelType   string
	Required    bool
}

// Literal returns a required literal spec
func Literal(name string, t LiteralType) ParameterSpec {
	return ParameterSpec{Name: name, Kind: LiteralParam, LiteralType: t, Required: true}
}

// Entity returns a required entity spec
func Entity(name, entityType string) ParameterSpec {
	return ParameterSpec{Name: name, Kind: EntityParam, EntityType: entityType, Required: true}
}

// Model returns a model spec. Models never fail on a missing value, so
// Required only documents intent.
func Model(name, modelType string) ParameterSpec {
	return ParameterSpec{Name: name, Kind: ModelParam, ModelType: modelType, Required: true}
}

// Optional returns a copy of the spec that binds a zero value when the
// request does not carry the parameter
func (s ParameterSpec) Optional() ParameterSpec {
	s.Required = false
	return s
}

// Target returns the type identifier the spec resolves to
func (s ParameterSpec) Target() string {
	switch s.Kind {
	case LiteralParam:
		return string(s.LiteralType)
	case EntityParam:
		return s.EntityType
	case ModelParam:
		return s.ModelType
	default:
		return ""
	}
}

// String renders the spec in the manifest's compact declaration form
func (s ParameterSpec) String() string {
	name := s.Name
	if !s.Required {
		name += "?"
	}
	if s.Kind == LiteralParam {
		return fmt.Sprintf("%s: %s", name, s.LiteralType)
	}
	return fmt.Sprintf("%s: %s %s", name, s.Kind, s.Target())
}

// Specs indexes parameter specs by name. A later spec with the same name
// replaces an earlier one.
func Specs(specs ...ParameterSpec) map[string]ParameterSpec {
	m := make(map[string]ParameterSpec, len(specs))
	for _, s := range specs {
		m[s.Name] = s
	}
	return m
}
