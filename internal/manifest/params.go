package manifest

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/toyz/relay/pkg/relay"
)

// paramDecl is the grammar of a compact parameter declaration:
//
//	name: string
//	page?: int
//	girl: entity Girl
//	model: model InputGirlModel
type paramDecl struct {
	Name     string `parser:"@(Ident | Wildcard)"`
	Optional bool   `parser:"@'?'? ':'"`
	Kind     string `parser:"@('entity' | 'model')?"`
	Type     string `parser:"@Ident"`
}

var paramParser = participle.MustBuild[paramDecl](
	participle.Lexer(lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_.]*`},
		{Name: "Wildcard", Pattern: `\*`},
		{Name: "Punct", Pattern: `[?:]`},
		{Name: "Whitespace", Pattern: `\s+`},
	})),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

// ParseParam parses one parameter declaration into a spec
func ParseParam(decl string) (relay.ParameterSpec, error) {
	d, err := paramParser.ParseString("", decl)
	if err != nil {
		return relay.ParameterSpec{}, fmt.Errorf("invalid parameter %q: %w", decl, err)
	}

	var spec relay.ParameterSpec
	switch d.Kind {
	case "entity":
		spec = relay.Entity(d.Name, d.Type)
	case "model":
		spec = relay.Model(d.Name, d.Type)
	default:
		t, err := relay.ParseLiteralType(d.Type)
		if err != nil {
			return relay.ParameterSpec{}, fmt.Errorf("invalid parameter %q: %w (prefix the type with entity or model)", decl, err)
		}
		spec = relay.Literal(d.Name, t)
	}

	if d.Optional {
		spec = spec.Optional()
	}
	return spec, nil
}

// ParseParams parses every declaration of a route
func ParseParams(decls []string) ([]relay.ParameterSpec, error) {
	specs := make([]relay.ParameterSpec, 0, len(decls))
	seen := make(map[string]struct{}, len(decls))
	for _, decl := range decls {
		spec, err := ParseParam(decl)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[spec.Name]; dup {
			return nil, fmt.Errorf("parameter %s is declared twice", spec.Name)
		}
		seen[spec.Name] = struct{}{}
		specs = append(specs, spec)
	}
	return specs, nil
}
