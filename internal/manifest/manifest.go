// Package manifest loads route declarations from YAML and turns them into
// relay route descriptors.
//
// A manifest looks like:
//
//	prefix: /test
//	routes:
//	  - path: /girls/{girl}
//	    method: GET
//	    controller: TestController
//	    handler: GetGirl
//	    params:
//	      - "str: string"
//	      - "girl: entity Girl"
//	      - "model: model InputGirlModel"
//	      - "page?: int"
package manifest

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
)

// DefaultMethod is used for routes that don't name a method
const DefaultMethod = "POST"

// Manifest is the decoded route document. Prefix is prepended to every
// route path.
type Manifest struct {
	Prefix string  `yaml:"prefix" validate:"omitempty,startswith=/"`
	Routes []Route `yaml:"routes" validate:"required,dive"`
}

// Route is one route entry
type Route struct {
	Path       string   `yaml:"path" validate:"required,startswith=/"`
	Method     string   `yaml:"method" validate:"oneof=GET POST PUT PATCH DELETE HEAD OPTIONS"`
	Controller string   `yaml:"controller" validate:"required"`
	Handler    string   `yaml:"handler" validate:"required"`
	Params     []string `yaml:"params" validate:"dive,required"`
}

// Key returns "METHOD path"
func (r Route) Key() string {
	return r.Method + " " + r.Path
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Parse decodes and validates a manifest. Unknown keys are rejected.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.UnmarshalWithOptions(data, &m, yaml.DisallowUnknownField()); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}

	for i := range m.Routes {
		r := &m.Routes[i]
		r.Method = strings.ToUpper(strings.TrimSpace(r.Method))
		if r.Method == "" {
			r.Method = DefaultMethod
		}
		if m.Prefix != "" && strings.HasPrefix(r.Path, "/") {
			r.Path = strings.TrimRight(m.Prefix, "/") + r.Path
		}
	}

	if err := validate.Struct(&m); err != nil {
		return nil, validationError(err)
	}
	return &m, nil
}

// Load reads a manifest from r
func Load(r io.Reader) (*Manifest, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return Parse(data)
}

// LoadFile reads a manifest from disk
func LoadFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}
	return Parse(data)
}

// validationError flattens validator output into one readable error
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid manifest: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "Manifest.")
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s: failed %s=%s", field, fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s: failed %s", field, fe.Tag()))
		}
	}
	return fmt.Errorf("invalid manifest: %s", strings.Join(msgs, "; "))
}
