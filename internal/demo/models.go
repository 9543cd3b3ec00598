package demo

import (
	"fmt"

	"github.com/toyz/relay/pkg/relay"
)

// InputGirlModelType identifies InputGirlModel in route declarations
const InputGirlModelType = "InputGirlModel"

// InputGirlModel is the request payload describing a girl
type InputGirlModel struct {
	Name   string `json:"name"`
	Age    int    `json:"age"`
	Active bool   `json:"active"`
	Tags   []any  `json:"tags"`
}

// Assign implements relay.Bindable
func (m *InputGirlModel) Assign(field string, value any) error {
	switch field {
	case "name":
		m.Name = value.(string)
	case "age":
		m.Age = value.(int)
	case "active":
		m.Active = value.(bool)
	case "tags":
		m.Tags = value.([]any)
	default:
		return fmt.Errorf("InputGirlModel has no field %s", field)
	}
	return nil
}

// InputGirlModelSchema is the field table of InputGirlModel
var InputGirlModelSchema = relay.ModelSchema{
	Type: InputGirlModelType,
	Fields: []relay.FieldSpec{
		{Name: "name", Type: relay.StringType},
		{Name: "age", Type: relay.IntType},
		{Name: "active", Type: relay.BoolType},
		{Name: "tags", Type: relay.ListType},
	},
	New: func() relay.Bindable { return &InputGirlModel{} },
}

// NewModels registers the demo models
func NewModels() (*relay.ModelRegistry, error) {
	models := relay.NewModelRegistry()
	if err := models.Register(InputGirlModelSchema); err != nil {
		return nil, err
	}
	return models, nil
}
