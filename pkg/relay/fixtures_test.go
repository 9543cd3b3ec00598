package relay

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
)

type girl struct {
	ID   int
	Name string
}

type girlService struct {
	greeting string
}

type inputGirl struct {
	Age    int
	Name   string
	Active bool
	Tags   []any
}

func (m *inputGirl) Assign(field string, value any) error {
	switch field {
	case "age":
		m.Age = value.(int)
	case "name":
		m.Name = value.(string)
	case "active":
		m.Active = value.(bool)
	case "tags":
		m.Tags = value.([]any)
	default:
		return fmt.Errorf("no field %s", field)
	}
	return nil
}

var inputGirlSchema = ModelSchema{
	Type: "InputGirlModel",
	Fields: []FieldSpec{
		{Name: "age", Type: IntType},
		{Name: "name", Type: StringType},
		{Name: "active", Type: BoolType},
		{Name: "tags", Type: ListType},
	},
	New: func() Bindable { return &inputGirl{} },
}

type failingRepository struct{}

func (failingRepository) Find(context.Context, int) (any, bool, error) {
	return nil, false, errors.New("connection refused")
}

// testController records how often a handler ran
type testController struct {
	calls *atomic.Int32
}

type fixture struct {
	entities   *Entities
	models     *ModelRegistry
	services   *Container
	dispatcher *Dispatcher
	calls      *atomic.Int32
}

func newFixture() *fixture {
	f := &fixture{
		entities: NewEntities(),
		models:   NewModelRegistry(),
		services: NewContainer(),
		calls:    &atomic.Int32{},
	}
	f.entities.Register("Girl", NewMemoryRepository(map[int]girl{
		5: {ID: 5, Name: "Alice"},
	}))
	f.entities.Register("Broken", failingRepository{})
	f.models.MustRegister(inputGirlSchema)
	_ = f.services.Instance("GirlService", &girlService{greeting: "hi"})

	f.dispatcher = NewDispatcher(
		WithEntities(f.entities),
		WithModels(f.models),
		WithServices(f.services),
	)
	return f
}

// route builds a descriptor whose handler echoes its arguments back
func (f *fixture) route(params []DeclaredParam, specs ...ParameterSpec) RouteDescriptor {
	calls := f.calls
	return RouteDescriptor{
		Path:           "/test",
		Method:         "GET",
		ControllerType: "TestController",
		HandlerName:    "Echo",
		Params:         params,
		Specs:          Specs(specs...),
		Controller:     func() any { return &testController{calls: calls} },
		Handler: Method(func(c *testController, _ context.Context, args Arguments) (any, error) {
			c.calls.Add(1)
			return args.Values(), nil
		}),
	}
}
