package relay

import (
	"context"
	"errors"
	"fmt"
)

// Resolution is the input of a single strategy step
type Resolution struct {
	// Param is the declared handler parameter being resolved
	Param DeclaredParam

	// Spec is the parameter's spec; HasSpec is false for service parameters
	Spec    ParameterSpec
	HasSpec bool

	// Raw is the request value; Present is false when the request lacks it
	Raw     any
	Present bool
}

// Strategy turns one Resolution into an argument value
type Strategy interface {
	Resolve(ctx context.Context, in Resolution) (any, error)
}

// StrategyFunc adapts a function to Strategy
type StrategyFunc func(ctx context.Context, in Resolution) (any, error)

// Resolve implements Strategy
func (f StrategyFunc) Resolve(ctx context.Context, in Resolution) (any, error) {
	return f(ctx, in)
}

// LiteralStrategy coerces the raw value to the spec's literal type
type LiteralStrategy struct{}

// Resolve implements Strategy
func (LiteralStrategy) Resolve(_ context.Context, in Resolution) (any, error) {
	if !in.Present {
		if in.Spec.Required {
			return nil, &MissingParameterError{Name: in.Param.Name}
		}
		return zeroValue(in.Spec.LiteralType), nil
	}
	return Coerce(in.Raw, in.Spec.LiteralType)
}

// EntityStrategy loads the entity whose id is the raw value
type EntityStrategy struct {
	Entities EntityStore
}

// Resolve implements Strategy
func (s EntityStrategy) Resolve(ctx context.Context, in Resolution) (any, error) {
	if !in.Present {
		if in.Spec.Required {
			return nil, &MissingParameterError{Name: in.Param.Name}
		}
		return nil, nil
	}

	id := CoerceInt(in.Raw)
	entityType := in.Spec.EntityType

	if s.Entities == nil {
		return nil, &EntityNotFoundError{EntityType: entityType, ID: id, Cause: errors.New("no entity store configured")}
	}
	repo, ok := s.Entities.Repository(entityType)
	if !ok {
		return nil, &EntityNotFoundError{EntityType: entityType, ID: id, Cause: fmt.Errorf("no repository for %s", entityType)}
	}

	entity, found, err := repo.Find(ctx, id)
	if err != nil {
		return nil, &EntityNotFoundError{EntityType: entityType, ID: id, Cause: err}
	}
	if !found {
		return nil, &EntityNotFoundError{EntityType: entityType, ID: id}
	}
	return entity, nil
}

// ModelStrategy hydrates a registered model from a request mapping. A
// missing value yields a blank instance.
type ModelStrategy struct {
	Models *ModelRegistry
}

// Resolve implements Strategy
func (s ModelStrategy) Resolve(_ context.Context, in Resolution) (any, error) {
	modelType := in.Spec.ModelType
	if s.Models == nil {
		return nil, &ModelBindingError{ModelType: modelType, Cause: errors.New("no model registry configured")}
	}
	schema, ok := s.Models.Schema(modelType)
	if !ok {
		return nil, &ModelBindingError{ModelType: modelType, Cause: fmt.Errorf("model %s is not registered", modelType)}
	}

	var raw any
	if in.Present {
		raw = in.Raw
	}
	model, err := schema.Hydrate(raw)
	if err != nil {
		return nil, &ModelBindingError{ModelType: modelType, Cause: err}
	}
	return model, nil
}

// ServiceStrategy fetches the declared type from the service container.
// Literal-typed parameters without a spec can't be services and are
// reported as missing.
type ServiceStrategy struct {
	Services ServiceContainer
}

// Resolve implements Strategy
func (s ServiceStrategy) Resolve(ctx context.Context, in Resolution) (any, error) {
	if IsLiteralType(in.Param.Type) {
		return nil, &MissingParameterError{Name: in.Param.Name}
	}
	if s.Services == nil {
		return nil, &ServiceNotFoundError{TypeID: in.Param.Type, Cause: errors.New("no service container configured")}
	}

	instance, err := s.Services.Resolve(ctx, in.Param.Type)
	if err != nil {
		return nil, &ServiceNotFoundError{TypeID: in.Param.Type, Cause: err}
	}
	return instance, nil
}
