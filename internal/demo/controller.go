package demo

import (
	"context"
	"net/http"

	"github.com/toyz/relay/internal/manifest"
	"github.com/toyz/relay/pkg/relay"
)

// TestControllerType identifies TestController in route declarations
const TestControllerType = "TestController"

// TestController serves the demo routes. A new instance handles each request.
type TestController struct{}

// NewTestController creates a controller
func NewTestController() any {
	return &TestController{}
}

// GirlResponse is returned by GetGirl
type GirlResponse struct {
	Model  *InputGirlModel `json:"model"`
	Str    string          `json:"str"`
	GirlID int             `json:"girl_id"`
	Posts  []string        `json:"posts"`
}

// GetGirl echoes its resolved dependencies
func (c *TestController) GetGirl(_ context.Context, args relay.Arguments) (any, error) {
	model, err := relay.ArgAs[*InputGirlModel](args, "model")
	if err != nil {
		return nil, err
	}
	str, err := relay.ArgAs[string](args, "str")
	if err != nil {
		return nil, err
	}
	girl, err := relay.ArgAs[Girl](args, "girl")
	if err != nil {
		return nil, err
	}
	service, err := relay.ArgAs[*GirlService](args, "service")
	if err != nil {
		return nil, err
	}

	return GirlResponse{
		Model:  model,
		Str:    str,
		GirlID: girl.ID,
		Posts:  service.Posts(girl),
	}, nil
}

// GetPost returns the post with its author
func (c *TestController) GetPost(_ context.Context, args relay.Arguments) (any, error) {
	post, err := relay.ArgAs[Post](args, "post")
	if err != nil {
		return nil, err
	}
	service, err := relay.ArgAs[*GirlService](args, "service")
	if err != nil {
		return nil, err
	}

	author, err := service.Author(post)
	if err != nil {
		return nil, relay.NewHTTPError(http.StatusNotFound, "").WithInternal(err)
	}
	return map[string]any{"post": post, "author": author}, nil
}

// CreateGirl stores a girl built from the request model
func (c *TestController) CreateGirl(_ context.Context, args relay.Arguments) (any, error) {
	model, err := relay.ArgAs[*InputGirlModel](args, "model")
	if err != nil {
		return nil, err
	}
	if model.Name == "" {
		return nil, relay.NewHTTPError(http.StatusUnprocessableEntity, "name is required")
	}
	repos, err := relay.ArgAs[*Repositories](args, "repos")
	if err != nil {
		return nil, err
	}

	girl := Girl{ID: repos.NextGirlID(), Name: model.Name, Age: model.Age}
	repos.Girls.Put(girl.ID, girl)
	return relay.Created(girl), nil
}

// Bindings makes TestController addressable from the route manifest
func Bindings() manifest.Bindings {
	return manifest.Bindings{
		TestControllerType: {
			New: NewTestController,
			Handlers: map[string]manifest.HandlerBinding{
				"GetGirl": {
					Params: []relay.DeclaredParam{
						{Name: "model", Type: InputGirlModelType},
						{Name: "str", Type: "string"},
						{Name: "girl", Type: GirlEntity},
						{Name: "service", Type: GirlServiceType},
					},
					Handler: relay.Method((*TestController).GetGirl),
				},
				"GetPost": {
					Params: []relay.DeclaredParam{
						{Name: "post", Type: PostEntity},
						{Name: "service", Type: GirlServiceType},
					},
					Handler: relay.Method((*TestController).GetPost),
				},
				"CreateGirl": {
					Params: []relay.DeclaredParam{
						{Name: "model", Type: InputGirlModelType},
						{Name: "repos", Type: RepositoriesType},
					},
					Handler: relay.Method((*TestController).CreateGirl),
				},
			},
		},
	}
}
