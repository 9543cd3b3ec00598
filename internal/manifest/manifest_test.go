package manifest

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toyz/relay/pkg/relay"
)

const testManifest = `
routes:
  - path: /girls/{girl}
    method: get
    controller: TestController
    handler: GetGirl
    params:
      - "str: string"
      - "girl: entity Girl"
      - "model: model InputGirlModel"
  - path: /posts/{post}
    controller: TestController
    handler: GetPost
    params:
      - "post: entity Post"
      - "page?: int"
`

type testController struct{}

func testBindings() Bindings {
	handler := func(context.Context, any, relay.Arguments) (any, error) { return "ok", nil }
	return Bindings{
		"TestController": {
			New: func() any { return &testController{} },
			Handlers: map[string]HandlerBinding{
				"GetGirl": {
					Params: []relay.DeclaredParam{
						{Name: "model", Type: "InputGirlModel"},
						{Name: "str", Type: "string"},
						{Name: "girl", Type: "Girl"},
						{Name: "service", Type: "GirlService"},
					},
					Handler: handler,
				},
				"GetPost": {
					Params: []relay.DeclaredParam{
						{Name: "post", Type: "Post"},
						{Name: "page", Type: "int"},
					},
					Handler: handler,
				},
			},
		},
	}
}

func TestParse(t *testing.T) {
	m, err := Parse([]byte(testManifest))
	require.NoError(t, err)
	require.Len(t, m.Routes, 2)

	assert.Equal(t, "GET", m.Routes[0].Method)
	assert.Equal(t, "/girls/{girl}", m.Routes[0].Path)
	assert.Equal(t, DefaultMethod, m.Routes[1].Method)
	assert.Equal(t, []string{"post: entity Post", "page?: int"}, m.Routes[1].Params)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		contains string
	}{
		{
			name:     "relative path",
			doc:      "routes:\n  - path: girls\n    controller: C\n    handler: H\n",
			contains: "Routes[0].Path: failed startswith=/",
		},
		{
			name:     "missing handler",
			doc:      "routes:\n  - path: /girls\n    controller: C\n",
			contains: "Routes[0].Handler: failed required",
		},
		{
			name:     "unsupported method",
			doc:      "routes:\n  - path: /girls\n    method: BREW\n    controller: C\n    handler: H\n",
			contains: "Routes[0].Method: failed oneof",
		},
		{
			name:     "empty param",
			doc:      "routes:\n  - path: /girls\n    controller: C\n    handler: H\n    params: [\"\"]\n",
			contains: "Routes[0].Params[0]: failed required",
		},
		{
			name:     "unknown key",
			doc:      "routes:\n  - path: /girls\n    controller: C\n    handler: H\n    verb: GET\n",
			contains: "decode manifest",
		},
		{
			name:     "not yaml",
			doc:      "routes: [",
			contains: "decode manifest",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestParse_Prefix(t *testing.T) {
	m, err := Parse([]byte("prefix: /test/\nroutes:\n  - path: /string\n    method: GET\n    controller: C\n    handler: H\n"))
	require.NoError(t, err)
	assert.Equal(t, "/test/string", m.Routes[0].Path)

	_, err = Parse([]byte("prefix: test\nroutes: []\n"))
	assert.ErrorContains(t, err, "Prefix: failed startswith=/")
}

func TestLoad(t *testing.T) {
	m, err := Load(strings.NewReader(testManifest))
	require.NoError(t, err)
	assert.Len(t, m.Routes, 2)

	_, err = LoadFile("testdata/does-not-exist.yaml")
	assert.Error(t, err)
}

func TestBuild(t *testing.T) {
	m, err := Parse([]byte(testManifest))
	require.NoError(t, err)

	table := relay.NewRouteTable()
	require.NoError(t, Build(m, testBindings(), table))

	routes := table.All()
	require.Len(t, routes, 2)

	girl := routes[0]
	assert.Equal(t, "GET /girls/{girl}", girl.Key())
	assert.Equal(t, "TestController.GetGirl", girl.Name())
	assert.Len(t, girl.Params, 4)

	spec, ok := girl.Spec("girl")
	require.True(t, ok)
	assert.Equal(t, relay.Entity("girl", "Girl"), spec)
	_, ok = girl.Spec("service")
	assert.False(t, ok, "service parameters have no spec")

	post := routes[1]
	page, ok := post.Spec("page")
	require.True(t, ok)
	assert.False(t, page.Required)

	_, isController := post.Controller().(*testController)
	assert.True(t, isController)
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name     string
		route    Route
		contains string
	}{
		{name: "unknown controller", route: Route{Path: "/x", Method: "GET", Controller: "Nope", Handler: "GetGirl"}, contains: "unknown controller"},
		{name: "unknown handler", route: Route{Path: "/x", Method: "GET", Controller: "TestController", Handler: "Nope"}, contains: "has no handler"},
		{name: "undeclared parameter", route: Route{Path: "/x", Method: "GET", Controller: "TestController", Handler: "GetPost", Params: []string{"girl: entity Girl"}}, contains: "has no parameter girl"},
		{name: "bad declaration", route: Route{Path: "/x", Method: "GET", Controller: "TestController", Handler: "GetPost", Params: []string{"post: Post"}}, contains: "entity or model"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := relay.NewRouteTable()
			err := Build(&Manifest{Routes: []Route{tt.route}}, testBindings(), table)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
			assert.Equal(t, 0, table.Len())
		})
	}
}

func TestBuild_FrozenTable(t *testing.T) {
	m, err := Parse([]byte(testManifest))
	require.NoError(t, err)

	table := relay.NewRouteTable()
	table.Freeze()
	assert.ErrorIs(t, Build(m, testBindings(), table), relay.ErrTableFrozen)
}
