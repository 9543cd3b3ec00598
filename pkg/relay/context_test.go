package relay

import (
	"context"
	"net/http"
)

// fakeContext is an in-memory RequestContext for transport-free tests
type fakeContext struct {
	method      string
	path        string
	params      map[string]string
	query       map[string][]string
	form        map[string][]string
	formErr     error
	headers     map[string]string
	body        []byte
	contentType string
	store       map[string]any
	resp        *fakeResponse
}

func newFakeContext() *fakeContext {
	return &fakeContext{
		method:  http.MethodGet,
		path:    "/",
		params:  map[string]string{},
		query:   map[string][]string{},
		headers: map[string]string{},
		store:   map[string]any{},
		resp:    &fakeResponse{headers: map[string]string{}},
	}
}

func (c *fakeContext) Context() context.Context { return context.Background() }
func (c *fakeContext) Method() string { return c.method }
func (c *fakeContext) Path() string { return c.path }
func (c *fakeContext) Param(name string) string { return c.params[name] }
func (c *fakeContext) QueryParams() map[string][]string { return c.query }
func (c *fakeContext) Request() RequestInterface { return fakeRequest{c} }
func (c *fakeContext) Response() ResponseInterface { return c.resp }
func (c *fakeContext) Get(key string) any { return c.store[key] }
func (c *fakeContext) Set(key string, val any) { c.store[key] = val }
func (c *fakeContext) FormParams() (map[string][]string, error) { return c.form, c.formErr }

func (c *fakeContext) ParamNames() []string {
	names := make([]string, 0, len(c.params))
	for name := range c.params {
		names = append(names, name)
	}
	return names
}

type fakeRequest struct {
	c *fakeContext
}

func (r fakeRequest) Header(key string) string { return r.c.headers[key] }
func (r fakeRequest) Body() ([]byte, error) { return r.c.body, nil }
func (r fakeRequest) ContentType() string { return r.c.contentType }

type fakeResponse struct {
	status  int
	headers map[string]string
	body    any
	written bool
}

func (r *fakeResponse) Status() int { return r.status }
func (r *fakeResponse) SetHeader(key, value string) { r.headers[key] = value }

func (r *fakeResponse) JSON(code int, i any) error {
	r.status, r.body, r.written = code, i, true
	return nil
}

func (r *fakeResponse) NoContent(code int) error {
	r.status, r.written = code, true
	return nil
}

// fakeServer records registered routes
type fakeServer struct {
	routes      map[string]HandlerFunc
	middlewares []MiddlewareFunc
}

func newFakeServer() *fakeServer {
	return &fakeServer{routes: map[string]HandlerFunc{}}
}

func (s *fakeServer) RegisterRoute(method string, path Path, handler HandlerFunc, middlewares ...MiddlewareFunc) {
	s.routes[method+" "+path.Raw()] = handler
}

func (s *fakeServer) Use(m MiddlewareFunc) { s.middlewares = append(s.middlewares, m) }
func (s *fakeServer) Start(string) error { return nil }
func (s *fakeServer) Stop(context.Context) error { return nil }
func (s *fakeServer) Name() string { return "Fake" }
