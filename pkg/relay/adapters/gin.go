package adapters

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/toyz/relay/pkg/relay"
)

// GinAdapter implements relay.WebServer for the Gin framework
type GinAdapter struct {
	engine *gin.Engine
	server *http.Server
}

// NewGinAdapter creates a new Gin adapter
func NewGinAdapter(g *gin.Engine) *GinAdapter {
	return &GinAdapter{engine: g}
}

// NewDefaultGinAdapter creates a new Gin adapter with panic recovery
func NewDefaultGinAdapter() *GinAdapter {
	engine := gin.New()
	engine.Use(gin.Recovery())
	return NewGinAdapter(engine)
}

// ginWildcard names the catch-all segment. Gin requires a named catch-all, so
// the name is reserved on this adapter.
const ginWildcard = "relay_wildcard"

// ginPath converts "/posts/{id}/{*}" to "/posts/:id/*relay_wildcard"
func ginPath(path relay.Path) string {
	return path.Convert(func(name string) string { return ":" + name }, "*"+ginWildcard)
}

// RegisterRoute registers a route with the Gin engine
func (ga *GinAdapter) RegisterRoute(method string, path relay.Path, handler relay.HandlerFunc, middlewares ...relay.MiddlewareFunc) {
	handlers := make([]gin.HandlerFunc, 0, len(middlewares)+1)
	for _, mw := range middlewares {
		handlers = append(handlers, ga.convertMiddleware(mw))
	}
	handlers = append(handlers, ga.convertHandler(handler))
	ga.engine.Handle(strings.ToUpper(method), ginPath(path), handlers...)
}

// Use registers a global middleware
func (ga *GinAdapter) Use(middleware relay.MiddlewareFunc) {
	ga.engine.Use(ga.convertMiddleware(middleware))
}

// Start serves the engine through an http.Server so Stop can drain it
func (ga *GinAdapter) Start(addr string) error {
	ga.server = &http.Server{Addr: addr, Handler: ga.engine}
	if err := ga.server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop gracefully shuts the server down
func (ga *GinAdapter) Stop(ctx context.Context) error {
	if ga.server == nil {
		return nil
	}
	return ga.server.Shutdown(ctx)
}

// Name returns the adapter name
func (ga *GinAdapter) Name() string {
	return "Gin"
}

// GetEngine returns the underlying Gin engine
func (ga *GinAdapter) GetEngine() *gin.Engine {
	return ga.engine
}

// ServeHTTP lets the adapter be used as an http.Handler
func (ga *GinAdapter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ga.engine.ServeHTTP(w, r)
}

func (ga *GinAdapter) convertHandler(handler relay.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := handler(&GinRequestContext{ctx: c}); err != nil {
			_ = c.Error(err)
			code, message := relay.ErrorStatus(err)
			c.AbortWithStatusJSON(code, gin.H{"error": message})
		}
	}
}

func (ga *GinAdapter) convertMiddleware(middleware relay.MiddlewareFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		next := func(relay.RequestContext) error {
			c.Next()
			return nil
		}
		if err := middleware(next)(&GinRequestContext{ctx: c}); err != nil {
			code, message := relay.ErrorStatus(err)
			c.AbortWithStatusJSON(code, gin.H{"error": message})
		}
	}
}

// GinRequestContext implements relay.RequestContext for Gin
type GinRequestContext struct {
	ctx *gin.Context
}

// Context returns the request context
func (grc *GinRequestContext) Context() context.Context {
	return grc.ctx.Request.Context()
}

// Method returns the HTTP method
func (grc *GinRequestContext) Method() string {
	return grc.ctx.Request.Method
}

// Path returns the request path
func (grc *GinRequestContext) Path() string {
	return grc.ctx.Request.URL.Path
}

// Param returns a path parameter; the wildcard is exposed as "*"
func (grc *GinRequestContext) Param(name string) string {
	if name == "*" {
		return strings.TrimPrefix(grc.ctx.Param(ginWildcard), "/")
	}
	return grc.ctx.Param(name)
}

// ParamNames returns path parameter names
func (grc *GinRequestContext) ParamNames() []string {
	names := make([]string, 0, len(grc.ctx.Params))
	for _, p := range grc.ctx.Params {
		if p.Key == ginWildcard {
			names = append(names, "*")
			continue
		}
		names = append(names, p.Key)
	}
	return names
}

// QueryParams returns all query parameters
func (grc *GinRequestContext) QueryParams() map[string][]string {
	return grc.ctx.Request.URL.Query()
}

// FormParams returns the body's form fields
func (grc *GinRequestContext) FormParams() (map[string][]string, error) {
	return postForm(grc.ctx.Request)
}

// Request returns the request interface
func (grc *GinRequestContext) Request() relay.RequestInterface {
	return &httpRequest{request: grc.ctx.Request}
}

// Response returns the response interface
func (grc *GinRequestContext) Response() relay.ResponseInterface {
	return &GinResponse{ctx: grc.ctx}
}

// Get retrieves data from context
func (grc *GinRequestContext) Get(key string) any {
	value, _ := grc.ctx.Get(key)
	return value
}

// Set stores data in context
func (grc *GinRequestContext) Set(key string, val any) {
	grc.ctx.Set(key, val)
}

// GinResponse implements relay.ResponseInterface for Gin
type GinResponse struct {
	ctx *gin.Context
}

// Status returns the response status code
func (gr *GinResponse) Status() int {
	return gr.ctx.Writer.Status()
}

// SetHeader sets a response header
func (gr *GinResponse) SetHeader(key, value string) {
	gr.ctx.Header(key, value)
}

// JSON writes a JSON response
func (gr *GinResponse) JSON(code int, i any) error {
	gr.ctx.JSON(code, i)
	return nil
}

// NoContent writes a bodyless response
func (gr *GinResponse) NoContent(code int) error {
	gr.ctx.Status(code)
	gr.ctx.Writer.WriteHeaderNow()
	return nil
}
