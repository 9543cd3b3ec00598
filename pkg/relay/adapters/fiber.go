package adapters

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/toyz/relay/pkg/relay"
)

// FiberAdapter implements relay.WebServer for Fiber v2
type FiberAdapter struct {
	app *fiber.App
}

// NewFiberAdapter creates a new Fiber adapter instance
func NewFiberAdapter() *FiberAdapter {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code, message := relay.ErrorStatus(err)
			if e, ok := err.(*fiber.Error); ok {
				code, message = e.Code, e.Message
			}
			return c.Status(code).JSON(fiber.Map{"error": message})
		},
	})
	return &FiberAdapter{app: app}
}

// NewDefaultFiberAdapter creates a new Fiber adapter with panic recovery
func NewDefaultFiberAdapter() *FiberAdapter {
	adapter := NewFiberAdapter()
	adapter.app.Use(recover.New())
	return adapter
}

// fiberPath converts "/posts/{id}/{*}" to "/posts/:id/*"
func fiberPath(path relay.Path) string {
	return path.Convert(func(name string) string { return ":" + name }, "*")
}

// RegisterRoute registers a route with the Fiber app
func (fa *FiberAdapter) RegisterRoute(method string, path relay.Path, handler relay.HandlerFunc, middlewares ...relay.MiddlewareFunc) {
	handlers := make([]fiber.Handler, 0, len(middlewares)+1)
	for _, mw := range middlewares {
		handlers = append(handlers, convertFiberMiddleware(mw))
	}
	handlers = append(handlers, convertFiberHandler(handler))
	fa.app.Add(strings.ToUpper(method), fiberPath(path), handlers...)
}

// Use adds middleware to the Fiber app
func (fa *FiberAdapter) Use(middleware relay.MiddlewareFunc) {
	fa.app.Use(convertFiberMiddleware(middleware))
}

// Start starts the Fiber server
func (fa *FiberAdapter) Start(addr string) error {
	return fa.app.Listen(addr)
}

// Stop stops the Fiber server
func (fa *FiberAdapter) Stop(ctx context.Context) error {
	return fa.app.ShutdownWithContext(ctx)
}

// Name returns the adapter name
func (fa *FiberAdapter) Name() string {
	return "Fiber"
}

// GetApp returns the underlying Fiber app
func (fa *FiberAdapter) GetApp() *fiber.App {
	return fa.app
}

func convertFiberHandler(handler relay.HandlerFunc) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return handler(&FiberRequestContext{ctx: c})
	}
}

func convertFiberMiddleware(middleware relay.MiddlewareFunc) fiber.Handler {
	return func(c *fiber.Ctx) error {
		next := func(relay.RequestContext) error {
			return c.Next()
		}
		return middleware(next)(&FiberRequestContext{ctx: c})
	}
}

// FiberRequestContext implements relay.RequestContext for Fiber. Values are
// copied out of fasthttp's reusable buffers.
type FiberRequestContext struct {
	ctx *fiber.Ctx
}

// Context returns the request's user context
func (frc *FiberRequestContext) Context() context.Context {
	return frc.ctx.UserContext()
}

// Method returns the HTTP method
func (frc *FiberRequestContext) Method() string {
	return strings.Clone(frc.ctx.Method())
}

// Path returns the request path
func (frc *FiberRequestContext) Path() string {
	return strings.Clone(frc.ctx.Path())
}

// Param returns a path parameter by name
func (frc *FiberRequestContext) Param(name string) string {
	return strings.Clone(frc.ctx.Params(name))
}

// ParamNames returns the matched route's parameter names. Fiber numbers
// wildcards ("*1"); the first one is exposed as "*".
func (frc *FiberRequestContext) ParamNames() []string {
	params := frc.ctx.Route().Params
	names := make([]string, 0, len(params))
	for _, p := range params {
		if p == "*1" {
			p = "*"
		}
		names = append(names, p)
	}
	return names
}

// QueryParams returns all query parameters
func (frc *FiberRequestContext) QueryParams() map[string][]string {
	result := make(map[string][]string)
	frc.ctx.Request().URI().QueryArgs().VisitAll(func(key, value []byte) {
		k := string(key)
		result[k] = append(result[k], string(value))
	})
	return result
}

// FormParams returns the body's form fields
func (frc *FiberRequestContext) FormParams() (map[string][]string, error) {
	if strings.HasPrefix(string(frc.ctx.Request().Header.ContentType()), fiber.MIMEMultipartForm) {
		form, err := frc.ctx.MultipartForm()
		if err != nil {
			return nil, err
		}
		return form.Value, nil
	}

	result := make(map[string][]string)
	frc.ctx.Request().PostArgs().VisitAll(func(key, value []byte) {
		k := string(key)
		result[k] = append(result[k], string(value))
	})
	return result, nil
}

// Request returns the request interface
func (frc *FiberRequestContext) Request() relay.RequestInterface {
	return &FiberRequest{ctx: frc.ctx}
}

// Response returns the response interface
func (frc *FiberRequestContext) Response() relay.ResponseInterface {
	return &FiberResponse{ctx: frc.ctx}
}

// Get retrieves data from the request locals
func (frc *FiberRequestContext) Get(key string) any {
	return frc.ctx.Locals(key)
}

// Set stores data in the request locals
func (frc *FiberRequestContext) Set(key string, val any) {
	frc.ctx.Locals(key, val)
}

// FiberRequest implements relay.RequestInterface for Fiber
type FiberRequest struct {
	ctx *fiber.Ctx
}

// Header returns a request header value
func (fr *FiberRequest) Header(key string) string {
	return strings.Clone(fr.ctx.Get(key))
}

// Body returns a copy of the request body
func (fr *FiberRequest) Body() ([]byte, error) {
	return append([]byte(nil), fr.ctx.Body()...), nil
}

// ContentType returns the content type
func (fr *FiberRequest) ContentType() string {
	return string(fr.ctx.Request().Header.ContentType())
}

// FiberResponse implements relay.ResponseInterface for Fiber
type FiberResponse struct {
	ctx *fiber.Ctx
}

// Status returns the response status code
func (fr *FiberResponse) Status() int {
	return fr.ctx.Response().StatusCode()
}

// SetHeader sets a response header
func (fr *FiberResponse) SetHeader(key, value string) {
	fr.ctx.Set(key, value)
}

// JSON writes a JSON response
func (fr *FiberResponse) JSON(code int, i any) error {
	return fr.ctx.Status(code).JSON(i)
}

// NoContent writes a bodyless response
func (fr *FiberResponse) NoContent(code int) error {
	return fr.ctx.SendStatus(code)
}
