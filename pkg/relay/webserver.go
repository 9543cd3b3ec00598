package relay

import "context"

// WebServer is the contract the framework adapters implement
type WebServer interface {
	// Route registration
	RegisterRoute(method string, path Path, handler HandlerFunc, middlewares ...MiddlewareFunc)

	// Global middleware
	Use(middleware MiddlewareFunc)

	// Server lifecycle
	Start(addr string) error
	Stop(ctx context.Context) error

	// Name returns the framework name
	Name() string
}

// RequestContext is a framework-agnostic view of one HTTP exchange
type RequestContext interface {
	// Context returns the request's context
	Context() context.Context

	// Request data
	Method() string
	Path() string

	// Path parameters
	Param(name string) string
	ParamNames() []string

	// Query and form parameters
	QueryParams() map[string][]string
	FormParams() (map[string][]string, error)

	Request() RequestInterface
	Response() ResponseInterface

	// Context data
	Get(key string) any
	Set(key string, val any)
}

// RequestInterface provides access to the underlying request
type RequestInterface interface {
	Header(key string) string
	Body() ([]byte, error)
	ContentType() string
}

// ResponseInterface provides response writing capabilities
type ResponseInterface interface {
	Status() int
	SetHeader(key, value string)
	JSON(code int, i any) error
	NoContent(code int) error
}

// HandlerFunc defines the signature for HTTP handlers
type HandlerFunc func(RequestContext) error

// MiddlewareFunc defines the signature for middleware
type MiddlewareFunc func(HandlerFunc) HandlerFunc
