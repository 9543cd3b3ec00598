package adapters

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/toyz/relay/pkg/relay"
)

// EchoAdapter implements relay.WebServer for Echo v4
type EchoAdapter struct {
	engine *echo.Echo
}

// NewEchoAdapter creates a new Echo adapter
func NewEchoAdapter(e *echo.Echo) *EchoAdapter {
	e.HTTPErrorHandler = echoErrorHandler
	return &EchoAdapter{engine: e}
}

// NewDefaultEchoAdapter creates a new Echo adapter with a default Echo instance
func NewDefaultEchoAdapter() *EchoAdapter {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	return NewEchoAdapter(e)
}

// echoPath converts "/posts/{id}/{*}" to "/posts/:id/*"
func echoPath(path relay.Path) string {
	return path.Convert(func(name string) string { return ":" + name }, "*")
}

// RegisterRoute registers a route with the Echo server
func (ea *EchoAdapter) RegisterRoute(method string, path relay.Path, handler relay.HandlerFunc, middlewares ...relay.MiddlewareFunc) {
	echoMiddlewares := make([]echo.MiddlewareFunc, len(middlewares))
	for i, mw := range middlewares {
		echoMiddlewares[i] = ea.convertMiddleware(mw)
	}
	ea.engine.Add(strings.ToUpper(method), echoPath(path), ea.convertHandler(handler), echoMiddlewares...)
}

// Use adds global middleware
func (ea *EchoAdapter) Use(middleware relay.MiddlewareFunc) {
	ea.engine.Use(ea.convertMiddleware(middleware))
}

// Start starts the server
func (ea *EchoAdapter) Start(addr string) error {
	return ea.engine.Start(addr)
}

// Stop stops the server
func (ea *EchoAdapter) Stop(ctx context.Context) error {
	return ea.engine.Shutdown(ctx)
}

// Name returns the adapter name
func (ea *EchoAdapter) Name() string {
	return "Echo"
}

// GetEngine returns the underlying Echo instance
func (ea *EchoAdapter) GetEngine() *echo.Echo {
	return ea.engine
}

// ServeHTTP lets the adapter be used as an http.Handler
func (ea *EchoAdapter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ea.engine.ServeHTTP(w, r)
}

func (ea *EchoAdapter) convertHandler(handler relay.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handler(&EchoRequestContext{context: c})
	}
}

func (ea *EchoAdapter) convertMiddleware(middleware relay.MiddlewareFunc) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			relayNext := func(relay.RequestContext) error {
				return next(c)
			}
			return middleware(relayNext)(&EchoRequestContext{context: c})
		}
	}
}

// echoErrorHandler writes handler errors as {"error": message}
func echoErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code, message := relay.ErrorStatus(err)
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		}
	}
	if jsonErr := c.JSON(code, map[string]string{"error": message}); jsonErr != nil {
		c.Logger().Error(jsonErr)
	}
}

// EchoRequestContext implements relay.RequestContext for Echo
type EchoRequestContext struct {
	context echo.Context
}

// Context returns the request context
func (erc *EchoRequestContext) Context() context.Context {
	return erc.context.Request().Context()
}

// Method returns the HTTP method
func (erc *EchoRequestContext) Method() string {
	return erc.context.Request().Method
}

// Path returns the request path
func (erc *EchoRequestContext) Path() string {
	return erc.context.Request().URL.Path
}

// Param returns path parameter by name
func (erc *EchoRequestContext) Param(name string) string {
	return erc.context.Param(name)
}

// ParamNames returns path parameter names
func (erc *EchoRequestContext) ParamNames() []string {
	return erc.context.ParamNames()
}

// QueryParams returns all query parameters
func (erc *EchoRequestContext) QueryParams() map[string][]string {
	return erc.context.QueryParams()
}

// FormParams returns the body's form fields
func (erc *EchoRequestContext) FormParams() (map[string][]string, error) {
	return postForm(erc.context.Request())
}

// Request returns the request interface
func (erc *EchoRequestContext) Request() relay.RequestInterface {
	return &httpRequest{request: erc.context.Request()}
}

// Response returns the response interface
func (erc *EchoRequestContext) Response() relay.ResponseInterface {
	return &EchoResponse{context: erc.context}
}

// Get retrieves data from context
func (erc *EchoRequestContext) Get(key string) any {
	return erc.context.Get(key)
}

// Set stores data in context
func (erc *EchoRequestContext) Set(key string, val any) {
	erc.context.Set(key, val)
}

// EchoResponse implements relay.ResponseInterface for Echo
type EchoResponse struct {
	context echo.Context
}

// Status returns the response status code
func (er *EchoResponse) Status() int {
	return er.context.Response().Status
}

// SetHeader sets a response header
func (er *EchoResponse) SetHeader(key, value string) {
	er.context.Response().Header().Set(key, value)
}

// JSON writes a JSON response
func (er *EchoResponse) JSON(code int, i any) error {
	return er.context.JSON(code, i)
}

// NoContent writes a bodyless response
func (er *EchoResponse) NoContent(code int) error {
	return er.context.NoContent(code)
}

// httpRequest implements relay.RequestInterface over net/http, shared by
// the Echo and Gin adapters
type httpRequest struct {
	request *http.Request
}

// Header returns a request header value
func (r *httpRequest) Header(key string) string {
	return r.request.Header.Get(key)
}

// Body reads the request body and restores it for later readers
func (r *httpRequest) Body() ([]byte, error) {
	if r.request.Body == nil {
		return nil, nil
	}
	body, err := io.ReadAll(r.request.Body)
	if err != nil {
		return nil, err
	}
	r.request.Body = io.NopCloser(strings.NewReader(string(body)))
	return body, nil
}

// ContentType returns the content type
func (r *httpRequest) ContentType() string {
	return r.request.Header.Get("Content-Type")
}

const maxMultipartMemory = 32 << 20

// postForm parses body form fields only, leaving query values out
func postForm(r *http.Request) (map[string][]string, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			return nil, err
		}
		return r.MultipartForm.Value, nil
	}
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	return r.PostForm, nil
}
