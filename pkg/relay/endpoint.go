package relay

import (
	"log/slog"
	"net/http"
)

// Endpoint is the transport handler of one route. It holds its descriptor
// by value and serves requests through the shared Dispatcher.
type Endpoint struct {
	route      RouteDescriptor
	dispatcher *Dispatcher
	logger     *slog.Logger
}

// NewEndpoint creates the handler object for a route
func NewEndpoint(route RouteDescriptor, dispatcher *Dispatcher, logger *slog.Logger) *Endpoint {
	if logger == nil {
		logger = slog.Default()
	}
	return &Endpoint{
		route:      route.clone(),
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Route returns the endpoint's descriptor
func (e *Endpoint) Route() RouteDescriptor {
	return e.route
}

// Handle serves one request. Resolution failures are written as the routing
// error envelope; errors returned by the controller go back to the transport.
func (e *Endpoint) Handle(c RequestContext) error {
	ctx := c.Context()
	logger := e.logger.With(
		slog.String("route", e.route.Key()),
		slog.String("handler", e.route.Name()),
	)
	if id, ok := c.Get(RequestIDKey).(string); ok {
		logger = logger.With(slog.String("request_id", id))
	}

	src, err := NewRequestSource(c)
	if err != nil {
		logger.WarnContext(ctx, "rejecting malformed request", slog.String("error", err.Error()))
		return c.Response().JSON(http.StatusBadRequest, map[string]any{
			"code":    "invalid-request",
			"message": err.Error(),
			"data":    map[string]any{"status": http.StatusBadRequest},
		})
	}

	result, err := e.dispatcher.Dispatch(ctx, e.route, src)
	if err != nil {
		if rerr, ok := err.(*RoutingError); ok {
			logger.InfoContext(ctx, "request rejected", slog.String("error", rerr.Message))
			return c.Response().JSON(rerr.Status, rerr.Body())
		}
		return err
	}
	return writeResult(c, result)
}

func writeResult(c RequestContext, result any) error {
	switch r := result.(type) {
	case *Response:
		if r == nil {
			return c.Response().JSON(http.StatusOK, nil)
		}
		return writeResponse(c, *r)
	case Response:
		return writeResponse(c, r)
	default:
		return c.Response().JSON(http.StatusOK, result)
	}
}

func writeResponse(c RequestContext, r Response) error {
	status := r.StatusCode
	if status == 0 {
		status = http.StatusOK
	}
	if r.Body == nil {
		return c.Response().NoContent(status)
	}
	return c.Response().JSON(status, r.Body)
}
