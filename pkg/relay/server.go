package relay

import (
	"log/slog"

	"github.com/google/uuid"
)

// RequestIDKey is the context key and RequestIDHeader the header used for
// request correlation
const (
	RequestIDKey    = "request_id"
	RequestIDHeader = "X-Request-ID"
)

// Mount freezes the table and registers one Endpoint per route on the
// server. When several routes share a method and path the first registered
// one is mounted and the others are logged and skipped.
func Mount(server WebServer, table *RouteTable, dispatcher *Dispatcher, logger *slog.Logger) []*Endpoint {
	if logger == nil {
		logger = slog.Default()
	}
	table.Freeze()

	routes := table.All()
	endpoints := make([]*Endpoint, 0, len(routes))
	mounted := make(map[string]RouteDescriptor, len(routes))

	for _, route := range routes {
		if first, dup := mounted[route.Key()]; dup {
			logger.Warn("skipping duplicate route",
				slog.String("route", route.Key()),
				slog.String("handler", route.Name()),
				slog.String("mounted", first.Name()),
			)
			continue
		}
		mounted[route.Key()] = route

		ep := NewEndpoint(route, dispatcher, logger)
		server.RegisterRoute(route.Method, Path(route.Path), ep.Handle)
		endpoints = append(endpoints, ep)

		logger.Debug("mounted route",
			slog.String("server", server.Name()),
			slog.String("route", route.Key()),
			slog.String("handler", route.Name()),
		)
	}
	return endpoints
}

// RequestID tags each request with the inbound X-Request-ID header or a new
// UUID, stores it under RequestIDKey and echoes it on the response
func RequestID() MiddlewareFunc {
	return func(next HandlerFunc) HandlerFunc {
		return func(c RequestContext) error {
			id := c.Request().Header(RequestIDHeader)
			if id == "" {
				id = uuid.NewString()
			}
			c.Set(RequestIDKey, id)
			c.Response().SetHeader(RequestIDHeader, id)
			return next(c)
		}
	}
}
