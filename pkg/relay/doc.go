// Package relay provides declarative route registration and per-request
// dependency resolution for HTTP handlers.
//
// A RouteDescriptor describes one endpoint: its path, method, controller,
// handler and the ordered parameters the handler declares. Each declared
// parameter is resolved for every request by one of four strategies:
//
//   - literal: the raw request value coerced to int, string, bool or list
//   - entity:  the raw value coerced to an id and looked up in an EntityRepository
//   - model:   a mapping hydrated into a registered model through its field table
//   - service: no ParameterSpec, the declared type is fetched from a ServiceContainer
//
// Resolution is fail-fast: the first failing parameter aborts the request and
// the Dispatcher reports a single RoutingError with status 500. Errors returned
// by handlers themselves are passed through untouched.
//
// Example:
//
//	table := relay.NewRouteTable()
//	table.Register(relay.RouteDescriptor{
//	    Path:           "/posts/{post}",
//	    Method:         "GET",
//	    ControllerType: "PostController",
//	    HandlerName:    "GetPost",
//	    Params:         []relay.DeclaredParam{{Name: "post", Type: "Post"}},
//	    Specs:          relay.Specs(relay.Entity("post", "Post")),
//	    Controller:     func() any { return &PostController{} },
//	    Handler:        relay.Method((*PostController).GetPost),
//	})
//	table.Freeze()
package relay
