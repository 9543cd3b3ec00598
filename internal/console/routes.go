package console

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/toyz/relay/pkg/relay"
)

// RouteLister prints a route table for humans
type RouteLister struct {
	output    io.Writer
	useColors bool
}

// NewRouteLister creates a lister writing to w. Colors follow NO_COLOR,
// FORCE_COLOR and TERM.
func NewRouteLister(w io.Writer) *RouteLister {
	return &RouteLister{output: w, useColors: shouldUseColors()}
}

// WithColors forces colors on or off
func (l *RouteLister) WithColors(enabled bool) *RouteLister {
	l.useColors = enabled
	return l
}

// methodColors maps HTTP methods to their display color
var methodColors = map[string]color.Attribute{
	"GET":    color.FgGreen,
	"POST":   color.FgYellow,
	"PUT":    color.FgBlue,
	"PATCH":  color.FgCyan,
	"DELETE": color.FgRed,
}

func (l *RouteLister) paint(attr color.Attribute, format string, args ...any) string {
	c := color.New(attr)
	if !l.useColors {
		c.DisableColor()
	} else {
		c.EnableColor()
	}
	return c.Sprintf(format, args...)
}

// List writes every route in registration order. Routes shadowed by an
// earlier registration are marked.
func (l *RouteLister) List(table *relay.RouteTable) {
	routes := table.All()
	fmt.Fprintln(l.output, l.paint(color.FgCyan, "Routes (%d):", len(routes)))

	methodWidth, pathWidth := 0, 0
	for _, r := range routes {
		methodWidth = max(methodWidth, len(r.Method))
		pathWidth = max(pathWidth, len(r.Path))
	}

	seen := make(map[string]struct{}, len(routes))
	for _, r := range routes {
		attr, ok := methodColors[r.Method]
		if !ok {
			attr = color.FgWhite
		}
		method := l.paint(attr, "%-*s", methodWidth, r.Method)
		line := fmt.Sprintf("  %s  %-*s  %s(%s)", method, pathWidth, r.Path, r.Name(), describeParams(r))

		if _, dup := seen[r.Key()]; dup {
			line += " " + l.paint(color.FgRed, "[shadowed]")
		}
		seen[r.Key()] = struct{}{}
		fmt.Fprintln(l.output, line)
	}
}

// describeParams renders "name: spec" for every declared parameter;
// parameters without a spec show their service type
func describeParams(r relay.RouteDescriptor) string {
	parts := make([]string, 0, len(r.Params))
	for _, p := range r.Params {
		if spec, ok := r.Spec(p.Name); ok {
			parts = append(parts, spec.String())
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: service %s", p.Name, p.Type))
	}
	return strings.Join(parts, ", ")
}

// shouldUseColors determines if colors should be used
func shouldUseColors() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}
	term := os.Getenv("TERM")
	return term != "" && term != "dumb"
}
