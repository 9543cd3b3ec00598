package relay

import "strings"

// PathPartType represents the type of path part
type PathPartType int

const (
	StaticPart PathPartType = iota
	ParameterPart
	WildcardPart
)

// PathPart represents a single part of a route path
type PathPart struct {
	Type      PathPartType
	Value     string // literal text for static parts, the name for parameters
	ParamType string // optional type hint, e.g. "int" in {id:int}
}

// Path is a route pattern such as "/posts/{post:int}/files/{*}"
type Path string

// Raw returns the original pattern
func (p Path) Raw() string {
	return string(p)
}

// Parts splits the pattern into static, parameter and wildcard parts.
// An unterminated brace is kept as static text.
func (p Path) Parts() []PathPart {
	path := string(p)
	var parts []PathPart

	i := 0
	for i < len(path) {
		if path[i] != '{' {
			start := i
			for i < len(path) && path[i] != '{' {
				i++
			}
			parts = appendStatic(parts, path[start:i])
			continue
		}

		end := strings.IndexByte(path[i:], '}')
		if end == -1 {
			parts = appendStatic(parts, path[i:])
			break
		}
		content := path[i+1 : i+end]
		i += end + 1

		if content == "*" {
			parts = append(parts, PathPart{Type: WildcardPart, Value: "*"})
			continue
		}
		name, paramType, _ := strings.Cut(content, ":")
		parts = append(parts, PathPart{
			Type:      ParameterPart,
			Value:     strings.TrimSpace(name),
			ParamType: strings.TrimSpace(paramType),
		})
	}
	return parts
}

// Params returns the parameter names in order of appearance
func (p Path) Params() []string {
	var names []string
	for _, part := range p.Parts() {
		if part.Type == ParameterPart {
			names = append(names, part.Value)
		}
	}
	return names
}

// Convert renders the pattern in a framework's syntax; param formats a
// parameter name and wildcard is the framework's catch-all token
func (p Path) Convert(param func(name string) string, wildcard string) string {
	var b strings.Builder
	for _, part := range p.Parts() {
		switch part.Type {
		case ParameterPart:
			b.WriteString(param(part.Value))
		case WildcardPart:
			b.WriteString(wildcard)
		default:
			b.WriteString(part.Value)
		}
	}
	return b.String()
}

func appendStatic(parts []PathPart, text string) []PathPart {
	if n := len(parts); n > 0 && parts[n-1].Type == StaticPart {
		parts[n-1].Value += text
		return parts
	}
	return append(parts, PathPart{Type: StaticPart, Value: text})
}
