package relay

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// NewRequestSource builds the ParamSource for a request. Lookups prefer the
// JSON body, then form fields, then the query string, then path parameters.
// Form and query keys in bracket notation ("model[age]", "tags[]") are
// expanded into mappings and lists.
func NewRequestSource(c RequestContext) (ParamSource, error) {
	var layers Layered

	contentType := strings.ToLower(c.Request().ContentType())
	switch {
	case strings.HasPrefix(contentType, "application/json"):
		body, err := c.Request().Body()
		if err != nil {
			return nil, fmt.Errorf("read body: %w", err)
		}
		values, err := decodeJSONObject(body)
		if err != nil {
			return nil, err
		}
		layers = append(layers, values)
	case strings.HasPrefix(contentType, "application/x-www-form-urlencoded"),
		strings.HasPrefix(contentType, "multipart/form-data"):
		form, err := c.FormParams()
		if err != nil {
			return nil, fmt.Errorf("parse form: %w", err)
		}
		layers = append(layers, expandForm(form))
	}

	layers = append(layers, expandForm(c.QueryParams()))

	path := make(Values, len(c.ParamNames()))
	for _, name := range c.ParamNames() {
		path[name] = c.Param(name)
	}
	layers = append(layers, path)

	return layers, nil
}

// decodeJSONObject decodes a JSON object keeping numbers as json.Number so
// integer ids survive untouched. Bodies that are not objects carry no
// named parameters.
func decodeJSONObject(body []byte) (Values, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return Values{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("invalid JSON body: %w", err)
	}
	obj, ok := doc.(map[string]any)
	if !ok {
		return Values{}, nil
	}
	return Values(obj), nil
}

// expandForm turns multi-valued form data into a Values tree. For plain keys
// the last value wins.
func expandForm(form map[string][]string) Values {
	out := Values{}
	for _, key := range sortedKeys(form) {
		base, segments := splitBracketKey(key)
		for _, v := range form[key] {
			insertValue(out, base, segments, v)
		}
	}
	return out
}

// splitBracketKey splits "a[b][]" into "a" and ["b", ""]. Keys that are not
// well-formed bracket paths are returned whole.
func splitBracketKey(key string) (string, []string) {
	i := strings.IndexByte(key, '[')
	if i <= 0 || !strings.HasSuffix(key, "]") {
		return key, nil
	}

	base, rest := key[:i], key[i:]
	var segments []string
	for rest != "" {
		end := strings.IndexByte(rest, ']')
		if rest[0] != '[' || end < 0 {
			return key, nil
		}
		segments = append(segments, rest[1:end])
		rest = rest[end+1:]
	}
	return base, segments
}

func insertValue(m map[string]any, key string, segments []string, value string) {
	if len(segments) == 0 {
		m[key] = value
		return
	}

	if segments[0] == "" {
		list, _ := m[key].([]any)
		if len(segments) == 1 {
			m[key] = append(list, value)
			return
		}
		child := map[string]any{}
		insertValue(child, segments[1], segments[2:], value)
		m[key] = append(list, child)
		return
	}

	child, ok := m[key].(map[string]any)
	if !ok {
		child = map[string]any{}
		m[key] = child
	}
	insertValue(child, segments[0], segments[1:], value)
}
