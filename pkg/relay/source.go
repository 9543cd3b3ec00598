package relay

// ParamSource is the request-side lookup the transport supplies. Param
// returns ok == false when the request does not carry the name; a nil value
// is treated the same way.
type ParamSource interface {
	Param(name string) (value any, ok bool)
}

// Values is a ParamSource backed by a plain map
type Values map[string]any

// Param implements ParamSource
func (v Values) Param(name string) (any, bool) {
	value, ok := v[name]
	if value == nil {
		return nil, false
	}
	return value, ok
}

// Layered consults each source in order and returns the first hit
type Layered []ParamSource

// Param implements ParamSource
func (l Layered) Param(name string) (any, bool) {
	for _, src := range l {
		if src == nil {
			continue
		}
		if v, ok := src.Param(name); ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// lookup reads a parameter, folding nil into absent
func lookup(src ParamSource, name string) (any, bool) {
	if src == nil {
		return nil, false
	}
	v, ok := src.Param(name)
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}
