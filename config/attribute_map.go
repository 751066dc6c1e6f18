package config

// AttributeMap is a loosely typed set of configuration values, as read from JSON.
type AttributeMap map[string]interface{}

// Has returns whether the key is present.
func (am AttributeMap) Has(name string) bool {
	_, has := am[name]
	return has
}

// Bool attempts to return a boolean present in the map with the given name; returns
// the given default otherwise.
func (am AttributeMap) Bool(name string, def bool) bool {
	x, has := am[name]
	if !has {
		return def
	}
	if v, ok := x.(bool); ok {
		return v
	}
	panic(newWrongTypeError(name, "bool", x))
}

// String attempts to return a string present in the map with the given name; returns
// an empty string otherwise.
func (am AttributeMap) String(name string) string {
	x, has := am[name]
	if !has {
		return ""
	}
	if s, ok := x.(string); ok {
		return s
	}
	panic(newWrongTypeError(name, "string", x))
}
