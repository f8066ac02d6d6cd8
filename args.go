package climenu

// Args holds the parsed argument values for one invocation, keyed by
// parameter name. An argument the user did not supply is simply absent from
// the map; there is no sentinel value. Bool flags therefore appear only when
// present on the command line, never as an explicit false.
type Args map[string]any

// Has reports whether the named argument was supplied.
func (a Args) Has(name string) bool {
	_, ok := a[name]
	return ok
}

// Bool returns the named bool argument and whether it was supplied.
func (a Args) Bool(name string) (bool, bool) {
	v, ok := a[name].(bool)
	return v, ok
}

// Int returns the named int argument and whether it was supplied.
func (a Args) Int(name string) (int, bool) {
	v, ok := a[name].(int)
	return v, ok
}

// Float returns the named float argument and whether it was supplied.
func (a Args) Float(name string) (float64, bool) {
	v, ok := a[name].(float64)
	return v, ok
}

// String returns the named string argument and whether it was supplied.
func (a Args) String(name string) (string, bool) {
	v, ok := a[name].(string)
	return v, ok
}

// StringList returns the named list argument and whether it was supplied.
// The slice preserves the order in which tokens appeared on the command line.
func (a Args) StringList(name string) ([]string, bool) {
	v, ok := a[name].([]string)
	return v, ok
}
