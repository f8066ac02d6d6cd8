package climenu

import (
	"fmt"
	"strings"
)

// TypeTag identifies the primitive type of a command argument. The set is a
// closed enumeration: documented type names resolve against it at registration
// time and anything outside it is rejected, rather than being looked up in an
// open-ended namespace.
type TypeTag string

// Supported argument type constants. TagStringList is the only compound
// shape; everything else is a scalar.
const (
	TagBool       TypeTag = "bool"
	TagInt        TypeTag = "int"
	TagFloat      TypeTag = "float"
	TagString     TypeTag = "string"
	TagStringList TypeTag = "list"
)

func (t TypeTag) valid() bool {
	switch t {
	case TagBool, TagInt, TagFloat, TagString, TagStringList:
		return true
	}
	return false
}

// ResolveType maps a documented type name onto the closed TypeTag set.
// Common aliases from doc comments ("str", "integer", "float64", "[]string")
// are accepted; any other name is an error.
func ResolveType(name string) (TypeTag, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "bool", "boolean":
		return TagBool, nil
	case "int", "integer":
		return TagInt, nil
	case "float", "float64":
		return TagFloat, nil
	case "str", "string":
		return TagString, nil
	case "list", "[]string":
		return TagStringList, nil
	default:
		return "", fmt.Errorf("unknown parameter type %q (supported: bool, int, float, string, list)", name)
	}
}

// ArgSpec describes one parameter of a command. Optional parameters become
// flags; required ones become positional arguments, except that bool
// parameters are always flag-shaped since their mere presence conveys true.
type ArgSpec struct {
	Name     string
	Type     TypeTag
	Optional bool
	Help     string
}

// DisplayName returns the name as it appears on the command line: prefixed
// with "--" for flag-shaped arguments, bare for positional ones.
func (a ArgSpec) DisplayName() string {
	if a.flagShaped() {
		return "--" + a.Name
	}
	return a.Name
}

func (a ArgSpec) flagShaped() bool {
	return a.Optional || a.Type == TagBool
}

// Handler is the dispatch target bound to a command. It receives the parsed
// arguments and returns whatever the underlying function produces; errors
// propagate to the caller of Execute unmodified.
type Handler func(args Args) (any, error)

// CommandSpec describes one registrable command: its name, help texts, the
// ordered parameter list, and the handler to invoke. The argument order
// matters, since it determines the order in which positional tokens are
// consumed.
type CommandSpec struct {
	Name        string
	Summary     string
	Description string
	Args        []ArgSpec
	Run         Handler
}

// longHelp returns the detailed description, falling back to the summary when
// no long-form text was provided.
func (c CommandSpec) longHelp() string {
	if c.Description != "" {
		return c.Description
	}
	return c.Summary
}

// validate checks the spec before any parser state is touched, so a rejected
// registration leaves the registry unchanged.
func (c CommandSpec) validate() error {
	if c.Name == "" {
		return NewRegistrationError("", "command name is required", nil)
	}
	if c.Summary == "" {
		return NewRegistrationError(c.Name, "summary is required", nil)
	}
	if c.Run == nil {
		return NewRegistrationError(c.Name, "handler is required", nil)
	}

	seen := make(map[string]bool, len(c.Args))
	for _, arg := range c.Args {
		if arg.Name == "" {
			return NewRegistrationError(c.Name, "parameter name is required", nil)
		}
		if !arg.Type.valid() {
			return NewRegistrationError(c.Name,
				fmt.Sprintf("unknown type %q for parameter %q", string(arg.Type), arg.Name), nil)
		}
		if seen[arg.Name] {
			return NewRegistrationError(c.Name,
				fmt.Sprintf("duplicate parameter %q", arg.Name), nil)
		}
		seen[arg.Name] = true
	}
	return nil
}

// useLine renders the cobra usage line: the command name followed by
// positional placeholders in declaration order.
func (c CommandSpec) useLine() string {
	parts := []string{c.Name}
	for _, arg := range c.Args {
		if arg.flagShaped() {
			continue
		}
		if arg.Type == TagStringList {
			parts = append(parts, arg.Name+"...")
		} else {
			parts = append(parts, "["+arg.Name+"]")
		}
	}
	return strings.Join(parts, " ")
}
