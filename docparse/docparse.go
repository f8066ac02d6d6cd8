// Package docparse is a thin adapter that turns a structured, godoc-flavoured
// documentation comment into a command spec. It exists for callers that keep
// their command documentation next to the function; the registry itself never
// depends on free-text parsing and accepts explicit specs directly.
//
// The expected shape is:
//
//	Greet says hello to someone.
//
//	Optional longer description, possibly
//	spanning several lines.
//
//	Parameters:
//	  - name (string, optional): who to greet
//	  - count (int): how many times
//
// The first paragraph becomes the one-line summary, any further paragraphs
// before the "Parameters:" heading become the detailed description, and each
// bullet declares one parameter as name, parenthesised type (with an optional
// marker), and help text.
package docparse

import (
	"fmt"
	"regexp"
	"strings"

	"climenu"
)

// Param is one parameter descriptor extracted from a doc comment.
type Param struct {
	Name        string
	TypeName    string
	Optional    bool
	Description string
}

// Doc is the parsed form of a documentation comment.
type Doc struct {
	Summary     string
	Description string
	Params      []Param
}

const paramsHeading = "Parameters:"

var bulletRe = regexp.MustCompile(`^-\s+([A-Za-z_][\w-]*)\s+\(([^)]*)\)\s*:\s*(.*)$`)

// Spec builds a registrable command spec from a documentation comment.
// Parameter type names are resolved against the registry's closed type set,
// so a typo or a user-defined type name in the comment fails here rather than
// at parse time.
func Spec(name, doc string, run climenu.Handler) (climenu.CommandSpec, error) {
	parsed, err := Parse(doc)
	if err != nil {
		return climenu.CommandSpec{}, climenu.NewRegistrationError(name, "invalid documentation comment", err)
	}

	spec := climenu.CommandSpec{
		Name:        name,
		Summary:     parsed.Summary,
		Description: parsed.Description,
		Run:         run,
	}
	for _, p := range parsed.Params {
		tag, err := climenu.ResolveType(p.TypeName)
		if err != nil {
			return climenu.CommandSpec{}, climenu.NewRegistrationError(name,
				fmt.Sprintf("parameter %q has an unresolvable type", p.Name), err)
		}
		spec.Args = append(spec.Args, climenu.ArgSpec{
			Name:     p.Name,
			Type:     tag,
			Optional: p.Optional,
			Help:     p.Description,
		})
	}
	return spec, nil
}

// Parse extracts the summary, description, and parameter descriptors from a
// documentation comment. The comment must be non-empty; a "Parameters:"
// section is optional, but once opened every line in it must be a bullet or a
// continuation of the previous bullet.
func Parse(doc string) (*Doc, error) {
	lines := strings.Split(strings.TrimSpace(doc), "\n")
	if len(lines) == 1 && lines[0] == "" {
		return nil, fmt.Errorf("documentation comment is missing or empty")
	}

	var paragraphs [][]string
	var current []string
	inParams := false
	parsed := &Doc{}

	for _, raw := range lines {
		line := strings.TrimSpace(raw)

		if !inParams {
			if line == paramsHeading {
				inParams = true
				if len(current) > 0 {
					paragraphs = append(paragraphs, current)
					current = nil
				}
				continue
			}
			if line == "" {
				if len(current) > 0 {
					paragraphs = append(paragraphs, current)
					current = nil
				}
				continue
			}
			current = append(current, line)
			continue
		}

		if line == "" {
			continue
		}
		if m := bulletRe.FindStringSubmatch(line); m != nil {
			param, err := parseBullet(m)
			if err != nil {
				return nil, err
			}
			parsed.Params = append(parsed.Params, param)
			continue
		}
		if len(parsed.Params) == 0 {
			return nil, fmt.Errorf("malformed parameter line %q", line)
		}
		// Continuation of the previous bullet's help text.
		last := &parsed.Params[len(parsed.Params)-1]
		last.Description = strings.TrimSpace(last.Description + " " + line)
	}
	if len(current) > 0 {
		paragraphs = append(paragraphs, current)
	}

	if len(paragraphs) == 0 {
		return nil, fmt.Errorf("documentation comment has no summary line")
	}
	parsed.Summary = strings.Join(paragraphs[0], " ")
	if len(paragraphs) > 1 {
		rest := make([]string, 0, len(paragraphs)-1)
		for _, p := range paragraphs[1:] {
			rest = append(rest, strings.Join(p, " "))
		}
		parsed.Description = strings.Join(rest, "\n\n")
	}
	return parsed, nil
}

func parseBullet(m []string) (Param, error) {
	param := Param{
		Name:        m[1],
		Description: strings.TrimSpace(m[3]),
	}
	spec := strings.Split(m[2], ",")
	param.TypeName = strings.TrimSpace(spec[0])
	if param.TypeName == "" {
		return Param{}, fmt.Errorf("parameter %q declares no type", param.Name)
	}
	for _, qualifier := range spec[1:] {
		switch strings.TrimSpace(qualifier) {
		case "optional":
			param.Optional = true
		case "required", "":
			// required is the default; tolerate it being spelled out.
		default:
			return Param{}, fmt.Errorf("parameter %q has unknown qualifier %q", param.Name, strings.TrimSpace(qualifier))
		}
	}
	return param, nil
}
