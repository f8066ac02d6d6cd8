// Command climenu-demo shows the registry end to end: it registers a few
// documented functions as sub-commands, parses the process arguments, and
// executes the selected handler. Extra commands can be mixed in from a YAML
// manifest named by the CLIMENU_MANIFEST environment variable.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"climenu"
	"climenu/docparse"
	"climenu/manifest"
)

const greetDoc = `Greet says hello to someone.

Prints a greeting for the given name, or a generic
one when no name is supplied.

Parameters:
  - name (string, optional): who to greet
  - shout (bool, optional): print the greeting in upper case
`

const tagDoc = `Tag labels the current work item.

Parameters:
  - names (list): one or more labels to apply
`

const repeatDoc = `Repeat prints a word several times.

Parameters:
  - word (string): the word to print
  - count (int, optional): how many times, default 1
`

func greet(args climenu.Args) (any, error) {
	name, ok := args.String("name")
	if !ok {
		name = "world"
	}
	greeting := fmt.Sprintf("hello %s", name)
	if shout, _ := args.Bool("shout"); shout {
		greeting = strings.ToUpper(greeting)
	}
	return greeting, nil
}

func tag(args climenu.Args) (any, error) {
	names, ok := args.StringList("names")
	if !ok {
		return nil, fmt.Errorf("no labels supplied")
	}
	return fmt.Sprintf("tagged: %s", strings.Join(names, ", ")), nil
}

func repeat(args climenu.Args) (any, error) {
	word, ok := args.String("word")
	if !ok {
		return nil, fmt.Errorf("no word supplied")
	}
	count, ok := args.Int("count")
	if !ok {
		count = 1
	}
	return strings.TrimSpace(strings.Repeat(word+" ", count)), nil
}

// echo is the fallback handler for manifest-defined commands; it just dumps
// whatever arguments were parsed.
func echo(args climenu.Args) (any, error) {
	return fmt.Sprintf("%v", map[string]any(args)), nil
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	reg := climenu.New(
		climenu.WithName("climenu-demo"),
		climenu.WithLogger(logger),
	)

	docs := map[string]struct {
		doc string
		run climenu.Handler
	}{
		"greet":  {greetDoc, greet},
		"tag":    {tagDoc, tag},
		"repeat": {repeatDoc, repeat},
	}
	for name, entry := range docs {
		spec, err := docparse.Spec(name, entry.doc, entry.run)
		if err != nil {
			fatal(err)
		}
		if err := reg.Register(spec); err != nil {
			fatal(err)
		}
	}

	if path := os.Getenv("CLIMENU_MANIFEST"); path != "" {
		m, err := manifest.Load(path)
		if err != nil {
			fatal(err)
		}
		handlers := make(map[string]climenu.Handler, len(m.Commands))
		for _, cmd := range m.Commands {
			handlers[cmd.Name] = echo
		}
		if err := m.Bind(reg, handlers); err != nil {
			fatal(err)
		}
	}

	if err := reg.Parse(os.Args[1:]); err != nil {
		var noCmd *climenu.NoCommandError
		if errors.As(err, &noCmd) {
			// Help text has already been printed.
			os.Exit(0)
		}
		fatal(err)
	}

	result, err := reg.Execute()
	if err != nil {
		fatal(err)
	}
	if result != nil {
		fmt.Println(result)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	os.Exit(1)
}
