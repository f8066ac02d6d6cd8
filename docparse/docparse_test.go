package docparse

import (
	"errors"
	"testing"

	"climenu"
)

const greetDoc = `Greet says hello to someone.

Prints a greeting for the given name, or a generic
one when no name is supplied.

Parameters:
  - name (string, optional): who to greet
  - count (int): how many times
`

func TestParse(t *testing.T) {
	tests := []struct {
		name         string
		doc          string
		expectError  bool
		expectedSum  string
		expectedDesc string
		expectedArgs int
	}{
		{
			name:         "full doc",
			doc:          greetDoc,
			expectedSum:  "Greet says hello to someone.",
			expectedDesc: "Prints a greeting for the given name, or a generic one when no name is supplied.",
			expectedArgs: 2,
		},
		{
			name:         "summary only",
			doc:          "Version prints the build version.",
			expectedSum:  "Version prints the build version.",
			expectedArgs: 0,
		},
		{
			name: "summary and params without description",
			doc: `Tag labels the current work item.

Parameters:
  - names (list): labels to apply
`,
			expectedSum:  "Tag labels the current work item.",
			expectedArgs: 1,
		},
		{
			name: "multi-paragraph description",
			doc: `Sync mirrors the working tree.

First paragraph of detail.

Second paragraph of detail.
`,
			expectedSum:  "Sync mirrors the working tree.",
			expectedDesc: "First paragraph of detail.\n\nSecond paragraph of detail.",
		},
		{
			name:        "empty doc",
			doc:         "",
			expectError: true,
		},
		{
			name:        "whitespace only",
			doc:         "   \n\t\n",
			expectError: true,
		},
		{
			name: "malformed parameter line",
			doc: `Broken command.

Parameters:
  name without bullet or type
`,
			expectError: true,
		},
		{
			name: "parameter without type",
			doc: `Broken command.

Parameters:
  - name (): no type given
`,
			expectError: true,
		},
		{
			name: "unknown qualifier",
			doc: `Broken command.

Parameters:
  - name (string, sometimes): odd qualifier
`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := Parse(tt.doc)
			if tt.expectError {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if parsed.Summary != tt.expectedSum {
				t.Errorf("summary: expected %q, got %q", tt.expectedSum, parsed.Summary)
			}
			if parsed.Description != tt.expectedDesc {
				t.Errorf("description: expected %q, got %q", tt.expectedDesc, parsed.Description)
			}
			if len(parsed.Params) != tt.expectedArgs {
				t.Errorf("params: expected %d, got %d", tt.expectedArgs, len(parsed.Params))
			}
		})
	}
}

func TestParseParamDetails(t *testing.T) {
	parsed, err := Parse(greetDoc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	name := parsed.Params[0]
	if name.Name != "name" || name.TypeName != "string" || !name.Optional {
		t.Errorf("unexpected first param: %+v", name)
	}
	if name.Description != "who to greet" {
		t.Errorf("unexpected help text: %q", name.Description)
	}

	count := parsed.Params[1]
	if count.Name != "count" || count.TypeName != "int" || count.Optional {
		t.Errorf("unexpected second param: %+v", count)
	}
}

func TestParseContinuationLines(t *testing.T) {
	doc := `Deploy pushes a release.

Parameters:
  - target (string): the environment to deploy to,
    such as staging or production
  - force (bool, optional): skip confirmation
`
	parsed, err := Parse(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(parsed.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(parsed.Params))
	}
	expected := "the environment to deploy to, such as staging or production"
	if parsed.Params[0].Description != expected {
		t.Errorf("expected %q, got %q", expected, parsed.Params[0].Description)
	}
}

func TestSpec(t *testing.T) {
	run := func(climenu.Args) (any, error) { return nil, nil }

	spec, err := Spec("greet", greetDoc, run)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.Name != "greet" {
		t.Errorf("expected name greet, got %q", spec.Name)
	}
	if spec.Summary != "Greet says hello to someone." {
		t.Errorf("unexpected summary: %q", spec.Summary)
	}
	if len(spec.Args) != 2 {
		t.Fatalf("expected 2 args, got %d", len(spec.Args))
	}
	if spec.Args[0].Type != climenu.TagString || !spec.Args[0].Optional {
		t.Errorf("unexpected first arg: %+v", spec.Args[0])
	}
	if spec.Args[1].Type != climenu.TagInt || spec.Args[1].Optional {
		t.Errorf("unexpected second arg: %+v", spec.Args[1])
	}
}

func TestSpecRejectsUnknownTypeName(t *testing.T) {
	doc := `Broken command.

Parameters:
  - w (Widget): a user-defined type name
`
	_, err := Spec("broken", doc, func(climenu.Args) (any, error) { return nil, nil })
	var regErr *climenu.RegistrationError
	if !errors.As(err, &regErr) {
		t.Fatalf("expected *climenu.RegistrationError, got %T", err)
	}
	if regErr.Command != "broken" {
		t.Errorf("expected command broken, got %q", regErr.Command)
	}
}

func TestSpecRejectsMissingDoc(t *testing.T) {
	_, err := Spec("ghost", "", func(climenu.Args) (any, error) { return nil, nil })
	var regErr *climenu.RegistrationError
	if !errors.As(err, &regErr) {
		t.Fatalf("expected *climenu.RegistrationError, got %T", err)
	}
}
