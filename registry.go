// Package climenu turns declaratively described functions into a command-line
// menu: one sub-command per registered handler, with arguments derived from
// the handler's documented parameters. The registry's responsibility ends at
// parsing command-line input into a handler call; it implements no business
// logic of its own.
//
// The life of a registry is strictly linear: register commands, parse the
// argument vector once, execute the selected handler once. There is no loop
// and no concurrency.
package climenu

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// invocation records the outcome of a successful parse: which command was
// selected and the argument values collected for it. The bookkeeping needed
// to reach this point (the cobra command, the flag set) is deliberately not
// retained.
type invocation struct {
	command string
	args    Args
}

// Registry maps command names to handlers behind a cobra command tree.
// It is not safe for concurrent use; the intended call sequence is
// Register (N times), then Parse, then Execute.
type Registry struct {
	root     *cobra.Command
	commands map[string]CommandSpec
	parsed   *invocation
	logger   *slog.Logger
	out      io.Writer
	errOut   io.Writer
}

// Option configures a Registry.
type Option func(*Registry)

// WithName sets the program name shown in usage lines. The default is the
// base name of the running executable.
func WithName(name string) Option {
	return func(r *Registry) { r.root.Use = name }
}

// WithOutput redirects help and usage text, which goes to stdout by default.
func WithOutput(w io.Writer) Option {
	return func(r *Registry) { r.out = w }
}

// WithErrOutput redirects error output, which goes to stderr by default.
func WithErrOutput(w io.Writer) Option {
	return func(r *Registry) { r.errOut = w }
}

// WithLogger sets the logger used for debug output during registration.
// A nil logger disables logging.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates an empty registry with no commands configured.
func New(opts ...Option) *Registry {
	r := &Registry{
		commands: make(map[string]CommandSpec),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		out:      os.Stdout,
		errOut:   os.Stderr,
	}
	r.root = &cobra.Command{
		Use:           filepath.Base(os.Args[0]),
		Short:         "valid subcommands",
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	r.root.SetOut(r.out)
	r.root.SetErr(r.errOut)
	return r
}

// Register adds one sub-command built from spec. The spec is validated first,
// so a failed registration leaves the parser untouched. Each argument is
// configured by shape: bool parameters become value-less flags, optional
// parameters become typed flags, required list parameters consume one or more
// trailing tokens, and any other required parameter consumes zero or one
// token converted to its declared type.
func (r *Registry) Register(spec CommandSpec) error {
	if err := spec.validate(); err != nil {
		return err
	}
	if _, exists := r.commands[spec.Name]; exists {
		return NewRegistrationError(spec.Name, "command already registered", nil)
	}

	cmd := &cobra.Command{
		Use:   spec.useLine(),
		Short: spec.Summary,
		Long:  spec.longHelp(),
		Args:  positionalArity(spec.Args),
		RunE: func(cmd *cobra.Command, tokens []string) error {
			args, err := collectArgs(spec, cmd.Flags(), tokens)
			if err != nil {
				return err
			}
			r.parsed = &invocation{command: spec.Name, args: args}
			return nil
		},
	}

	for _, arg := range spec.Args {
		if !arg.flagShaped() {
			continue
		}
		switch arg.Type {
		case TagBool:
			cmd.Flags().Bool(arg.Name, false, arg.Help)
		case TagInt:
			cmd.Flags().Int(arg.Name, 0, arg.Help)
		case TagFloat:
			cmd.Flags().Float64(arg.Name, 0, arg.Help)
		case TagStringList:
			cmd.Flags().StringArray(arg.Name, nil, arg.Help)
		default:
			cmd.Flags().String(arg.Name, "", arg.Help)
		}
	}

	r.root.AddCommand(cmd)
	r.commands[spec.Name] = spec
	r.logger.Debug("registered command",
		slog.String("command", spec.Name),
		slog.Int("args", len(spec.Args)))
	return nil
}

// Parse parses argv (the process argument vector without the program name)
// against the registered commands. When argv selects no sub-command, the full
// help text is printed to the configured output and a NoCommandError is
// returned for the caller to catch. Malformed input (unknown command, unknown
// flag, bad conversion, wrong arity) surfaces as the parsing library's own
// usage error, untransformed.
func (r *Registry) Parse(argv []string) error {
	r.parsed = nil

	if len(argv) == 0 {
		return r.reportNoCommand()
	}
	if cmd, _, err := r.root.Find(argv); err == nil && cmd == r.root {
		return r.reportNoCommand()
	}

	r.root.SetArgs(argv)
	if err := r.root.Execute(); err != nil {
		r.parsed = nil
		return err
	}
	if r.parsed == nil {
		// A built-in command such as "help" ran instead of a registered one.
		return NewNoCommandError()
	}
	return nil
}

// Execute invokes the handler selected by the most recent Parse and returns
// its result. Handler errors propagate unwrapped. Calling Execute before a
// successful Parse is a call sequence violation and fails fast.
func (r *Registry) Execute() (any, error) {
	if r.parsed == nil {
		return nil, NewStateError("execute called before a successful parse")
	}
	spec, ok := r.commands[r.parsed.command]
	if !ok {
		return nil, NewStateError(fmt.Sprintf("parsed command %q is not registered", r.parsed.command))
	}
	return spec.Run(r.parsed.args)
}

// Run is a convenience wrapper combining Parse and Execute.
func (r *Registry) Run(argv []string) (any, error) {
	if err := r.Parse(argv); err != nil {
		return nil, err
	}
	return r.Execute()
}

func (r *Registry) reportNoCommand() error {
	fmt.Fprintln(r.out, "no command supplied")
	if err := r.root.Help(); err != nil {
		return err
	}
	return NewNoCommandError()
}

// positionalArity builds the arity check for a command's positional tokens.
// Scalars consume zero or one token each; each list consumes at least one.
func positionalArity(specs []ArgSpec) cobra.PositionalArgs {
	scalars := 0
	lists := 0
	for _, arg := range specs {
		if arg.flagShaped() {
			continue
		}
		if arg.Type == TagStringList {
			lists++
		} else {
			scalars++
		}
	}
	if lists > 0 {
		return cobra.MinimumNArgs(lists)
	}
	return cobra.MaximumNArgs(scalars)
}

// collectArgs gathers parsed values for every supplied argument of spec.
// Flags count as supplied only when they were set on the command line, so an
// omitted flag never shadows the handler's own default behavior. Positional
// tokens are assigned in declaration order with greedy matching: a scalar
// takes one token when more than the later lists' reserve remains, and a list
// takes everything except that reserve. A scalar declared after a list
// therefore stays absent, the same way an optional positional behind a
// one-or-more positional never matches.
func collectArgs(spec CommandSpec, flags *pflag.FlagSet, tokens []string) (Args, error) {
	args := make(Args, len(spec.Args))

	var positionals []ArgSpec
	for _, arg := range spec.Args {
		if arg.flagShaped() {
			if err := collectFlag(arg, flags, args); err != nil {
				return nil, err
			}
			continue
		}
		positionals = append(positionals, arg)
	}

	// listsAfter[i] counts list parameters declared after position i; each of
	// them is owed at least one token.
	listsAfter := make([]int, len(positionals))
	count := 0
	for i := len(positionals) - 1; i >= 0; i-- {
		listsAfter[i] = count
		if positionals[i].Type == TagStringList {
			count++
		}
	}

	next := 0
	for i, arg := range positionals {
		remaining := len(tokens) - next
		if arg.Type == TagStringList {
			// Arity validation has already guaranteed one token per list.
			take := remaining - listsAfter[i]
			if take < 1 {
				take = 1
			}
			args[arg.Name] = append([]string(nil), tokens[next:next+take]...)
			next += take
			continue
		}
		if remaining > listsAfter[i] {
			value, err := convertScalar(arg, tokens[next])
			if err != nil {
				return nil, err
			}
			args[arg.Name] = value
			next++
		}
	}
	return args, nil
}

func collectFlag(arg ArgSpec, flags *pflag.FlagSet, args Args) error {
	if !flags.Changed(arg.Name) {
		return nil
	}
	var err error
	switch arg.Type {
	case TagBool:
		args[arg.Name], err = flags.GetBool(arg.Name)
	case TagInt:
		args[arg.Name], err = flags.GetInt(arg.Name)
	case TagFloat:
		args[arg.Name], err = flags.GetFloat64(arg.Name)
	case TagStringList:
		args[arg.Name], err = flags.GetStringArray(arg.Name)
	default:
		args[arg.Name], err = flags.GetString(arg.Name)
	}
	return err
}

func convertScalar(arg ArgSpec, token string) (any, error) {
	switch arg.Type {
	case TagInt:
		value, err := strconv.Atoi(token)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q for %s: expected an integer", token, arg.Name)
		}
		return value, nil
	case TagFloat:
		value, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q for %s: expected a number", token, arg.Name)
		}
		return value, nil
	default:
		return token, nil
	}
}
