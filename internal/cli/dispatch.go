package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/oauth2"

	"taskboard/internal/auth"
	"taskboard/internal/commands"
	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/logging"
	"taskboard/internal/storage"
)

// ServiceFactory creates the backend from config. tokens supplies the
// bearer token of the stored session.
type ServiceFactory func(ctx context.Context, cfg *config.Config, tokens oauth2.TokenSource) (commands.Backend, error)

// Store is the persisted key/value store holding the session.
type Store interface {
	auth.KV
	Close() error
}

// StoreOpener opens the session store for cfg.
type StoreOpener func(cfg *config.Config) (Store, error)

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithStoreOpener replaces the sqlite session store.
func WithStoreOpener(open StoreOpener) Option {
	return func(d *Dispatcher) { d.openStore = open }
}

// WithInput sets the reader used for interactive prompts.
func WithInput(in io.Reader) Option {
	return func(d *Dispatcher) { d.in = in }
}

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry  *commands.Registry
	factory   ServiceFactory
	openStore StoreOpener
	in        io.Reader
}

// NewDispatcher creates a new dispatcher with the given registry and service factory.
func NewDispatcher(registry *commands.Registry, factory ServiceFactory, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		registry:  registry,
		factory:   factory,
		openStore: openSQLiteStore,
		in:        os.Stdin,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func openSQLiteStore(cfg *config.Config) (Store, error) {
	return storage.Open(cfg.SessionPath())
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	// No args -> open the interactive view
	if len(args) == 0 {
		return d.dispatch(ctx, "ui", nil, out, errOut)
	}

	cmdName := args[0]

	// Flags require a command
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	return d.dispatch(ctx, cmdName, args[1:], out, errOut)
}

func (d *Dispatcher) dispatch(ctx context.Context, cmdName string, args []string, out, errOut io.Writer) int {
	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}
	return d.dispatchCommand(ctx, cmd, args, out, errOut)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves

	// Common flags
	var configDir string
	var quiet bool
	var debug bool

	fs.StringVar(&configDir, "config", "", "")
	fs.BoolVar(&quiet, "quiet", false, "")
	fs.BoolVar(&debug, "debug", false, "")

	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", flagErrorMessage(err))
		return exitcode.UserError
	}

	// A leading dash after parsing means a flag the set does not know
	positionalArgs := fs.Args()
	if len(positionalArgs) > 0 && strings.HasPrefix(positionalArgs[0], "-") {
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", positionalArgs[0])
		return exitcode.UserError
	}

	cfg, err := config.New(configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}
	cfg.Quiet = quiet
	cfg.Debug = debug

	env := &commands.Env{
		Config: cfg,
		Logger: logging.New(errOut, debug),
		In:     d.in,
	}

	// help and version run without touching the config dir
	if !commands.NeedsSession(cmd) {
		return cmd.Run(ctx, env, positionalArgs, out, errOut)
	}

	if err := cfg.Load(); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.AuthError
	}

	store, err := d.openStore(cfg)
	if err != nil {
		fmt.Fprintf(errOut, "error: open session: %s\n", err)
		return exitcode.AuthError
	}
	defer store.Close()
	env.Session = auth.NewSession(store)

	if cmd.NeedsAuth() {
		loggedIn, err := env.Session.LoggedIn(ctx)
		if err != nil {
			fmt.Fprintf(errOut, "error: read session: %s\n", err)
			return exitcode.AuthError
		}
		if !loggedIn {
			fmt.Fprintln(errOut, "error: not logged in (run: taskboard login)")
			return exitcode.AuthError
		}
	}

	if commands.NeedsBackend(cmd) {
		if d.factory == nil {
			fmt.Fprintln(errOut, "error: no backend configured")
			return exitcode.BackendError
		}
		env.Backend, err = d.factory(ctx, cfg, env.Session)
		if err != nil {
			fmt.Fprintf(errOut, "error: backend error: %s\n", err)
			return exitcode.AuthError
		}
	}

	return cmd.Run(ctx, env, positionalArgs, out, errOut)
}

func flagErrorMessage(err error) string {
	errStr := err.Error()

	// "flag needs an argument: -limit"
	if strings.HasPrefix(errStr, "flag needs an argument:") {
		return errStr
	}

	if name, ok := strings.CutPrefix(errStr, "flag provided but not defined: "); ok {
		return "unknown flag: " + name
	}

	return errStr
}
