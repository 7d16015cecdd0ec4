package commands

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskboard/internal/auth"
	"taskboard/internal/exitcode"
)

func init() {
	Register(&LoginCmd{})
}

// LoginCmd implements the login command.
type LoginCmd struct {
	username string
	password string
}

func (c *LoginCmd) Name() string       { return "login" }
func (c *LoginCmd) Aliases() []string  { return nil }
func (c *LoginCmd) Synopsis() string   { return "Sign in and store the session" }
func (c *LoginCmd) Usage() string      { return "taskboard login --username <name> [--password <password>]" }
func (c *LoginCmd) NeedsAuth() bool    { return false }
func (c *LoginCmd) NeedsBackend() bool { return true }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.username, "username", "", "")
	fs.StringVar(&c.username, "u", "", "")
	fs.StringVar(&c.password, "password", "", "")
	fs.StringVar(&c.password, "p", "", "")
}

func (c *LoginCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	username := c.username
	if username == "" && len(args) == 1 {
		username = args[0]
	}

	password := c.password
	if password == "" && username != "" && env.In != nil {
		fmt.Fprint(errOut, "Password: ")
		line, err := bufio.NewReader(env.In).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			fmt.Fprintf(errOut, "\nerror: read password: %v\n", err)
			return exitcode.UserError
		}
		password = strings.TrimRight(line, "\r\n")
	}

	err := env.Session.Login(ctx, env.Backend, username, password)
	switch {
	case errors.Is(err, auth.ErrMissingCredentials):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	case err != nil:
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.AuthError
	}

	if !env.Config.Quiet {
		fmt.Fprintf(out, "logged in as %s\n", username)
	}
	return exitcode.Success
}
