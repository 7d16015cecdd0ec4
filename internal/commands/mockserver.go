package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"taskboard/internal/exitcode"
	"taskboard/internal/mockapi"
)

// shutdownTimeout bounds how long in-flight requests get on interrupt.
const shutdownTimeout = 5 * time.Second

func init() {
	Register(&MockServerCmd{})
}

// MockServerCmd implements the mockserver command.
type MockServerCmd struct {
	addr     string
	username string
	password string
	seed     int
}

func (c *MockServerCmd) Name() string      { return "mockserver" }
func (c *MockServerCmd) Aliases() []string { return nil }
func (c *MockServerCmd) Synopsis() string  { return "Serve an in-memory task API" }
func (c *MockServerCmd) Usage() string {
	return "taskboard mockserver [--addr <host:port>] [--username <name> --password <password>] [--seed <n>]"
}
func (c *MockServerCmd) NeedsAuth() bool { return false }

func (c *MockServerCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.addr, "addr", "localhost:8080", "")
	fs.StringVar(&c.username, "username", "", "")
	fs.StringVar(&c.password, "password", "", "")
	fs.IntVar(&c.seed, "seed", 0, "")
}

func (c *MockServerCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if (c.username == "") != (c.password == "") {
		fmt.Fprintln(errOut, "error: --username and --password go together")
		return exitcode.UserError
	}
	if c.seed < 0 {
		fmt.Fprintf(errOut, "error: invalid seed: %d\n", c.seed)
		return exitcode.UserError
	}

	if !env.Config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	opts := []mockapi.Option{mockapi.WithLogger(env.Logger), mockapi.WithSampleTasks(c.seed)}
	if c.username != "" {
		opts = append(opts, mockapi.WithUser(c.username, c.password))
	}
	api := mockapi.New(opts...)

	ln, err := net.Listen("tcp", c.addr)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	srv := &http.Server{Handler: api.Handler()}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	if !env.Config.Quiet {
		fmt.Fprintf(out, "listening on http://%s/\n", ln.Addr())
	}
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}
