package client

import (
	"context"
	"strings"

	"github.com/AlexZinkM/substreams-relay/internal/config"
	"github.com/AlexZinkM/substreams-relay/internal/runner"
)

const (
	// EndpointEnv is the variable the substreams CLI reads its endpoint from
	EndpointEnv = "SUBSTREAMS_ENDPOINT"

	cmdInfo = "info"
	cmdRun  = "run"
)

// SubstreamsClient is a client for the substreams CLI
type SubstreamsClient struct {
	runner runner.Runner
	binary string
}

// NewSubstreamsClient creates a new client that invokes binary through r
func NewSubstreamsClient(r runner.Runner, binary string) *SubstreamsClient {
	if binary == "" {
		binary = config.DefaultBinary
	}
	return &SubstreamsClient{
		runner: r,
		binary: binary,
	}
}

// Call is one finished CLI invocation together with the parameters it ran with
type Call struct {
	Binary   string
	Endpoint string
	Args     []string
	Result   runner.Result
}

// TriedCommand reconstructs the shell command line for diagnostics
func (c Call) TriedCommand() string {
	return EndpointEnv + "=" + c.Endpoint + " " + c.Binary + " " + strings.Join(c.Args, " ")
}

// Query holds the resolved parameters of a "run" call
type Query struct {
	Endpoint   string
	Package    string
	Module     string
	Direction  string
	Address    string
	StartBlock string
	StopBlock  string
}

// InfoArgs returns the argument list of an "info" call
func InfoArgs(pkg string) []string {
	return []string{cmdInfo, pkg}
}

// RunArgs returns the argument list of a "run" call
func RunArgs(q Query) []string {
	return []string{
		cmdRun,
		q.Package,
		q.Module,
		"--params", q.Module + "=" + q.Direction + "=" + q.Address,
		"--start-block", q.StartBlock,
		"--stop-block", q.StopBlock,
	}
}

// Info runs "info <pkg>" against endpoint
func (c *SubstreamsClient) Info(ctx context.Context, endpoint, pkg string) Call {
	return c.call(ctx, endpoint, InfoArgs(pkg))
}

// Run runs the module of q for one wallet
func (c *SubstreamsClient) Run(ctx context.Context, q Query) Call {
	return c.call(ctx, q.Endpoint, RunArgs(q))
}

func (c *SubstreamsClient) call(ctx context.Context, endpoint string, args []string) Call {
	res := c.runner.Run(ctx, runner.Invocation{
		Args: args,
		Env:  map[string]string{EndpointEnv: endpoint},
	})

	return Call{
		Binary:   c.binary,
		Endpoint: endpoint,
		Args:     args,
		Result:   res,
	}
}
