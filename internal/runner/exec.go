package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"
	"time"

	"github.com/AlexZinkM/substreams-relay/internal/observability"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// waitDelay bounds how long Wait keeps reading pipes after a timed-out process is killed.
const waitDelay = 5 * time.Second

// Options configures an ExecRunner.
type Options struct {
	// Binary is the executable looked up on PATH.
	Binary string
	// Timeout kills a run after this long. Zero disables the limit.
	Timeout time.Duration
	// MaxConcurrent bounds simultaneously running processes. Zero means unbounded.
	MaxConcurrent int
	Logger        *zap.Logger
}

// ExecRunner runs a local executable through os/exec.
type ExecRunner struct {
	binary  string
	timeout time.Duration
	sem     *semaphore.Weighted
	logger  *zap.Logger
}

// NewExecRunner creates a runner for opts.Binary.
func NewExecRunner(opts Options) *ExecRunner {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &ExecRunner{
		binary:  opts.Binary,
		timeout: opts.Timeout,
		logger:  logger.Named("runner"),
	}
	if opts.MaxConcurrent > 0 {
		r.sem = semaphore.NewWeighted(int64(opts.MaxConcurrent))
	}
	return r
}

// Binary returns the executable name this runner invokes.
func (r *ExecRunner) Binary() string {
	return r.binary
}

// Run starts the executable, buffers stdout and stderr until it exits and reports the result.
func (r *ExecRunner) Run(ctx context.Context, inv Invocation) Result {
	start := time.Now()

	// Wait for a free slot if concurrency is bounded
	if r.sem != nil {
		if err := r.sem.Acquire(ctx, 1); err != nil {
			return r.finish(inv, Result{
				LaunchErr: fmt.Errorf("waiting for run slot: %w", err),
				Duration:  time.Since(start),
			})
		}
		defer r.sem.Release(1)
	}

	runCtx := ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, r.binary, inv.Args...)
	cmd.Env = mergeEnv(os.Environ(), inv.Env)
	if r.timeout > 0 {
		cmd.WaitDelay = waitDelay
	}

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.logger.Debug("starting process",
		zap.String("binary", r.binary),
		zap.Strings("args", inv.Args),
	)

	done := observability.TrackInFlight()
	err := cmd.Run()
	done()

	res := Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr):
		// ExitCode is -1 when the process was killed by a signal
		res.ExitCode = exitErr.ExitCode()
		res.TimedOut = errors.Is(runCtx.Err(), context.DeadlineExceeded)
	case cmd.ProcessState != nil:
		// Process exited but output copying failed or overran WaitDelay
		res.ExitCode = cmd.ProcessState.ExitCode()
		res.TimedOut = errors.Is(runCtx.Err(), context.DeadlineExceeded)
		res.Stderr = strings.TrimRight(res.Stderr, "\n") + "\n" + err.Error()
	default:
		res.LaunchErr = err
	}

	return r.finish(inv, res)
}

func (r *ExecRunner) finish(inv Invocation, res Result) Result {
	outcome := res.Outcome()
	observability.RecordCommandRun(inv.Subcommand(), outcome.String(), res.Duration)

	fields := []zap.Field{
		zap.String("binary", r.binary),
		zap.String("command", inv.Subcommand()),
		zap.Int("code", res.Code()),
		zap.Stringer("outcome", outcome),
		zap.Duration("duration", res.Duration),
		zap.Int("stdout_bytes", len(res.Stdout)),
		zap.Int("stderr_bytes", len(res.Stderr)),
	}

	switch outcome {
	case OutcomeLaunchFailure:
		r.logger.Warn("process could not be started", append(fields, zap.Error(res.LaunchErr))...)
	case OutcomeExitFailure:
		r.logger.Info("process failed", append(fields, zap.Bool("timed_out", res.TimedOut))...)
	default:
		r.logger.Info("process finished", fields...)
	}
	return res
}

// mergeEnv appends overrides to base. exec.Cmd keeps the last value for duplicate keys.
func mergeEnv(base []string, overrides map[string]string) []string {
	env := make([]string, 0, len(base)+len(overrides))
	env = append(env, base...)

	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		env = append(env, k+"="+overrides[k])
	}
	return env
}
