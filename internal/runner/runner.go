// Package runner executes the external CLI as a child process and buffers its output.
//
// A run never returns a Go error. Every call yields a Result whose Outcome tells
// a clean exit, a tool-reported failure and a failure to start apart.
package runner

import (
	"context"
	"time"
)

// LaunchFailedCode is reported as the exit code of a process that never started.
const LaunchFailedCode = -1

// Outcome classifies how a run ended.
type Outcome int

const (
	// OutcomeSuccess means the process exited with code 0.
	OutcomeSuccess Outcome = iota
	// OutcomeExitFailure means the process ran and exited non-zero or was killed.
	OutcomeExitFailure
	// OutcomeLaunchFailure means the process could not be started at all.
	OutcomeLaunchFailure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeExitFailure:
		return "exit_failure"
	case OutcomeLaunchFailure:
		return "launch_failure"
	default:
		return "unknown"
	}
}

// Invocation is one call of the executable.
type Invocation struct {
	Args []string
	// Env overrides are merged on top of the current process environment.
	Env map[string]string
}

// Subcommand returns the first argument, used for labelling logs and metrics.
func (inv Invocation) Subcommand() string {
	if len(inv.Args) == 0 {
		return ""
	}
	return inv.Args[0]
}

// Result is the record of a finished (or never started) process.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string

	// LaunchErr is set when the process could not be started.
	LaunchErr error
	// TimedOut is set when the process was killed by the configured run timeout.
	TimedOut bool

	Duration time.Duration
}

// Outcome returns the variant of the result.
func (r Result) Outcome() Outcome {
	switch {
	case r.LaunchErr != nil:
		return OutcomeLaunchFailure
	case r.ExitCode == 0 && !r.TimedOut:
		return OutcomeSuccess
	default:
		return OutcomeExitFailure
	}
}

// OK reports whether the process exited with code 0.
func (r Result) OK() bool {
	return r.Outcome() == OutcomeSuccess
}

// Code returns the exit code, or LaunchFailedCode when the process never started.
func (r Result) Code() int {
	if r.LaunchErr != nil {
		return LaunchFailedCode
	}
	return r.ExitCode
}

// ErrorOutput returns stderr with the launch error folded in, if any.
func (r Result) ErrorOutput() string {
	if r.LaunchErr == nil {
		return r.Stderr
	}
	return r.Stderr + "\n" + r.LaunchErr.Error()
}

// Runner runs the executable with the given invocation and waits for it to exit.
type Runner interface {
	Run(ctx context.Context, inv Invocation) Result
}

// Func adapts a plain function to the Runner interface.
type Func func(ctx context.Context, inv Invocation) Result

// Run calls f(ctx, inv).
func (f Func) Run(ctx context.Context, inv Invocation) Result {
	return f(ctx, inv)
}
