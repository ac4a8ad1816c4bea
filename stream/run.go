package stream

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/AlexZinkM/substreams-relay/internal/client"
	"github.com/AlexZinkM/substreams-relay/internal/common"
	"github.com/AlexZinkM/substreams-relay/internal/config"
	"github.com/AlexZinkM/substreams-relay/internal/crypto"
	"github.com/AlexZinkM/substreams-relay/internal/model"
	"github.com/AlexZinkM/substreams-relay/internal/store"
)

// RunFailedError is returned when the substreams run exits non-zero or cannot start.
// Failure is the complete 500 response body, including the diagnostic probe.
type RunFailedError struct {
	Failure model.StreamFailure
}

func (e *RunFailedError) Error() string {
	return e.Failure.Error
}

// IsRunFailedError checks if error is RunFailedError and returns it
func IsRunFailedError(err error) (*RunFailedError, bool) {
	var runErr *RunFailedError
	ok := errors.As(err, &runErr)
	return runErr, ok
}

// RunStream runs the substreams module for one wallet and stores the output as <address>.txt.
// Errors: *model.ValidationError for bad input, *RunFailedError for a failed run,
// anything else for storage failures.
func RunStream(ctx context.Context, sc *client.SubstreamsClient, results *store.ResultStore, defaults config.Defaults, req *model.StreamRequest) (*model.StreamResponse, error) {
	// Validate before anything is spawned
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Resolve parameters: request > environment > built-in
	params := defaults.Resolve(req.Overrides())
	q := client.Query{
		Endpoint:   params.Endpoint,
		Package:    params.Package,
		Module:     params.Module,
		Direction:  req.NormalizedDirection(),
		Address:    req.Address(),
		StartBlock: params.StartBlock,
		StopBlock:  params.StopBlock,
	}

	call := sc.Run(ctx, q)
	if !call.Result.OK() {
		// Probe the package so the caller can tell why the run failed. Not a retry.
		probe := sc.Info(ctx, q.Endpoint, q.Package)
		return nil, &RunFailedError{Failure: buildFailure(q, call, probe)}
	}

	// Never persist an empty file
	contents := common.PickOutput(call.Result.Stdout, call.Result.Stderr, func() string {
		return emptyRunReport(q).String()
	})

	file, err := results.Save(q.Address, contents)
	if err != nil {
		return nil, err
	}

	return &model.StreamResponse{
		Data: contents,
		File: file,
	}, nil
}

func buildFailure(q client.Query, call, probe client.Call) model.StreamFailure {
	return model.StreamFailure{
		Error:        fmt.Sprintf("Substreams process exited with code %d", call.Result.Code()),
		Stdout:       strings.TrimSpace(call.Result.Stdout),
		Stderr:       strings.TrimSpace(call.Result.ErrorOutput()),
		TriedCommand: call.TriedCommand(),
		Endpoint:     q.Endpoint,
		Package:      q.Package,
		Module:       q.Module,
		Direction:    q.Direction,
		Info: model.ProbeInfo{
			Code:         probe.Result.Code(),
			Stdout:       strings.TrimSpace(probe.Result.Stdout),
			Stderr:       strings.TrimSpace(probe.Result.ErrorOutput()),
			TriedCommand: probe.TriedCommand(),
		},
	}
}

func emptyRunReport(q client.Query) common.EmptyRunReport {
	// Address is already validated, so this cannot fail
	checksum, _ := crypto.ChecksumAddress(q.Address)

	return common.EmptyRunReport{
		Wallet:     q.Address,
		Checksum:   checksum,
		Module:     q.Module,
		Direction:  q.Direction,
		StartBlock: q.StartBlock,
		StopBlock:  q.StopBlock,
	}
}
