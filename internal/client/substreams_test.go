package client

import (
	"context"
	"testing"

	"github.com/AlexZinkM/substreams-relay/internal/runner"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingRunner struct {
	calls  []runner.Invocation
	result runner.Result
}

func (r *recordingRunner) Run(_ context.Context, inv runner.Invocation) runner.Result {
	r.calls = append(r.calls, inv)
	return r.result
}

func TestSubstreamsClient_Info(t *testing.T) {
	rec := &recordingRunner{result: runner.Result{Stdout: "Name: ethereum-explorer"}}
	c := NewSubstreamsClient(rec, "substreams")

	call := c.Info(context.Background(), "mainnet.eth.streamingfast.io:443", "ethereum-explorer@latest")

	require.Len(t, rec.calls, 1)
	assert.Equal(t, []string{"info", "ethereum-explorer@latest"}, rec.calls[0].Args)
	assert.Equal(t, map[string]string{"SUBSTREAMS_ENDPOINT": "mainnet.eth.streamingfast.io:443"}, rec.calls[0].Env)
	assert.Equal(t, "Name: ethereum-explorer", call.Result.Stdout)
	assert.Equal(t,
		"SUBSTREAMS_ENDPOINT=mainnet.eth.streamingfast.io:443 substreams info ethereum-explorer@latest",
		call.TriedCommand())
}

func TestSubstreamsClient_Run(t *testing.T) {
	rec := &recordingRunner{}
	c := NewSubstreamsClient(rec, "")

	call := c.Run(context.Background(), Query{
		Endpoint:   "ep:443",
		Package:    "pkg@v1",
		Module:     "map_filter_transactions",
		Direction:  "to",
		Address:    "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed",
		StartBlock: "100",
		StopBlock:  "+10",
	})

	want := []string{
		"run", "pkg@v1", "map_filter_transactions",
		"--params", "map_filter_transactions=to=0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed",
		"--start-block", "100",
		"--stop-block", "+10",
	}
	require.Len(t, rec.calls, 1)
	assert.Equal(t, want, rec.calls[0].Args)
	assert.Equal(t, "ep:443", rec.calls[0].Env["SUBSTREAMS_ENDPOINT"])
	assert.Equal(t, "substreams", call.Binary)
	assert.Equal(t,
		"SUBSTREAMS_ENDPOINT=ep:443 substreams run pkg@v1 map_filter_transactions "+
			"--params map_filter_transactions=to=0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed "+
			"--start-block 100 --stop-block +10",
		call.TriedCommand())
}
