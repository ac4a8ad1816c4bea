package model

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, body string) (*StreamRequest, error) {
	t.Helper()
	var req StreamRequest
	err := json.Unmarshal([]byte(body), &req)
	return &req, err
}

func TestFlexString_Coercion(t *testing.T) {
	tests := []struct {
		body string
		want FlexString
	}{
		{`{"startBlock": "17000000"}`, "17000000"},
		{`{"startBlock": 17000000}`, "17000000"},
		{`{"startBlock": "0"}`, "0"},
		{`{"startBlock": 0}`, ""},
		{`{"startBlock": null}`, ""},
		{`{"startBlock": false}`, ""},
		{`{"startBlock": true}`, "true"},
		{`{"startBlock": ""}`, ""},
		{`{"startBlock": 1e3}`, "1000"},
		{`{"startBlock": 2.50}`, "2.5"},
		{`{"startBlock": 17000000.0}`, "17000000"},
		{`{"startBlock": -5}`, "-5"},
		{`{"startBlock": 1e21}`, "1e+21"},
		{`{"startBlock": 0.0000015}`, "0.0000015"},
		{`{"startBlock": 1.5e-7}`, "1.5e-7"},
		{`{"startBlock": 0e5}`, ""},
		{`{}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			req, err := decode(t, tt.body)
			require.NoError(t, err)
			assert.Equal(t, tt.want, req.StartBlock)
		})
	}
}

func TestFlexString_RejectsCompositeValues(t *testing.T) {
	for _, body := range []string{`{"wallet": {"a": 1}}`, `{"wallet": ["0x"]}`} {
		_, err := decode(t, body)
		assert.Error(t, err, body)
	}
}

func TestStreamRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		wallet  FlexString
		wantErr *ValidationError
	}{
		{"missing", "", &ValidationError{Message: ErrMissingWallet}},
		{"too short", "0x1234", &ValidationError{Message: ErrInvalidWallet, Wallet: "0x1234"}},
		{"ens name", "vitalik.eth", &ValidationError{Message: ErrInvalidWallet, Wallet: "vitalik.eth"}},
		{"mixed case is echoed verbatim", "0xZZAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
			&ValidationError{Message: ErrInvalidWallet, Wallet: "0xZZAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"}},
		{"valid checksummed", "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &StreamRequest{Wallet: tt.wallet}
			err := req.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}

			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.wantErr, vErr)
		})
	}
}

func TestStreamRequest_InvalidWalletEchoesRawValue(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{`{"wallet": "0xnope"}`, `{"error":"Invalid wallet","wallet":"0xnope"}`},
		{`{"wallet": true}`, `{"error":"Invalid wallet","wallet":true}`},
		{`{"wallet": 123}`, `{"error":"Invalid wallet","wallet":123}`},
		{`{"wallet": 1.50}`, `{"error":"Invalid wallet","wallet":1.50}`},
	}

	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			req, err := decode(t, tt.body)
			require.NoError(t, err)

			vErr := req.Validate()
			require.Error(t, vErr)
			b, err := json.Marshal(vErr)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(b))
		})
	}
}

func TestStreamRequest_RejectsUnknownFields(t *testing.T) {
	_, err := decode(t, `{"wallet": "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", "chain": "eth"}`)
	assert.ErrorContains(t, err, "unknown field")
}

func TestValidationError_Error(t *testing.T) {
	assert.Equal(t, "Missing wallet", (&ValidationError{Message: ErrMissingWallet}).Error())
	assert.Equal(t, "Invalid wallet: nope", (&ValidationError{Message: ErrInvalidWallet, Wallet: "nope"}).Error())
	assert.Equal(t, "Invalid wallet: 123", (&ValidationError{Message: ErrInvalidWallet, Wallet: json.RawMessage(`123`)}).Error())
}

func TestValidationError_JSON(t *testing.T) {
	b, err := json.Marshal(&ValidationError{Message: ErrMissingWallet})
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"Missing wallet"}`, string(b))

	b, err = json.Marshal(&ValidationError{Message: ErrInvalidWallet, Wallet: "nope"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"Invalid wallet","wallet":"nope"}`, string(b))
}

func TestStreamRequest_Normalization(t *testing.T) {
	req, err := decode(t, `{
		"wallet": "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
		"direction": "TO",
		"pkg": "my-pkg@v1",
		"stopBlock": 250
	}`)
	require.NoError(t, err)

	assert.Equal(t, "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", req.Address())
	assert.Equal(t, "to", req.NormalizedDirection())

	o := req.Overrides()
	assert.Equal(t, "my-pkg@v1", o.Package)
	assert.Equal(t, "250", o.StopBlock)
	assert.Empty(t, o.Endpoint)
	assert.Empty(t, o.Module)
}

func TestStreamFailure_OmitsEmptyStreams(t *testing.T) {
	b, err := json.Marshal(StreamFailure{
		Error:        "Substreams process exited with code 1",
		Stderr:       "boom",
		TriedCommand: "SUBSTREAMS_ENDPOINT=e substreams run",
		Info:         ProbeInfo{Code: 0, Stdout: "pkg info", TriedCommand: "SUBSTREAMS_ENDPOINT=e substreams info p"},
	})
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))
	assert.NotContains(t, raw, "stdout")
	assert.Equal(t, "boom", raw["stderr"])

	info := raw["info"].(map[string]any)
	assert.NotContains(t, info, "stderr")
	assert.Equal(t, float64(0), info["code"])
}
