package model

import (
	"bytes"
	"encoding/json"

	"github.com/AlexZinkM/substreams-relay/internal/common"
	"github.com/AlexZinkM/substreams-relay/internal/config"
)

// StreamRequest represents request for POST /stream
type StreamRequest struct {
	Wallet     FlexString `json:"wallet" example:"0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"`
	Direction  FlexString `json:"direction,omitempty" example:"from"` // "from" or "to"
	StartBlock FlexString `json:"startBlock,omitempty" example:"0"`
	StopBlock  FlexString `json:"stopBlock,omitempty" example:"+500"`
	Endpoint   FlexString `json:"endpoint,omitempty" example:"mainnet.eth.streamingfast.io:443"`
	Pkg        FlexString `json:"pkg,omitempty" example:"ethereum-explorer@latest"`
	Module     FlexString `json:"module,omitempty" example:"map_filter_transactions"`

	// walletRaw is the wallet exactly as it appeared in the JSON body
	walletRaw json.RawMessage
}

// UnmarshalJSON decodes the request, rejecting unknown fields, and keeps the raw wallet value.
func (r *StreamRequest) UnmarshalJSON(b []byte) error {
	type plain StreamRequest
	var aux struct {
		plain
		Wallet json.RawMessage `json:"wallet"`
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&aux); err != nil {
		return err
	}

	*r = StreamRequest(aux.plain)
	if len(aux.Wallet) == 0 {
		return nil
	}
	if err := r.Wallet.UnmarshalJSON(aux.Wallet); err != nil {
		return err
	}
	r.walletRaw = aux.Wallet
	return nil
}

// Validate checks the wallet field. The returned error is a *ValidationError.
func (r *StreamRequest) Validate() error {
	if r.Wallet == "" {
		return &ValidationError{Message: ErrMissingWallet}
	}
	if _, ok := common.NormalizeWallet(r.Wallet.String()); !ok {
		return &ValidationError{Message: ErrInvalidWallet, Wallet: r.walletEcho()}
	}
	return nil
}

// walletEcho returns the wallet as the client sent it
func (r *StreamRequest) walletEcho() any {
	if len(r.walletRaw) > 0 {
		return r.walletRaw
	}
	return r.Wallet.String()
}

// Address returns the lowercased wallet address
func (r *StreamRequest) Address() string {
	addr, _ := common.NormalizeWallet(r.Wallet.String())
	return addr
}

// NormalizedDirection returns "to" or "from"
func (r *StreamRequest) NormalizedDirection() string {
	return common.NormalizeDirection(r.Direction.String())
}

// Overrides returns the request-level substreams parameters
func (r *StreamRequest) Overrides() config.Overrides {
	return config.Overrides{
		Endpoint:   r.Endpoint.String(),
		Package:    r.Pkg.String(),
		Module:     r.Module.String(),
		StartBlock: r.StartBlock.String(),
		StopBlock:  r.StopBlock.String(),
	}
}

// StreamResponse represents response for a successful POST /stream
type StreamResponse struct {
	Data string `json:"data"`
	File string `json:"file" example:"/static/0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed.txt"`
}

// StreamFailure represents the 500 response of POST /stream when substreams exits non-zero
type StreamFailure struct {
	Error        string    `json:"error" example:"Substreams process exited with code 1"`
	Stdout       string    `json:"stdout,omitempty"`
	Stderr       string    `json:"stderr,omitempty"`
	TriedCommand string    `json:"triedCommand"`
	Endpoint     string    `json:"endpoint"`
	Package      string    `json:"package"`
	Module       string    `json:"module"`
	Direction    string    `json:"direction"`
	Info         ProbeInfo `json:"info"`
}

// ProbeInfo is the outcome of the diagnostic "info" call made after a failed run
type ProbeInfo struct {
	Code         int    `json:"code"`
	Stdout       string `json:"stdout,omitempty"`
	Stderr       string `json:"stderr,omitempty"`
	TriedCommand string `json:"triedCommand"`
}
