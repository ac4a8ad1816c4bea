package model

// InfoResponse represents response for GET /substreams/info
type InfoResponse struct {
	Endpoint     string `json:"endpoint" example:"mainnet.eth.streamingfast.io:443"`
	Package      string `json:"package" example:"ethereum-explorer@latest"`
	Code         int    `json:"code"`
	Stdout       string `json:"stdout"`
	Stderr       string `json:"stderr"`
	TriedCommand string `json:"triedCommand"`

	// OK is false when the command failed to start, exited non-zero or timed out
	OK bool `json:"-"`
}

// HealthResponse represents response for GET /health
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
