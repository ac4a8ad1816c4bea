// One-shot CLI for the substreams relay: runs the same info and stream operations
// as the HTTP server and prints the JSON response.
// Usage: go run ./cmd/relayctl run --wallet 0x...
package main

import (
	"errors"
	"fmt"
	"os"
)

// errCommandFailed signals a non-success result that was already printed.
var errCommandFailed = errors.New("command failed")

func main() {
	if err := newRootCmd(defaultDeps()).Execute(); err != nil {
		if !errors.Is(err, errCommandFailed) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
