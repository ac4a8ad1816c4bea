package stream

import (
	"context"

	"github.com/AlexZinkM/substreams-relay/internal/client"
	"github.com/AlexZinkM/substreams-relay/internal/config"
	"github.com/AlexZinkM/substreams-relay/internal/model"
)

// GetInfo runs "info" for the configured package and endpoint.
// The caller maps OK to the response status.
func GetInfo(ctx context.Context, sc *client.SubstreamsClient, defaults config.Defaults) *model.InfoResponse {
	params := defaults.Resolve(config.Overrides{})

	call := sc.Info(ctx, params.Endpoint, params.Package)

	return &model.InfoResponse{
		Endpoint:     params.Endpoint,
		Package:      params.Package,
		Code:         call.Result.Code(),
		Stdout:       call.Result.Stdout,
		Stderr:       call.Result.ErrorOutput(),
		TriedCommand: call.TriedCommand(),
		OK:           call.Result.OK(),
	}
}
