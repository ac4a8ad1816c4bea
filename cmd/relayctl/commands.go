package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/AlexZinkM/substreams-relay/internal/client"
	"github.com/AlexZinkM/substreams-relay/internal/config"
	"github.com/AlexZinkM/substreams-relay/internal/model"
	"github.com/AlexZinkM/substreams-relay/internal/observability"
	"github.com/AlexZinkM/substreams-relay/internal/runner"
	"github.com/AlexZinkM/substreams-relay/internal/store"
	"github.com/AlexZinkM/substreams-relay/stream"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// deps are the pieces a command builds from configuration. Tests replace newRunner.
type deps struct {
	loadConfig func() (*config.Config, error)
	newRunner  func(cfg *config.Config, logger *zap.Logger) runner.Runner
}

func defaultDeps() deps {
	return deps{
		loadConfig: config.LoadWithEnvFile,
		newRunner: func(cfg *config.Config, logger *zap.Logger) runner.Runner {
			return runner.NewExecRunner(runner.Options{
				Binary:        cfg.Binary,
				Timeout:       cfg.RunTimeout,
				MaxConcurrent: cfg.MaxConcurrent,
				Logger:        logger,
			})
		},
	}
}

// session is the per-invocation state shared by subcommands
type session struct {
	cfg     *config.Config
	logger  *zap.Logger
	client  *client.SubstreamsClient
	results *store.ResultStore
}

func newRootCmd(d deps) *cobra.Command {
	var (
		verbose bool
		s       session
	)

	rootCmd := &cobra.Command{
		Use:           "relayctl",
		Short:         "Run substreams relay operations from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := d.loadConfig()
			if err != nil {
				return err
			}

			level := cfg.LogLevel
			if verbose {
				level = "debug"
			}
			logger, err := observability.NewLogger(level)
			if err != nil {
				return err
			}

			s = session{
				cfg:     cfg,
				logger:  logger,
				client:  client.NewSubstreamsClient(d.newRunner(cfg, logger), cfg.Binary),
				results: store.NewResultStore(cfg.PublicDir),
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if s.logger != nil {
				_ = s.logger.Sync()
			}
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(newInfoCmd(&s), newRunCmd(&s), newShowCmd(&s))
	return rootCmd
}

func newInfoCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Describe the configured substreams package",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := stream.GetInfo(cmd.Context(), s.client, s.cfg.Defaults())
			if err := printJSON(cmd.OutOrStdout(), info); err != nil {
				return err
			}
			if !info.OK {
				return errCommandFailed
			}
			return nil
		},
	}
}

func newRunCmd(s *session) *cobra.Command {
	var req struct {
		wallet, direction, startBlock, stopBlock, endpoint, pkg, module string
	}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the substreams module for a wallet and store the result file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			streamReq := &model.StreamRequest{
				Wallet:     model.FlexString(req.wallet),
				Direction:  model.FlexString(req.direction),
				StartBlock: model.FlexString(req.startBlock),
				StopBlock:  model.FlexString(req.stopBlock),
				Endpoint:   model.FlexString(req.endpoint),
				Pkg:        model.FlexString(req.pkg),
				Module:     model.FlexString(req.module),
			}

			resp, err := stream.RunStream(cmd.Context(), s.client, s.results, s.cfg.Defaults(), streamReq)
			if err != nil {
				return printFailure(cmd.OutOrStdout(), err)
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&req.wallet, "wallet", "", "0x-prefixed wallet address (required)")
	flags.StringVar(&req.direction, "direction", "from", `"from" or "to"`)
	flags.StringVar(&req.startBlock, "start-block", "", "start block (default from SUBSTREAMS_START_BLOCK)")
	flags.StringVar(&req.stopBlock, "stop-block", "", "stop block (default from SUBSTREAMS_STOP_BLOCK)")
	flags.StringVar(&req.endpoint, "endpoint", "", "substreams endpoint (default from SUBSTREAMS_ENDPOINT)")
	flags.StringVar(&req.pkg, "pkg", "", "substreams package (default from SUBSTREAMS_PACKAGE)")
	flags.StringVar(&req.module, "module", "", "module name (default from SUBSTREAMS_MODULE)")

	return cmd
}

func newShowCmd(s *session) *cobra.Command {
	var wallet string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the stored result file of a wallet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := &model.StreamRequest{Wallet: model.FlexString(wallet)}
			if err := req.Validate(); err != nil {
				return printFailure(cmd.OutOrStdout(), err)
			}

			contents, err := s.results.Load(req.Address())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), model.StreamResponse{
				Data: contents,
				File: store.PublicPath(req.Address()),
			})
		},
	}
	cmd.Flags().StringVar(&wallet, "wallet", "", "0x-prefixed wallet address (required)")

	return cmd
}

// printFailure prints the JSON body the HTTP API would return for err
func printFailure(w io.Writer, err error) error {
	var validationErr *model.ValidationError
	if errors.As(err, &validationErr) {
		if printErr := printJSON(w, validationErr); printErr != nil {
			return printErr
		}
		return errCommandFailed
	}
	if runErr, ok := stream.IsRunFailedError(err); ok {
		if printErr := printJSON(w, runErr.Failure); printErr != nil {
			return printErr
		}
		return errCommandFailed
	}
	return err
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
