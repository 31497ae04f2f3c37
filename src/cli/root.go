package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/lospro7/snapshot-s3-util/src/backup"
	"github.com/lospro7/snapshot-s3-util/src/clusterconf"
	"github.com/lospro7/snapshot-s3-util/src/distcp"
	"github.com/lospro7/snapshot-s3-util/src/hbase"
)

// NewRootCmd returns the root cobra command for the snapshot-s3-util CLI.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot-s3-util",
		Short: "Create HBase table snapshots and export/import them to and from S3",
		Args:  cobra.NoArgs,

		SilenceUsage:  true,
		SilenceErrors: true,

		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := requestFromFlags(cmd)
			if err != nil {
				return err
			}
			// Validate before touching the cluster or its configuration.
			if err := req.Validate(); err != nil {
				return err
			}

			logger, err := newLogger(cmd, stderr)
			if err != nil {
				return err
			}

			confPath, _ := cmd.Flags().GetString("conf")
			conf, err := clusterconf.Load(confPath)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			runner, err := newRunner(ctx, conf, logger)
			if err != nil {
				return err
			}
			return runner.Run(ctx, req)
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	addFlags(cmd)

	cmd.AddCommand(newVersionCmd(stdout))

	return cmd
}

// newRunner wires the real cluster collaborators. Swappable for tests.
var newRunner = func(ctx context.Context, conf *clusterconf.Config, logger zerolog.Logger) (*backup.Runner, error) {
	bin, err := hbase.Detect(ctx)
	if err != nil {
		return nil, err
	}
	logger.Debug().Str("path", bin.Path).Str("version", bin.Version).Msg("detected hbase launcher")

	return &backup.Runner{
		Conf: conf,
		NewAdmin: func(*clusterconf.Config) (hbase.Admin, error) {
			return hbase.NewExecAdmin(bin), nil
		},
		Engine: distcp.NewExecEngine(bin, logger),
		Log:    logger,
	}, nil
}

// SetNewRunnerForTest replaces the runner factory and returns a reset
// function.
func SetNewRunnerForTest(fn func(context.Context, *clusterconf.Config, zerolog.Logger) (*backup.Runner, error)) func() {
	prev := newRunner
	newRunner = fn
	return func() { newRunner = prev }
}

func newLogger(cmd *cobra.Command, stderr io.Writer) (zerolog.Logger, error) {
	levelStr, _ := cmd.Flags().GetString("log-level")
	level, err := zerolog.ParseLevel(levelStr)
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("invalid log level %q: %w", levelStr, err)
	}
	out := zerolog.ConsoleWriter{Out: stderr, TimeFormat: "2006-01-02 15:04:05"}
	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}

// Execute runs the CLI with the process stdio and returns the exit code.
func Execute() int {
	root := NewRootCmd(os.Stdout, os.Stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}
