package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/Gobusters/ectologger"
	"github.com/Ramsey-B/bramble/config"
	catalogerrors "github.com/Ramsey-B/bramble/pkg/errors"
	"github.com/Ramsey-B/bramble/pkg/logging"
	"github.com/Ramsey-B/bramble/pkg/metrics"
	"github.com/Ramsey-B/bramble/pkg/schema"
	"github.com/Ramsey-B/bramble/pkg/tracing"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// app holds what every command needs once the root command has loaded
// configuration.
type app struct {
	cfg     *config.Config
	logger  ectologger.Logger
	metrics *metrics.Metrics
	flush   func()
}

func (a *app) schemaOptions() schema.Options {
	return schema.Options{RequireUndeclared: a.cfg.SchemaRequireUndeclared}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var envFile string

	root := &cobra.Command{
		Use:           "bramble",
		Short:         "Generate item variants and validate item documents",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var files []string
			if envFile != "" {
				files = append(files, envFile)
			}

			cfg, err := config.Load(files...)
			if err != nil {
				return err
			}

			logger, flush, err := logging.New(cfg.LogLevel, cfg.PrettyLogs)
			if err != nil {
				return err
			}

			if cfg.TracingEnabled {
				provider := tracing.NewProvider(cfg.AppName, nil)
				tracing.SetTracer(provider.Tracer(cfg.AppName))
				shutdown := flush
				flush = func() {
					_ = provider.Shutdown(context.Background())
					shutdown()
				}
			}

			a.cfg = cfg
			a.logger = logger
			a.metrics = metrics.New(cfg.MetricsNamespace, prometheus.NewRegistry())
			a.flush = flush
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.flush != nil {
				a.flush()
			}
		},
	}

	root.PersistentFlags().StringVar(&envFile, "env-file", "", "env file to load before reading the environment (default .env)")

	root.AddCommand(
		newCombinationsCmd(a),
		newReconcileCmd(a),
		newValidateCmd(a),
		newSubmitCmd(a),
	)

	return root
}

// Exit codes.
const (
	exitFailure  = 1
	exitInvalid  = 2
	exitRejected = 3
	exitTooLarge = 4
)

// report writes err to w and returns the process exit code. Catalog errors
// are written as JSON with their HTTP status and context.
func report(w io.Writer, err error) int {
	var catalogErr *catalogerrors.CatalogError
	switch {
	case errors.Is(err, errInvalid):
		fmt.Fprintln(w, "Error:", err)
		return exitInvalid
	case errors.As(err, &catalogErr):
		httpErr := catalogErr.ToHTTPError()
		meta := map[string]any{}
		for k, v := range httpErr.Meta {
			if v != "" {
				meta[k] = v
			}
		}
		_ = writeJSON(w, map[string]any{
			"status":  httpErr.Code,
			"message": httpErr.Message,
			"meta":    meta,
		})
		if httpErr.Code == http.StatusUnprocessableEntity {
			return exitTooLarge
		}
		return exitRejected
	default:
		fmt.Fprintln(w, "Error:", err)
		return exitFailure
	}
}

func main() {
	root := newRootCmd()
	if err := root.ExecuteContext(context.Background()); err != nil {
		os.Exit(report(root.ErrOrStderr(), err))
	}
}
