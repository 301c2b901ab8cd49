// Command logcontract checks that structured log files still match the
// version 2 log line contract.
package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// version is set at build time via ldflags.
var version = "dev"

// errFailed means the run completed and the report says FAIL. The report has
// already been printed, so main only sets the exit status.
var errFailed = errors.New("log contract check failed")

func main() {
	loadDotEnv()
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

// loadDotEnv reads .env from the working directory, if present. Variables
// already set in the environment win.
func loadDotEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "warning: .env:", err)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "logcontract",
		Short:         "Check structured log lines against the log schema contract",
		Long:          "logcontract reads every log file named LOG_NAME under LOG_DIR, round-trips each structured record through the typed model, and checks the schema version, record type and level fields.",
		Version:       version,
		Args:          cobra.NoArgs,
		RunE:          runCheck,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := root.PersistentFlags()
	pf.String("config", "", "YAML config file")
	pf.String("log-dir", "", "directory to search for log files (env LOG_DIR)")
	pf.String("log-name", "", "log file name suffix to match (env LOG_NAME, default dbt.log)")
	pf.String("driver", "", "JSON driver: gojson or fastjson (env LOGCONTRACT_DRIVER)")
	pf.String("format", "", "report format: text, json or yaml (env LOGCONTRACT_FORMAT)")
	pf.String("lang", "", "message language: en or ja (env LOGCONTRACT_LANG)")
	pf.BoolP("verbose", "v", false, "log excluded lines at debug level")

	root.AddCommand(newCheckCmd(), newSchemaCmd())
	return root
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
