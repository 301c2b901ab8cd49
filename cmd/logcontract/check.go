package main

import (
	"fmt"

	"github.com/spf13/cobra"

	logcontract "github.com/reoring/logcontract"
	"github.com/reoring/logcontract/check"
	"github.com/reoring/logcontract/i18n"
	"github.com/reoring/logcontract/internal/config"
	"github.com/reoring/logcontract/internal/logfiles"
	"github.com/reoring/logcontract/report"
	"github.com/reoring/logcontract/source/fastjson"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Run the contract over the configured log files (default)",
		Args:  cobra.NoArgs,
		RunE:  runCheck,
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	i18n.SetLanguage(cfg.Lang)
	if cfg.Driver == config.DriverFastJSON {
		logcontract.SetJSONDriver(fastjson.Driver())
		defer logcontract.UseDefaultJSONDriver()
	}
	log := newLogger(cmd.ErrOrStderr(), cfg.Verbose)
	log.Debug("configuration", "log_dir", cfg.LogDir, "log_name", cfg.LogName, "driver", logcontract.CurrentJSONDriver().Name())

	lines, err := logfiles.Collect(cfg.LogDir, cfg.LogName)
	if err != nil {
		return err
	}

	rep, err := check.Run(cmd.Context(), lines, check.Options{Logger: log})
	if err != nil {
		return fmt.Errorf("check: %w", err)
	}
	format, _ := report.ParseFormat(cfg.Format)
	if err := report.Write(cmd.OutOrStdout(), rep, format); err != nil {
		return err
	}
	if !rep.Passed() {
		return errFailed
	}
	return nil
}
