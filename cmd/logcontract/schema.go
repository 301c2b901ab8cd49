package main

import (
	"fmt"

	j "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/reoring/logcontract/internal/config"
	"github.com/reoring/logcontract/logline"
	"github.com/reoring/logcontract/report"
)

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the LogLine JSON Schema",
		Long:  "Print the JSON Schema (draft-07) for log lines. The format comes from --format, LOGCONTRACT_FORMAT or the config file like the check report: yaml prints YAML, text and json print JSON.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := logline.Schema().JSONSchema()
			if err != nil {
				return err
			}
			cfgFile, _ := cmd.Flags().GetString("config")
			cfg, err := config.Resolve(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			format, err := report.ParseFormat(cfg.Format)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if format == report.YAML {
				return yaml.NewEncoder(out).Encode(s)
			}
			b, err := j.MarshalIndent(s, "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, "%s\n", b)
			return err
		},
	}
}
