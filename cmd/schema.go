package cmd

import (
	_ "embed"

	"github.com/spf13/cobra"
)

// reportSchema is the JSON Schema of check --json output and --report files.
//
//go:embed report.schema.json
var reportSchema []byte

// NewSchemaCmd creates the schema command, which prints the report schema.
func NewSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "schema",
		Short:        "Print the JSON Schema of the check report",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := cmd.OutOrStdout().Write(reportSchema)
			return err
		},
	}
}
