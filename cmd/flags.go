package cmd

import (
	"github.com/spf13/cobra"
)

func jsonFlag(cmd *cobra.Command, val *bool) {
	cmd.Flags().BoolVarP(val, "json", "j", false,
		"print output as JSON")
}

func rationaleFlag(cmd *cobra.Command, val *string) {
	cmd.Flags().StringVarP(val, "rationale", "r", "",
		"why the decision was made, stored in the curation log")
}

func decisionMSFlag(cmd *cobra.Command, val *int64) {
	cmd.Flags().Int64Var(val, "decision-ms", 0,
		"milliseconds the curator spent on the decision")
}
