package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "missing",
		Short: "Preview missing days",
		Long:  "List the days without a daily note in the period the next run would cover. Unlike the report, the list is never truncated.",
		Run:   runMissing,
	}

	RootCmd.AddCommand(cmd)
}

func runMissing(cmd *cobra.Command, args []string) {
	r, done := newRunner()
	defer done()

	days, err := r.MissingPreview(cmd.Context())
	if err != nil {
		exitErr("missing", err)
	}

	b, _ := json.MarshalIndent(days, "", "  ")
	fmt.Println(string(b))
}
