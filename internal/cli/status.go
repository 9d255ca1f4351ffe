package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "List notes modified since the last run",
		Long:  "List the daily notes created or modified after the last recap run recorded their modification times.",
		Run:   runStatus,
	}

	RootCmd.AddCommand(cmd)
}

func runStatus(cmd *cobra.Command, args []string) {
	r, done := newRunner()
	defer done()

	modified, err := r.Status(cmd.Context())
	if err != nil {
		exitErr("status", err)
	}

	b, _ := json.MarshalIndent(modified, "", "  ")
	fmt.Println(string(b))
}
