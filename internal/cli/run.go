package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Generate the recap report",
		Long:  "Aggregates every daily note since the last run into a cumulative recap and writes it into the vault, replacing any recap already generated today.",
		Run:   runRun,
	}

	RootCmd.AddCommand(cmd)
}

func runRun(cmd *cobra.Command, args []string) {
	r, done := newRunner()
	defer done()

	filename, err := r.Run(cmd.Context())
	if err != nil {
		exitErr("run", err)
	}
	fmt.Println(filename)
}
