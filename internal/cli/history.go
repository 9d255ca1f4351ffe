package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past recap runs",
		Long:  "Show the run history as JSON: when each recap was generated, its period start, and which notes it included.",
		Run:   runHistory,
	}

	cmd.Flags().IntP("limit", "l", 0, "Only show the most recent N runs (0 = all)")

	RootCmd.AddCommand(cmd)
}

func runHistory(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")

	s := openSettings()
	defer s.Close()

	set, err := s.Load(cmd.Context())
	if err != nil {
		exitErr("history", err)
	}

	history := set.History
	if limit > 0 && len(history) > limit {
		history = history[len(history)-limit:]
	}

	b, _ := json.MarshalIndent(history, "", "  ")
	fmt.Println(string(b))
}
