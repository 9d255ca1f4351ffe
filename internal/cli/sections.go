package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	sectionsCmd := &cobra.Command{
		Use:   "sections",
		Short: "Manage the section names included in recaps",
		Long:  "Manage the list of \"## \" section headings pulled out of each daily note. With no sections configured, recaps fall back to every section found.",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the configured sections",
		Run:   runSectionsList,
	}

	setCmd := &cobra.Command{
		Use:   "set <name>...",
		Short: "Replace the configured section list",
		Args:  cobra.MinimumNArgs(1),
		Run:   runSectionsSet,
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear the section list",
		Run:   runSectionsClear,
	}

	sectionsCmd.AddCommand(listCmd, setCmd, clearCmd)
	RootCmd.AddCommand(sectionsCmd)
}

func runSectionsList(cmd *cobra.Command, args []string) {
	s := openSettings()
	defer s.Close()

	set, err := s.Load(cmd.Context())
	if err != nil {
		exitErr("list sections", err)
	}

	b, _ := json.MarshalIndent(set.Sections, "", "  ")
	fmt.Println(string(b))
}

func runSectionsSet(cmd *cobra.Command, args []string) {
	s := openSettings()
	defer s.Close()

	set, err := s.Load(cmd.Context())
	if err != nil {
		exitErr("set sections", err)
	}
	set.Sections = args
	if err := s.Save(cmd.Context(), set); err != nil {
		exitErr("set sections", err)
	}

	for _, name := range args {
		fmt.Println(name)
	}
}

func runSectionsClear(cmd *cobra.Command, args []string) {
	s := openSettings()
	defer s.Close()

	set, err := s.Load(cmd.Context())
	if err != nil {
		exitErr("clear sections", err)
	}
	set.Sections = nil
	if err := s.Save(cmd.Context(), set); err != nil {
		exitErr("clear sections", err)
	}
}
