package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/EngindalgaMaku/dersplan/scenario"
)

var validateCmd = &cobra.Command{
	Use:   "validate <scenario.yaml>",
	Short: "Check a scenario file for dangling references without scheduling",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	sc, err := scenario.Load(args[0])
	if err != nil {
		return fmt.Errorf("load scenario: %w", err)
	}
	if err := sc.ToInput().Validate(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "scenario %s is valid: %d teachers, %d lessons, %d locations\n",
		sc.Name, len(sc.Teachers), len(sc.Lessons), len(sc.Locations))
	return nil
}
