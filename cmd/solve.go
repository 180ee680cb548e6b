package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/EngindalgaMaku/dersplan/core/engine"
	"github.com/EngindalgaMaku/dersplan/infra/logger"
	"github.com/EngindalgaMaku/dersplan/scenario"
)

var (
	solveAttempts int
	solveOutput   string
)

var solveCmd = &cobra.Command{
	Use:   "solve <scenario.yaml>",
	Short: "Run the scheduler once against a scenario file",
	Args:  cobra.ExactArgs(1),
	RunE:  runSolve,
}

func init() {
	solveCmd.Flags().IntVarP(&solveAttempts, "attempts", "n", 0, "number of attempts (0 = configured default)")
	solveCmd.Flags().StringVarP(&solveOutput, "output", "o", "", "write the result JSON to this file instead of stdout")
	rootCmd.AddCommand(solveCmd)
}

func runSolve(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	sc, err := scenario.Load(args[0])
	if err != nil {
		return fmt.Errorf("load scenario: %w", err)
	}
	if sc.GridDays == 0 {
		sc.GridDays = cfg.Grid.Days
	}
	if sc.GridPeriods == 0 {
		sc.GridPeriods = cfg.Grid.Periods
	}
	logg := logger.New("solve")
	runner, err := engine.NewRunner(cfg.Engine, logg)
	if err != nil {
		return err
	}

	attempts := solveAttempts
	if attempts == 0 {
		attempts = sc.Attempts
	}
	if attempts == 0 {
		attempts = runner.DefaultAttempts()
	}
	res := runner.FindBestSchedule(ctx, sc.ToInput(), attempts)

	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	if solveOutput != "" {
		if err := os.WriteFile(solveOutput, data, 0o644); err != nil {
			return err
		}
		logg.Infof("result written to %s", solveOutput)
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
	}
	if !res.Success {
		return fmt.Errorf("scheduling failed: %s", res.Error)
	}
	return nil
}
