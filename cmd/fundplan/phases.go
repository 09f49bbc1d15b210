package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmynk/fundplan/internal/calculator"
	"github.com/mmynk/fundplan/internal/cli"
	"github.com/mmynk/fundplan/internal/models"
)

var phasesCmd = &cobra.Command{
	Use:   "phases",
	Short: "Show the return phases chosen for a horizon",
	RunE:  runPhases,
}

func init() {
	phasesCmd.Flags().IntVarP(&flagHorizon, "months", "m", 0, "Months until the target date")
	_ = phasesCmd.MarkFlagRequired("months")
	rootCmd.AddCommand(phasesCmd)
}

func runPhases(_ *cobra.Command, _ []string) error {
	if flagHorizon < 1 {
		return calculator.ErrInvalidHorizon
	}
	fmt.Println()
	fmt.Print(renderPhases(calculator.PhasesForHorizon(flagHorizon, cfg.Planner.Risk)))
	fmt.Println()
	return nil
}

func renderPhases(phases []models.ReturnPhase) string {
	rows := make([][]string, 0, len(phases))
	start := 0
	for i, p := range phases {
		rows = append(rows, []string{
			fmt.Sprintf("Phase %d", i+1),
			fmt.Sprintf("%d-%d", start+1, start+p.Months),
			cli.FormatMonths(p.Months),
			cli.FormatRate(p.AnnualRate),
		})
		start += p.Months
	}
	return cli.RenderTable(cli.Table{
		Title:   "Return phases",
		Headers: []string{"Phase", "Months", "Length", "Rate"},
		Rows:    rows,
	})
}
