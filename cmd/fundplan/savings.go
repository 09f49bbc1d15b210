package main

import (
	"context"
	"fmt"

	"connectrpc.com/connect"
	"github.com/spf13/cobra"

	"github.com/mmynk/fundplan/internal/cli"
	"github.com/mmynk/fundplan/internal/planfile"
	"github.com/mmynk/fundplan/internal/service"
)

var flagLumpSum float64

var savingsCmd = &cobra.Command{
	Use:   "savings",
	Short: "Spread a lump sum across the goals of a plan file",
	RunE:  runSavings,
}

func init() {
	savingsCmd.Flags().StringVarP(&flagPlanFile, "file", "f", "", "YAML plan file")
	savingsCmd.Flags().Float64VarP(&flagLumpSum, "lump-sum", "l", 0, "Savings to apply (overrides the plan file)")
	_ = savingsCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(savingsCmd)
}

func runSavings(_ *cobra.Command, _ []string) error {
	now, err := planTime()
	if err != nil {
		return err
	}
	plan, err := planfile.Load(flagPlanFile)
	if err != nil {
		return err
	}
	goals, err := plan.BuildGoals(now, cfg.Planner.Risk)
	if err != nil {
		return err
	}

	lumpSum := firstPositive(flagLumpSum, plan.LumpSum)
	resp, err := newPlanner().ApplySavings(context.Background(), connect.NewRequest(&service.ApplySavingsRequest{
		Goals:   goals,
		LumpSum: lumpSum,
	}))
	if err != nil {
		return err
	}
	res := resp.Msg.Result

	fmt.Println()
	fmt.Println(cli.RenderTitle("SAVINGS  " + cli.FormatMoney(lumpSum)))
	fmt.Println()

	rows := make([][]string, 0, len(res.Goals)+2)
	for _, g := range res.Goals {
		initial, remaining := 0.0, g.Amount
		if g.InitialAmount != nil {
			initial = *g.InitialAmount
		}
		if g.RemainingAmount != nil {
			remaining = *g.RemainingAmount
		}
		rows = append(rows, []string{
			g.Name,
			cli.FormatMonth(g.TargetDate),
			cli.FormatMoney(g.Amount),
			cli.FormatMoney(initial),
			cli.FormatMoney(remaining),
		})
	}
	rows = append(rows, []string{cli.Separator})
	rows = append(rows, []string{"TOTAL", "", "", cli.FormatMoney(res.TotalAllocated), ""})

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Goal", "Due", "Amount", "From savings", "Remaining"},
		Rows:    rows,
	}))
	if res.Leftover > 0 {
		fmt.Println(cli.RenderNote("Leftover: " + cli.FormatMoney(res.Leftover)))
	}
	fmt.Println()
	return nil
}
