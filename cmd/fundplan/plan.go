package main

import (
	"context"
	"fmt"
	"time"

	"connectrpc.com/connect"
	"github.com/spf13/cobra"

	"github.com/mmynk/fundplan/internal/calculator"
	"github.com/mmynk/fundplan/internal/cli"
	"github.com/mmynk/fundplan/internal/models"
	"github.com/mmynk/fundplan/internal/planfile"
	"github.com/mmynk/fundplan/internal/service"
)

var (
	flagPlanFile string
	flagStyle    string
	flagBudget   float64
	flagMonths   int
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Simulate a plan file month by month",
	RunE:  runPlan,
}

func init() {
	planCmd.Flags().StringVarP(&flagPlanFile, "file", "f", "", "YAML plan file")
	planCmd.Flags().StringVarP(&flagStyle, "style", "s", "", "Funding style: waterfall, parallel or hybrid")
	planCmd.Flags().Float64VarP(&flagBudget, "budget", "b", 0, "Monthly budget (overrides the plan file)")
	planCmd.Flags().IntVarP(&flagMonths, "months", "m", 0, "Show the first N months of allocations")
	_ = planCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(planCmd)
}

func runPlan(_ *cobra.Command, _ []string) error {
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

	budget := firstPositive(flagBudget, plan.Budget, cfg.Planner.DefaultBudget)
	style := firstNonEmpty(flagStyle, plan.Style, cfg.Planner.DefaultStyle)

	resp, err := newPlanner().Allocate(context.Background(), connect.NewRequest(&service.AllocateRequest{
		Goals:   goals,
		Budget:  budget,
		Style:   style,
		LumpSum: plan.LumpSum,
		Now:     now,
	}))
	if err != nil {
		return err
	}
	alloc := resp.Msg.Allocation

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("FUNDING PLAN  %s  %s/month", resp.Msg.Style, cli.FormatMoney(budget))))
	fmt.Println()

	if len(alloc.Results) == 0 {
		fmt.Println("  Nothing to fund.")
		return nil
	}

	rows := make([][]string, 0, len(alloc.Results)+2)
	totalPMT := 0.0
	for _, r := range alloc.Results {
		totalPMT += r.InitialPMT
		rows = append(rows, []string{
			r.Goal.Name,
			cli.FormatMoney(r.Goal.FundingTarget()),
			cli.FormatMonth(r.Goal.TargetDate),
			cli.FormatMoney(r.InitialPMT),
			cli.FormatMoney(r.RequiredPMT),
			cli.FormatMoney(r.FinalBalance),
			cli.RenderStatus(r.RemainingGap),
			cli.RenderSparkline(r.Balances),
		})
	}
	rows = append(rows, []string{cli.Separator})
	rows = append(rows, []string{"TOTAL", "", "", cli.FormatMoney(totalPMT), "", "", "", ""})

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Goals",
		Headers: []string{"Goal", "Target", "Due", "Initial PMT", "Avg PMT", "Final", "Status", "Balance"},
		Rows:    rows,
	}))

	if resp.Msg.Savings != nil {
		fmt.Println(cli.RenderNote(fmt.Sprintf("Lump sum applied: %s, leftover %s seeded into balances",
			cli.FormatMoney(resp.Msg.Savings.TotalAllocated), cli.FormatMoney(resp.Msg.Savings.Leftover))))
	}
	if alloc.BudgetExceeded {
		fmt.Println(cli.RenderWarning(fmt.Sprintf("Budget is %s short of the %s the goals need each month",
			cli.FormatMoney(alloc.Shortfall), cli.FormatMoney(alloc.TotalDemand))))
	}
	if resp.Msg.Cached {
		fmt.Println(cli.RenderNote("Served from the plan cache"))
	}

	if flagMonths > 0 {
		fmt.Println()
		fmt.Print(renderMonths(alloc, now, flagMonths))
	}
	fmt.Println()
	return nil
}

// renderMonths renders the per-month allocation of every goal.
func renderMonths(alloc models.Allocation, now time.Time, n int) string {
	if n > alloc.HorizonMonths {
		n = alloc.HorizonMonths
	}

	headers := []string{"Month"}
	for _, r := range alloc.Results {
		headers = append(headers, r.Goal.Name)
	}
	headers = append(headers, "Total")

	rows := make([][]string, 0, n)
	for t := 0; t < n; t++ {
		row := []string{cli.FormatMonth(calculator.MonthStart(now, t))}
		total := 0.0
		for _, r := range alloc.Results {
			row = append(row, cli.FormatMoney(r.Allocations[t]))
			total += r.Allocations[t]
		}
		row = append(row, cli.FormatMoney(total))
		rows = append(rows, row)
	}

	return cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("First %d months", n),
		Headers: headers,
		Rows:    rows,
	})
}

func firstPositive(vals ...float64) float64 {
	for _, v := range vals {
		if v > 0 {
			return v
		}
	}
	return 0
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
