package main

import (
	"context"
	"fmt"

	"connectrpc.com/connect"
	"github.com/spf13/cobra"

	"github.com/mmynk/fundplan/internal/calculator"
	"github.com/mmynk/fundplan/internal/cli"
	"github.com/mmynk/fundplan/internal/models"
	"github.com/mmynk/fundplan/internal/service"
)

var (
	flagAmount    float64
	flagHorizon   int
	flagFrequency string
	flagPeriod    int
)

var pmtCmd = &cobra.Command{
	Use:   "pmt",
	Short: "Monthly payment needed to reach an amount",
	RunE:  runPMT,
}

func init() {
	pmtCmd.Flags().Float64VarP(&flagAmount, "amount", "a", 0, "Target amount")
	pmtCmd.Flags().IntVarP(&flagHorizon, "months", "m", 0, "Months until the target date")
	pmtCmd.Flags().StringVar(&flagFrequency, "frequency", "", "Payout frequency after the target date: once, monthly, quarterly, biannual, annual")
	pmtCmd.Flags().IntVar(&flagPeriod, "period", 0, "Payout period in years")
	_ = pmtCmd.MarkFlagRequired("amount")
	_ = pmtCmd.MarkFlagRequired("months")
	rootCmd.AddCommand(pmtCmd)
}

func runPMT(_ *cobra.Command, _ []string) error {
	if flagAmount <= 0 {
		return calculator.ErrInvalidAmount
	}
	phases := calculator.PhasesForHorizon(flagHorizon, cfg.Planner.Risk)

	resp, err := newPlanner().RequiredPayment(context.Background(), connect.NewRequest(&service.RequiredPaymentRequest{
		Amount:           flagAmount,
		ReturnPhases:     phases,
		HorizonMonths:    flagHorizon,
		PaymentFrequency: models.PaymentFrequency(flagFrequency),
		PaymentPeriod:    flagPeriod,
	}))
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Print(renderPhases(phases))
	fmt.Printf("  Monthly payment: %s for %s\n\n", cli.FormatMoney(resp.Msg.Payment), cli.FormatMonths(flagHorizon))
	return nil
}
