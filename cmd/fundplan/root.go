package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"connectrpc.com/connect"
	"github.com/spf13/cobra"

	"github.com/mmynk/fundplan/internal/config"
	"github.com/mmynk/fundplan/internal/service"
	"github.com/mmynk/fundplan/pkg/logging"
)

var (
	flagServer  string
	flagNow     string
	flagVerbose bool
)

// cfg is loaded once before any command runs.
var cfg config.Config

var rootCmd = &cobra.Command{
	Use:           "fundplan",
	Short:         "Goal funding planner",
	Long:          "Simulate how a monthly savings budget funds a set of financial goals.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded

		// Service logs stay quiet in the CLI unless asked for.
		level := cfg.Log.Level
		if flagVerbose {
			level = "debug"
		} else if os.Getenv("LOG_LEVEL") == "" {
			level = "warn"
		}
		logging.SetupWith(logging.Options{Level: level, Format: cfg.Log.Format})
		return nil
	},
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "  Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagServer, "server", "", "Planner server URL (computes locally when empty)")
	rootCmd.PersistentFlags().StringVar(&flagNow, "now", "", "Plan as of this date (YYYY-MM-DD)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging")
}

// planner is implemented by both the in-process service and the Connect client.
type planner interface {
	RequiredPayment(context.Context, *connect.Request[service.RequiredPaymentRequest]) (*connect.Response[service.RequiredPaymentResponse], error)
	ApplySavings(context.Context, *connect.Request[service.ApplySavingsRequest]) (*connect.Response[service.ApplySavingsResponse], error)
	Allocate(context.Context, *connect.Request[service.AllocateRequest]) (*connect.Response[service.AllocateResponse], error)
}

func newPlanner() planner {
	if flagServer != "" {
		return service.NewPlannerServiceClient(&http.Client{Timeout: 30 * time.Second}, flagServer)
	}
	return service.NewPlannerService(service.WithRiskProfile(cfg.Planner.Risk))
}

// planTime returns the --now date, or the current time.
func planTime() (time.Time, error) {
	if flagNow == "" {
		return time.Now(), nil
	}
	t, err := time.Parse("2006-01-02", flagNow)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --now %q: %w", flagNow, err)
	}
	return t, nil
}
