package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmynk/fundplan/internal/cli"
	"github.com/mmynk/fundplan/internal/config"
)

var flagInit bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagInit, "init", false, "Write the effective configuration to the config file")
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	if flagInit {
		if err := config.Save(cfg); err != nil {
			return err
		}
		fmt.Printf("  Wrote %s\n", config.Path())
		return nil
	}

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [Server]")
	fmt.Printf("    Port:          %d\n", cfg.Server.Port)
	fmt.Printf("    Database:      %s\n", cfg.Server.DBPath)
	fmt.Printf("    Plan cache:    %v\n", cfg.Server.CacheEnabled)
	fmt.Printf("    Cache TTL:     %dh\n", cfg.Server.CacheTTLHours)
	fmt.Println()

	fmt.Println("  [Planner]")
	fmt.Printf("    Default style: %s\n", cfg.Planner.DefaultStyle)
	if cfg.Planner.DefaultBudget > 0 {
		fmt.Printf("    Budget:        %s\n", cli.FormatMoney(cfg.Planner.DefaultBudget))
	} else {
		fmt.Println("    Budget:        not set")
	}
	fmt.Printf("    Conservative:  %s\n", cli.FormatRate(cfg.Planner.Risk.Conservative))
	fmt.Printf("    Balanced:      %s\n", cli.FormatRate(cfg.Planner.Risk.Balanced))
	fmt.Printf("    Growth:        %s\n", cli.FormatRate(cfg.Planner.Risk.Growth))
	fmt.Println()

	fmt.Println("  [Log]")
	fmt.Printf("    Level:         %s\n", cfg.Log.Level)
	fmt.Printf("    Format:        %s\n", cfg.Log.Format)
	return nil
}
