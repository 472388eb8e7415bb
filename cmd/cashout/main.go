package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/cypherlabdev/cashout-simulator-service/internal/cache"
	"github.com/cypherlabdev/cashout-simulator-service/internal/config"
	"github.com/cypherlabdev/cashout-simulator-service/internal/report"
	"github.com/cypherlabdev/cashout-simulator-service/internal/service"
	"github.com/cypherlabdev/cashout-simulator-service/internal/slipfile"
	"github.com/cypherlabdev/cashout-simulator-service/pkg/combinations"
	"github.com/cypherlabdev/cashout-simulator-service/pkg/scenario"
)

var (
	configFile string
	verbose    bool

	offer      string
	sortRows   bool
	jsonOutput bool

	cfg    *config.Config
	logger zerolog.Logger
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log engine details to stderr")

	evaluateCmd.Flags().StringVar(&offer, "offer", "", "Cashout offer, overrides cashout_offer in the slip file")
	evaluateCmd.Flags().BoolVar(&sortRows, "sort", false, "Order scenarios by total return, highest first")
	evaluateCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the evaluation as JSON")

	rootCmd.AddCommand(evaluateCmd, betTypesCmd)
}

var rootCmd = &cobra.Command{
	Use:   "cashout",
	Short: "Simulate the outcomes of a partially settled betslip",
	Long: `Evaluates accumulator betslips with unsettled legs: every way the remaining
legs can finish, what each pays, and how a cashout offer compares.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		var err error
		cfg, err = config.LoadConfig(configFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		level := zerolog.WarnLevel
		if verbose {
			level = zerolog.DebugLevel
		}
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
			Level(level).
			With().Timestamp().Logger()
		return nil
	},
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate <slip.yaml>",
	Short: "Evaluate a betslip file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := slipfile.Load(args[0])
		if err != nil {
			return err
		}

		if offer != "" {
			amount, err := decimal.NewFromString(offer)
			if err != nil {
				return fmt.Errorf("invalid --offer %q: %w", offer, err)
			}
			req.CashoutOffer = amount
		}

		engine := scenario.NewEngine(cfg.Engine.ToEngineParams(), logger)
		memCache := cache.NewMemoryCache(cache.MemoryCacheConfig{TTL: cfg.MemoryCache.TTL}, logger)
		defer memCache.Close()

		svc := service.NewEvaluationService(engine, memCache, logger)
		eval, err := svc.Evaluate(context.Background(), req)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			if sortRows {
				sorted := *eval
				sorted.Scenarios = eval.SortedScenarios()
				eval = &sorted
			}
			encoder := json.NewEncoder(out)
			encoder.SetIndent("", "  ")
			return encoder.Encode(eval)
		}

		return report.Render(out, eval, report.Options{SortByTotal: sortRows})
	},
}

var betTypesCmd = &cobra.Command{
	Use:   "bet-types",
	Short: "List supported bet types",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return report.RenderBetTypes(cmd.OutOrStdout(), combinations.All())
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
