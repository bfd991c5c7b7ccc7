package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arjun/coachfit/internal/llm"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect the configured LLM backend",
}

var llmProbeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Send a test request and report latency, usage, and cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		attempts, _ := cmd.Flags().GetInt("attempts")

		cfg := llm.ConfigFromEnv()
		if err := cfg.Validate(); err != nil {
			discovered, ok := llm.DiscoverConfig()
			if !ok {
				return err
			}
			cfg = discovered
		}
		// The probe is the one place retries are useful; a flaky backend
		// should still produce a verdict.
		cfg.Retry.MaxAttempts = attempts

		log := llm.NewRequestLog()
		provider, err := llm.NewProvider(ctx, cfg, log)
		if err != nil {
			return err
		}

		fmt.Printf("Provider:  %s\n", cfg.Provider)
		fmt.Printf("Model:     %s\n", provider.ModelID())

		_, genErr := provider.Generate(llm.WithPurpose(ctx, "probe"), llm.Request{
			Messages: []llm.Message{
				{Role: llm.RoleUser, Content: "Reply with the single word: ready"},
			},
			MaxTokens: 10,
		})

		entries := log.Entries()
		if len(entries) == 0 {
			return fmt.Errorf("probe recorded no request: %w", genErr)
		}

		fmt.Println(strings.Repeat("─", 48))
		for i, e := range entries {
			status := "✓"
			if !e.Success {
				status = "✗ " + e.ErrorMessage
			}
			fmt.Printf("Attempt %d: %dms, %d in / %d out  %s\n",
				i+1, e.LatencyMs, e.InputTokens, e.OutputTokens, status)
		}

		usage := log.TotalUsage()
		fmt.Println(strings.Repeat("─", 48))
		fmt.Printf("Tokens:    %d in / %d out\n", usage.InputTokens, usage.OutputTokens)
		if cost := llm.LookupCost(provider.ModelID()); cost != nil {
			fmt.Printf("Cost:      $%.6f\n", cost.Cost(usage.InputTokens, usage.OutputTokens))
		} else {
			fmt.Println("Cost:      unknown model, no pricing data")
		}

		if genErr != nil {
			return fmt.Errorf("probe failed: %w", genErr)
		}
		fmt.Println("Backend is ready.")
		return nil
	},
}

func init() {
	llmProbeCmd.Flags().IntP("attempts", "n", 3, "Retry attempts for the probe request")

	llmCmd.AddCommand(llmProbeCmd)
}
