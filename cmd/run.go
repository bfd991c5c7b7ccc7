package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arjun/coachfit/internal/app"
	"github.com/arjun/coachfit/internal/llm"
)

// runApp builds the provider and launches the TUI. A missing or invalid
// provider configuration fails before the screen ever opens.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	requestLog := llm.NewRequestLog()
	provider, err := llm.NewProviderFromEnv(ctx, requestLog)
	if err != nil {
		return fmt.Errorf("LLM provider not configured: %w", err)
	}

	return app.Run(app.Options{
		Provider:   provider,
		RequestLog: requestLog,
	})
}
