package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "coachfit",
	Short: "AI fitness coach in your terminal",
	Long:  "CoachFit — terminal fitness coach that builds a workout plan around your body metrics and talks you through it.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}
