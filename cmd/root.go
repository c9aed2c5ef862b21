package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgFile   string
	ruleFiles []string
	timeout   time.Duration

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:              "valet [paths...]",
	Short:            "valet - rule-based matching over annotated text",
	TraverseChildren: true, // Prioritize subcommands
	Run: func(cmd *cobra.Command, args []string) {
		// no subcommand
		if len(args) == 0 {
			_ = cmd.Help()
			return
		}
		// Format: valet [path1 path2 ...] => behaves like the match subcommand
		matchCmd.Run(matchCmd, args)
	},
}

func Execute() error {
	defer logger.Sync()
	return rootCmd.Execute()
}

func init() {
	logger, _ = zap.NewProduction()

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Configuration file (default .valet.yaml when present)")
	rootCmd.PersistentFlags().StringSliceVarP(&ruleFiles, "rules", "r", nil, "Rule files to compile")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Minute, "Timeout for batch matching")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(watchCmd)
}
