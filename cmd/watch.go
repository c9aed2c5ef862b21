package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/SRI-AIC/valet-sub001/match"
)

// watchCmd: valet watch [paths...] -r file.vrules
// Re-runs the match process whenever a rule file is edited.
var watchCmd = &cobra.Command{
	Use:   "watch [paths...]",
	Short: "Re-run matching whenever a rule file changes",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths")
			os.Exit(1)
		}

		runner := newRunner()
		engine := runner.Engine()

		rerun := func() {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()
			matches, err := match.ProcessFiles(ctx, logger, runner, args, match.ProcessFile)
			if err != nil {
				logger.Error("Error processing files", zap.Error(err))
				return
			}
			printMatches(logger, matches, false, "")
		}

		rerun()
		engine.SetOnReload(rerun)
		if err := engine.StartWatching(); err != nil {
			logger.Fatal("Failed to watch rule files", zap.Error(err))
		}
		defer engine.StopWatching()

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
	},
}
