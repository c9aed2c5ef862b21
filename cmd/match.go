package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/SRI-AIC/valet-sub001/internal"
	"github.com/SRI-AIC/valet-sub001/internal/types"
	"github.com/SRI-AIC/valet-sub001/match"
)

var (
	ignoreRules     string
	matchJSONOutput bool
	outPath         string
)

var matchCmd = &cobra.Command{
	Use:   "match [paths...]",
	Short: "Match the compiled rules against text files",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths")
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		runner := newRunner()

		if ignoreRules != "" {
			rules := strings.Split(ignoreRules, ",")
			for _, rule := range rules {
				runner.Engine().IgnoreRule(strings.TrimSpace(rule))
			}
		}

		runMatchProcess(ctx, logger, runner, args, matchJSONOutput, outPath)
	},
}

func init() {
	matchCmd.Flags().StringVar(&ignoreRules, "ignore", "", "Comma-separated list of rules to ignore")
	matchCmd.Flags().BoolVar(&matchJSONOutput, "json", false, "Output matches in JSON format")
	matchCmd.Flags().StringVarP(&outPath, "output", "o", "", "Output path (when using JSON)")
}

// newRunner builds the runner shared by the match and watch subcommands.
func newRunner() *match.Runner {
	configuration := cfgFile
	if configuration == "" {
		if _, err := os.Stat(".valet.yaml"); err == nil {
			configuration = ".valet.yaml"
		}
	}
	runner, err := match.New(configuration, ruleFiles, logger)
	if err != nil {
		logger.Fatal("Failed to initialize match engine", zap.Error(err))
	}
	return runner
}

func runMatchProcess(ctx context.Context, logger *zap.Logger, runner *match.Runner, paths []string, isJSON bool, jsonOutput string) {
	matches, err := match.ProcessFiles(ctx, logger, runner, paths, match.ProcessFile)
	if err != nil {
		logger.Error("Error processing files", zap.Error(err))
		os.Exit(1)
	}

	printMatches(logger, matches, isJSON, jsonOutput)
}

func printMatches(logger *zap.Logger, matches []types.Match, isJSON bool, jsonOutput string) {
	matchesByFile := make(map[string][]types.Match)
	for _, m := range matches {
		matchesByFile[m.Filename] = append(matchesByFile[m.Filename], m)
	}

	sortedFiles := make([]string, 0, len(matchesByFile))
	for filename := range matchesByFile {
		sortedFiles = append(sortedFiles, filename)
	}
	sort.Strings(sortedFiles)

	if !isJSON {
		for _, filename := range sortedFiles {
			fileMatches := matchesByFile[filename]
			source, err := internal.ReadSourceText(filename)
			if err != nil {
				logger.Error("Error reading input file", zap.String("file", filename), zap.Error(err))
				continue
			}
			fmt.Println(internal.FormatMatches(fileMatches, source))
		}
		return
	}

	d, err := json.Marshal(matchesByFile)
	if err != nil {
		logger.Error("Error marshalling matches to JSON", zap.Error(err))
		return
	}
	if jsonOutput == "" {
		fmt.Println(string(d))
		return
	}
	f, err := os.Create(jsonOutput)
	if err != nil {
		logger.Error("Error creating JSON output file", zap.Error(err))
		return
	}
	defer f.Close()
	if _, err := f.Write(d); err != nil {
		logger.Error("Error writing JSON output file", zap.Error(err))
	}
}
