package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// rulesCmd: valet rules -r file.vrules
var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the compiled rules and their matcher trees",
	Run: func(cmd *cobra.Command, args []string) {
		runner := newRunner()
		engine := runner.Engine()
		for _, name := range engine.Rules() {
			tree, _ := engine.RuleString(name)
			fmt.Printf("%s : %s\n", name, tree)
		}
	},
}
