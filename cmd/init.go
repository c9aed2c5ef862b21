package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/SRI-AIC/valet-sub001/match"
)

// initCmd: valet init
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new matcher configuration file",
	Run: func(cmd *cobra.Command, args []string) {
		if err := initConfigurationFile(cfgFile); err != nil {
			logger.Error("Error initializing config file", zap.Error(err))
			return
		}
		path := cfgFile
		if path == "" {
			path = ".valet.yaml"
		}
		fmt.Printf("Configuration file created/updated: %s\n", path)
	},
}

func initConfigurationFile(configurationPath string) error {
	if configurationPath == "" {
		configurationPath = ".valet.yaml"
	}

	config := match.Config{
		Name:  "valet",
		Rules: []string{"rules.vrules"},
	}
	d, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	f, err := os.Create(configurationPath)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Write(d); err != nil {
		return err
	}
	return nil
}
