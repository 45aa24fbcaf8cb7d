package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/crytic/phink/config"
	"github.com/crytic/phink/logging/colors"
)

// addConfigFlag registers the --config flag shared by every subcommand that resolves a project configuration.
func addConfigFlag(cmd *cobra.Command) {
	cmd.Flags().String("config", "",
		fmt.Sprintf("path to config file (default: %s in the working directory)", DefaultProjectConfigFilename))
}

// loadProjectConfig resolves the project configuration the same way every subcommand does:
// #1: If --config was used, read that file. If it doesn't exist, throw an error.
// #2: If --config was not used, look for DefaultProjectConfigFilename in the working directory and read it.
// #3: If neither was found, fall back to the built-in default configuration.
// It returns the resolved, validated config and the directory a caller should chdir into before acting on any
// of its relative paths.
func loadProjectConfig(cmd *cobra.Command) (*config.ProjectConfig, string, error) {
	configFlagUsed := cmd.Flags().Changed("config")
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, "", err
	}

	if !configFlagUsed {
		workingDirectory, err := os.Getwd()
		if err != nil {
			return nil, "", err
		}
		configPath = filepath.Join(workingDirectory, DefaultProjectConfigFilename)
	}

	_, existenceError := os.Stat(configPath)

	var projectConfig *config.ProjectConfig
	switch {
	case existenceError == nil:
		cmdLogger.Info("Reading the configuration file at: ", colors.Bold, configPath, colors.Reset)
		projectConfig, err = config.ReadProjectConfigFromFile(configPath)
		if err != nil {
			return nil, "", err
		}
	case configFlagUsed:
		return nil, "", existenceError
	default:
		cmdLogger.Warn(fmt.Sprintf("unable to find a configuration file at %v, using the default project configuration", configPath))
		projectConfig = config.GetDefaultProjectConfig()
	}

	if err := projectConfig.Validate(); err != nil {
		return nil, "", err
	}

	return projectConfig, filepath.Dir(configPath), nil
}
