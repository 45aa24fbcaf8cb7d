package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/crytic/phink/cmd/exitcodes"
	"github.com/crytic/phink/logging/colors"
)

// cleanCmd removes the instrumented-contract fork and the whole phink output directory, after confirmation.
var cleanCmd = &cobra.Command{
	Use:           "clean",
	Short:         "Remove prior instrumentation forks after confirmation",
	Long:          `Removes the configured instrumented-contract fork directory and the phink output directory (corpus, crashes, traces, logs), after an interactive confirmation.`,
	Args:          cobra.NoArgs,
	RunE:          cmdRunClean,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	addConfigFlag(cleanCmd)
	cleanCmd.Flags().Bool("yes", false, "skip the interactive confirmation prompt")
	rootCmd.AddCommand(cleanCmd)
}

func cmdRunClean(cmd *cobra.Command, args []string) error {
	projectConfig, configDir, err := loadProjectConfig(cmd)
	if err != nil {
		cmdLogger.Error("Failed to load project configuration", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeCampaignError)
	}

	if err := os.Chdir(configDir); err != nil {
		cmdLogger.Error("Failed to change to config directory", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeCampaignError)
	}

	skipConfirm, err := cmd.Flags().GetBool("yes")
	if err != nil {
		return err
	}

	forkPath := projectConfig.Fuzzing.InstrumentedContractPath
	outputPath := projectConfig.Fuzzing.FuzzOutput

	if !skipConfirm {
		fmt.Printf("This will remove %q and %q. Continue? [y/N] ", forkPath, outputPath)
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		if answer != "y\n" && answer != "Y\n" {
			cmdLogger.Info("Aborted, nothing removed")
			return nil
		}
	}

	if err := os.RemoveAll(forkPath); err != nil {
		cmdLogger.Error("Failed to remove instrumented contract fork", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeCampaignError)
	}
	if err := os.RemoveAll(forkPath + "_seeds"); err != nil {
		cmdLogger.Error("Failed to remove seed-extraction fork", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeCampaignError)
	}
	if err := os.RemoveAll(outputPath); err != nil {
		cmdLogger.Error("Failed to remove output directory", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeCampaignError)
	}

	cmdLogger.Info("Removed ", colors.Bold, forkPath, colors.Reset, " and ", colors.Bold, outputPath, colors.Reset)
	return nil
}
