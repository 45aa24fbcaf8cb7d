package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/crytic/phink/cmd/exitcodes"
	"github.com/crytic/phink/config"
)

// runCmd replays the existing corpus once through the external driver's single-shot runner (`cargo ziggy
// run`), without fuzzing: useful as a regression check after a contract change.
var runCmd = &cobra.Command{
	Use:           "run <contract>",
	Short:         "Single-shot replay of the existing corpus against this contract",
	Long:          `Instruments and builds the contract, then replays the current corpus against it once via the external driver's run mode, without generating new inputs.`,
	Args:          cobra.ExactArgs(1),
	RunE:          cmdRunRun,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	addConfigFlag(runCmd)
	rootCmd.AddCommand(runCmd)
}

func cmdRunRun(cmd *cobra.Command, args []string) error {
	projectConfig, configDir, err := loadProjectConfig(cmd)
	if err != nil {
		cmdLogger.Error("Failed to load project configuration", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeCampaignError)
	}

	if err := os.Chdir(configDir); err != nil {
		cmdLogger.Error("Failed to change to config directory", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeCampaignError)
	}

	if _, err := prepareContract(args[0], &projectConfig.Fuzzing); err != nil {
		cmdLogger.Error("Failed to prepare contract", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeCampaignError)
	}

	files := config.NewPhinkFiles(projectConfig.Fuzzing.FuzzOutput)
	driverCmd, err := ziggyCommand(projectConfig, projectConfig.Fuzzing.InstrumentedContractPath, files, "run")
	if err != nil {
		cmdLogger.Error("Failed to build the replay command", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeCampaignError)
	}
	driverCmd.Stdout = os.Stdout
	driverCmd.Stderr = os.Stderr

	if err := driverCmd.Run(); err != nil {
		cmdLogger.Error("Replay run failed", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeCrashFound)
	}
	return nil
}
