package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/crytic/phink/cmd/exitcodes"
	"github.com/crytic/phink/config"
)

// harnessCoverCmd runs the external driver's cover pass (`cargo ziggy cover`) over the existing corpus, the
// source of truth traces.cov is built from.
var harnessCoverCmd = &cobra.Command{
	Use:           "harness-cover <contract>",
	Short:         "Run the fuzzer's cover pass over the harness",
	Long:          `Instruments and builds the contract, then runs the external driver's coverage pass over the existing corpus, appending the traces it produces to traces.cov.`,
	Args:          cobra.ExactArgs(1),
	RunE:          cmdRunHarnessCover,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	addConfigFlag(harnessCoverCmd)
	rootCmd.AddCommand(harnessCoverCmd)
}

func cmdRunHarnessCover(cmd *cobra.Command, args []string) error {
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
	driverCmd, err := ziggyCommand(projectConfig, projectConfig.Fuzzing.InstrumentedContractPath, files, "cover")
	if err != nil {
		cmdLogger.Error("Failed to build the cover command", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeCampaignError)
	}
	driverCmd.Stdout = os.Stdout
	driverCmd.Stderr = os.Stderr

	if err := driverCmd.Run(); err != nil {
		cmdLogger.Error("Cover pass failed", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeCampaignError)
	}

	cmdLogger.Info("Cover pass complete; run `phink coverage` to render the accumulated report")
	return nil
}
