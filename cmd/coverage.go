package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/crytic/phink/cmd/exitcodes"
	"github.com/crytic/phink/config"
	"github.com/crytic/phink/coverage"
)

// coverageCmd renders a report from the coverage identifiers accumulated across the whole campaign in
// traces.cov.
var coverageCmd = &cobra.Command{
	Use:           "coverage <contract>",
	Short:         "Render a report from accumulated coverage traces",
	Long:          `Instruments and builds the contract (to recover its content-addressed coverage key), reads every trace accumulated in traces.cov, and prints a summary of identifiers hit.`,
	Args:          cobra.ExactArgs(1),
	RunE:          cmdRunCoverage,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	addConfigFlag(coverageCmd)
	rootCmd.AddCommand(coverageCmd)
}

func cmdRunCoverage(cmd *cobra.Command, args []string) error {
	projectConfig, configDir, err := loadProjectConfig(cmd)
	if err != nil {
		cmdLogger.Error("Failed to load project configuration", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeCampaignError)
	}

	if err := os.Chdir(configDir); err != nil {
		cmdLogger.Error("Failed to change to config directory", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeCampaignError)
	}

	prepared, err := prepareContract(args[0], &projectConfig.Fuzzing)
	if err != nil {
		cmdLogger.Error("Failed to prepare contract", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeCampaignError)
	}

	files := config.NewPhinkFiles(projectConfig.Fuzzing.FuzzOutput)
	traces, err := coverage.ReadTraces(files.Path(config.CoverageTracePath))
	if err != nil {
		cmdLogger.Error("Failed to read accumulated coverage traces", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeCampaignError)
	}

	cm := coverage.NewMap()
	codeHash := prepared.host.CodeHash()
	contractAddr := prepared.host.ContractAddress()
	for _, t := range traces {
		cm.Update(contractAddr, codeHash, coverage.Parse(t))
	}

	fmt.Println(coverage.Report(cm.GetContractCoverageMap(codeHash), coverage.DefaultRedirectBound))
	return nil
}
