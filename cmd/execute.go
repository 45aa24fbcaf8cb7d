package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/crytic/phink/cmd/exitcodes"
	"github.com/crytic/phink/config"
	"github.com/crytic/phink/fuzzer"
	"github.com/crytic/phink/input"
)

// executeCmd runs the harness once on a stored seed file and prints the resulting call sequence and
// diagnostics, the Go analogue of the teacher's replay command.
var executeCmd = &cobra.Command{
	Use:           "execute <seed> <contract>",
	Short:         "Run the harness once on a seed file and print diagnostics",
	Long:          `Instruments and builds the contract, decodes the given seed file into a call sequence, runs it once against a fresh genesis clone, and prints the resulting messages, responses and coverage identifiers.`,
	Args:          cobra.ExactArgs(2),
	RunE:          cmdRunExecute,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	addConfigFlag(executeCmd)
	rootCmd.AddCommand(executeCmd)
}

func cmdRunExecute(cmd *cobra.Command, args []string) error {
	seedPath, contractPath := args[0], args[1]

	projectConfig, configDir, err := loadProjectConfig(cmd)
	if err != nil {
		cmdLogger.Error("Failed to load project configuration", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeCampaignError)
	}

	if err := os.Chdir(configDir); err != nil {
		cmdLogger.Error("Failed to change to config directory", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeCampaignError)
	}

	prepared, err := prepareContract(contractPath, &projectConfig.Fuzzing)
	if err != nil {
		cmdLogger.Error("Failed to prepare contract", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeCampaignError)
	}

	raw, err := os.ReadFile(seedPath)
	if err != nil {
		cmdLogger.Error("Failed to read seed file", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeCampaignError)
	}

	files := config.NewPhinkFiles(projectConfig.Fuzzing.FuzzOutput)
	harness := fuzzer.NewHarness(prepared.host, prepared.db, &projectConfig.Fuzzing, files)
	defer harness.Close()

	result := harness.Run(raw)
	decoded := input.ParseInput(raw, prepared.db, &projectConfig.Fuzzing)

	fmt.Println(fuzzer.FormatSequence(decoded.Messages, result.Responses))
	fmt.Printf("coverage identifiers hit: %v\n", result.CoverageID)

	if result.Crashed {
		return exitcodes.NewErrorWithExitCode(nil, exitcodes.ExitCodeCrashFound)
	}
	return nil
}
