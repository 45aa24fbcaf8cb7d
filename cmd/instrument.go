package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crytic/phink/cmd/exitcodes"
	"github.com/crytic/phink/instrumenter"
	"github.com/crytic/phink/logging/colors"
)

// instrumentCmd runs the coverage-instrumentation pass over a contract and builds the resulting artefacts.
var instrumentCmd = &cobra.Command{
	Use:           "instrument <contract>",
	Short:         "Instrument a contract's source and build the instrumented artefacts",
	Long:          `Forks the given ink! contract, injects a coverage marker before every statement of its Rust sources, patches its manifest, builds it, and reports the resulting .wasm/.json artefacts.`,
	Args:          cobra.ExactArgs(1),
	RunE:          cmdRunInstrument,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	addConfigFlag(instrumentCmd)
	rootCmd.AddCommand(instrumentCmd)
}

func cmdRunInstrument(cmd *cobra.Command, args []string) error {
	projectConfig, _, err := loadProjectConfig(cmd)
	if err != nil {
		cmdLogger.Error("Failed to load project configuration", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeCampaignError)
	}

	ins := instrumenter.NewInstrumenter()
	result, err := ins.Run(args[0], projectConfig.Fuzzing.InstrumentedContractPath)
	if err != nil {
		cmdLogger.Error("Failed to instrument contract", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeCampaignError)
	}

	cmdLogger.Info(
		"Instrumentation complete: ",
		colors.Bold, result.FilesChanged, colors.Reset, " file(s) changed, ",
		colors.Bold, result.StatementsMarked, colors.Reset, " coverage marker(s) inserted",
	)
	fmt.Println("fork:     ", result.ForkPath)
	fmt.Println("wasm:     ", result.WasmPath)
	fmt.Println("metadata: ", result.MetadataPath)

	return nil
}
