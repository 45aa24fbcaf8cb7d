package cmd

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/crytic/phink/cmd/exitcodes"
	"github.com/crytic/phink/config"
	"github.com/crytic/phink/environment"
	"github.com/crytic/phink/fuzzer"
	"github.com/crytic/phink/logging/colors"
	"github.com/crytic/phink/seedextract"
)

// fuzzCmd spawns the external coverage-guided driver against the harness for the given contract.
var fuzzCmd = &cobra.Command{
	Use:           "fuzz <contract>",
	Short:         "Spawn the external fuzzer against this contract's harness",
	Long:          `Instruments and builds the contract, prepares the allow-list/dictionary/corpus environment, then spawns cfg.cores independent AFL-family driver processes against it.`,
	Args:          cobra.ExactArgs(1),
	RunE:          cmdRunFuzz,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	addConfigFlag(fuzzCmd)
	rootCmd.AddCommand(fuzzCmd)
}

func cmdRunFuzz(cmd *cobra.Command, args []string) error {
	projectConfig, configDir, err := loadProjectConfig(cmd)
	if err != nil {
		cmdLogger.Error("Failed to load project configuration", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeCampaignError)
	}

	if err := os.Chdir(configDir); err != nil {
		cmdLogger.Error("Failed to change to config directory", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeCampaignError)
	}

	// prepareContract builds and instantiates the contract once here, purely to fail fast on a malformed
	// constructor or missing artefact before cores worker processes are spawned; the external driver does its
	// own instantiation per-process once it starts.
	prepared, err := prepareContract(args[0], &projectConfig.Fuzzing)
	if err != nil {
		cmdLogger.Error("Failed to prepare contract", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeCampaignError)
	}

	files := config.NewPhinkFiles(projectConfig.Fuzzing.FuzzOutput)
	if err := environment.BuildEnv(prepared.db, &projectConfig.Fuzzing, files); err != nil {
		cmdLogger.Error("Failed to build the fuzzer environment", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeCampaignError)
	}

	if projectConfig.Fuzzing.GenerateSeeds {
		extractor := seedextract.NewExtractor(args[0])
		result, err := extractor.Run(projectConfig.Fuzzing.InstrumentedContractPath+"_seeds", files)
		if err != nil {
			cmdLogger.Warn("Seed extraction failed, continuing without the extra seeds: ", err)
		} else {
			cmdLogger.Info("Seed extraction wrote ", colors.Bold, result.SeedsWritten, colors.Reset, " corpus seed(s)")
		}
	}

	driver, err := buildDriver(projectConfig, projectConfig.Fuzzing.InstrumentedContractPath, files)
	if err != nil {
		cmdLogger.Error("Failed to build the fuzzer driver command", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeCampaignError)
	}

	f := fuzzer.NewFuzzer(&projectConfig.Fuzzing, driver)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	done := make(chan struct{})
	go func() {
		select {
		case <-sigCh:
			cmdLogger.Info("Interrupted, waiting for workers to stop...")
		case <-done:
		}
	}()

	results := f.Run()
	close(done)

	crashed := false
	for _, r := range results {
		if r.Err != nil {
			cmdLogger.Error("Worker ", colors.Bold, r.WorkerIndex, colors.Reset, " (run ", r.RunID, ") failed: ", r.Err)
			crashed = true
		}
	}
	if crashed {
		return exitcodes.NewErrorWithExitCode(nil, exitcodes.ExitCodeCrashFound)
	}
	return nil
}
