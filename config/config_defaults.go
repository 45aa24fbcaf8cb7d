package config

import "github.com/rs/zerolog"

// defaultDeployerAddress is the fixed all-ones 32-byte account used to upload and instantiate contracts when
// no deployer address is configured.
const defaultDeployerAddress = "0xffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff"

// defaultStorageDepositLimit mirrors the pallet's own conservative default.
const defaultStorageDepositLimit = "100000000000"

// defaultGasLimitRefTime and defaultGasLimitProofSize mirror the pallet's bare-call gas defaults: 10^11 ref-time
// and 3 MiB of proof size.
const (
	defaultGasLimitRefTime   = 100_000_000_000
	defaultGasLimitProofSize = 3 * 1024 * 1024
)

// GetDefaultProjectConfig obtains a default configuration for a campaign.
func GetDefaultProjectConfig() *ProjectConfig {
	return &ProjectConfig{
		Fuzzing: FuzzingConfig{
			Cores:                    1,
			UseHonggfuzz:             false,
			DeployerAddress:          defaultDeployerAddress,
			MaxMessagesPerExec:       4,
			ReportPath:               "output/coverage_report",
			FuzzOrigin:               false,
			DefaultGasLimitRefTime:   defaultGasLimitRefTime,
			DefaultGasLimitProofSize: defaultGasLimitProofSize,
			StorageDepositLimit:      defaultStorageDepositLimit,
			InstantiateInitialValue:  "",
			ConstructorPayload:       "",
			Verbose:                  true,
			InstrumentedContractPath: "/tmp/ink_fuzzed_1",
			FuzzOutput:               "output",
			ShowUI:                   true,
			CatchTrappedContract:     false,
			GenerateSeeds:            true,
		},
		Logging: LoggingConfig{
			Level:        zerolog.InfoLevel,
			LogDirectory: "",
			NoColor:      false,
		},
	}
}
