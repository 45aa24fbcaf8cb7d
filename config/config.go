package config

import (
	"encoding/hex"
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/crytic/phink/logging"
)

// ProjectConfig describes the full on-disk, JSON-serialized configuration for a fuzzing campaign: everything
// the harness, the environment builder, and the CLI need in order to drive a contract through its lifecycle.
type ProjectConfig struct {
	// Fuzzing describes the configuration used by the harness and campaign orchestration.
	Fuzzing FuzzingConfig `json:"fuzzing"`

	// Logging describes the configuration used for logging to file and console.
	Logging LoggingConfig `json:"logging"`
}

// FuzzingConfig describes the configuration options consumed by fuzzer.Harness and fuzzer.Fuzzer.
type FuzzingConfig struct {
	// Cores describes the number of parallel fuzzer processes the external driver should start.
	Cores int `json:"cores"`

	// UseHonggfuzz indicates whether Honggfuzz should run alongside the AFL-family driver.
	UseHonggfuzz bool `json:"useHonggfuzz"`

	// DeployerAddress is the 32-byte account (hex-encoded) used to upload and instantiate the target contract.
	DeployerAddress string `json:"deployerAddress"`

	// MaxMessagesPerExec is the hard cap on the number of messages parsed out of one fuzzer input.
	MaxMessagesPerExec int `json:"maxMessagesPerExec"`

	// ReportPath is the destination directory for the rendered HTML coverage report.
	ReportPath string `json:"reportPath"`

	// FuzzOrigin indicates whether one input byte per message frame should be consumed as the calling origin.
	FuzzOrigin bool `json:"fuzzOrigin"`

	// DefaultGasLimitRefTime is the ref-time component of the gas limit applied to every call.
	DefaultGasLimitRefTime uint64 `json:"defaultGasLimitRefTime"`

	// DefaultGasLimitProofSize is the proof-size component of the gas limit applied to every call.
	DefaultGasLimitProofSize uint64 `json:"defaultGasLimitProofSize"`

	// StorageDepositLimit is a decimal string parsed as an unsigned 128-bit integer.
	StorageDepositLimit string `json:"storageDepositLimit"`

	// InstantiateInitialValue is a decimal string parsed as an unsigned 128-bit integer. Empty means "none".
	InstantiateInitialValue string `json:"instantiateInitialValue"`

	// ConstructorPayload is a hex string carrying the full SCALE-encoded constructor input. Empty means "derive
	// from metadata".
	ConstructorPayload string `json:"constructorPayload"`

	// Verbose enables chatty diagnostics.
	Verbose bool `json:"verbose"`

	// InstrumentedContractPath is the fork destination used by the instrumenter.
	InstrumentedContractPath string `json:"instrumentedContractPath"`

	// FuzzOutput is the root directory for the PhinkFiles layout.
	FuzzOutput string `json:"fuzzOutput"`

	// ShowUI selects the terminal UI over the external fuzzer's native display.
	ShowUI bool `json:"showUi"`

	// CatchTrappedContract treats a contract trap as a bug when true.
	CatchTrappedContract bool `json:"catchTrappedContract"`

	// GenerateSeeds runs the seed extractor at campaign start when true.
	GenerateSeeds bool `json:"generateSeeds"`
}

// LoggingConfig describes the configuration options for logging to console and file.
type LoggingConfig struct {
	// Level describes the minimum severity of logs that will be emitted.
	Level zerolog.Level `json:"level"`

	// LogDirectory, if non-empty, enables file logging to the named directory.
	LogDirectory string `json:"logDirectory"`

	// NoColor disables colored console formatting.
	NoColor bool `json:"noColor"`
}

// StorageDepositLimitDecimal parses FuzzingConfig.StorageDepositLimit. Returns the zero decimal if unset.
func (f *FuzzingConfig) StorageDepositLimitDecimal() (decimal.Decimal, error) {
	if f.StorageDepositLimit == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(f.StorageDepositLimit)
}

// InstantiateInitialValueDecimal parses FuzzingConfig.InstantiateInitialValue. Returns the zero decimal if unset.
func (f *FuzzingConfig) InstantiateInitialValueDecimal() (decimal.Decimal, error) {
	if f.InstantiateInitialValue == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(f.InstantiateInitialValue)
}

// ConstructorPayloadBytes decodes FuzzingConfig.ConstructorPayload from hex. Returns nil, nil if unset.
func (f *FuzzingConfig) ConstructorPayloadBytes() ([]byte, error) {
	if f.ConstructorPayload == "" {
		return nil, nil
	}
	return hex.DecodeString(f.ConstructorPayload)
}

// ReadProjectConfigFromFile reads a JSON-serialized ProjectConfig from a provided file path, starting from
// GetDefaultProjectConfig so that unset fields keep their defaults.
func ReadProjectConfigFromFile(path string) (*ProjectConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading project configuration file")
	}

	projectConfig := GetDefaultProjectConfig()
	if err := json.Unmarshal(b, projectConfig); err != nil {
		return nil, errors.Wrap(err, "parsing project configuration file")
	}

	return projectConfig, nil
}

// WriteToFile writes the ProjectConfig to a provided file path in a JSON-serialized format.
func (p *ProjectConfig) WriteToFile(path string) error {
	b, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return errors.Wrap(err, "marshaling project configuration")
	}

	if err := os.WriteFile(path, b, 0644); err != nil {
		return errors.Wrap(err, "writing project configuration file")
	}

	return nil
}

// Validate validates that the ProjectConfig meets the constraints required to run a campaign.
// Returns an error if one occurs.
func (p *ProjectConfig) Validate() error {
	logger := logging.NewLogger(zerolog.Disabled, false)
	if logging.GlobalLogger != nil {
		logger = logging.GlobalLogger.NewSubLogger("module", "config")
	}

	if p.Fuzzing.Cores <= 0 {
		return errors.New("project configuration must specify a positive number of cores")
	}

	if p.Fuzzing.MaxMessagesPerExec <= 0 {
		return errors.New("project configuration must specify a positive max messages per execution")
	}

	if p.Fuzzing.DefaultGasLimitRefTime == 0 || p.Fuzzing.DefaultGasLimitProofSize == 0 {
		return errors.New("project configuration must specify a non-zero default gas limit")
	}

	if _, err := hex.DecodeString(trimHexPrefix(p.Fuzzing.DeployerAddress)); err != nil {
		return errors.Wrap(err, "project configuration must specify a well-formed deployer address")
	}

	if _, err := p.Fuzzing.StorageDepositLimitDecimal(); err != nil {
		return errors.Wrap(err, "project configuration must specify a well-formed storage deposit limit")
	}

	if _, err := p.Fuzzing.InstantiateInitialValueDecimal(); err != nil {
		return errors.Wrap(err, "project configuration must specify a well-formed instantiate initial value")
	}

	if _, err := p.Fuzzing.ConstructorPayloadBytes(); err != nil {
		return errors.Wrap(err, "project configuration must specify a well-formed constructor payload")
	}

	if p.Fuzzing.FuzzOutput == "" {
		return errors.New("project configuration must specify a fuzz output directory")
	}

	if p.Fuzzing.InstrumentedContractPath == "" {
		return errors.New("project configuration must specify an instrumented contract path")
	}

	level, err := zerolog.ParseLevel(p.Logging.Level.String())
	if err != nil || level == zerolog.FatalLevel {
		return errors.New("project configuration must specify a valid log level (trace, debug, info, warn, error, or panic)")
	}

	if p.Fuzzing.Cores == 1 {
		logger.Warn("running with a single core; coverage-guided fuzzing benefits from parallel processes")
	}

	return nil
}

// trimHexPrefix strips a leading "0x"/"0X" from a hex string, if present.
func trimHexPrefix(s string) string {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return s[2:]
	}
	return s
}
