package instrumenter

import (
	"os/exec"

	"github.com/pkg/errors"
)

// Build invokes `cargo contract build --features=phink` against the contract at contractPath, the same way
// the teacher's platform generators shell out to the underlying build tool and fold stderr into the returned
// error. A non-zero exit wraps InstrumentationBuildFailed with the subprocess's combined output attached.
func Build(contractPath string) error {
	cmd := exec.Command("cargo", "contract", "build", "--features=phink")
	cmd.Dir = contractPath

	out, err := cmd.CombinedOutput()
	if err != nil {
		return errors.Wrapf(InstrumentationBuildFailed, "%s: %s", err, string(out))
	}
	return nil
}
