package main

import (
	"fmt"
	"os"

	"github.com/crytic/phink/cmd"
	"github.com/crytic/phink/cmd/exitcodes"
)

func main() {
	// Run the root CLI command, which contains all underlying command logic and handles parsing/invocation.
	err := cmd.Execute()

	// Obtain the actual error and exit code from the error, if any.
	err, exitCode := exitcodes.GetInnerErrorAndExitCode(err)
	if err != nil {
		fmt.Println(err)
	}

	if exitCode != exitcodes.ExitCodeSuccess {
		os.Exit(exitCode)
	}
}
