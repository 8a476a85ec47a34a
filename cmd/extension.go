package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// Environment passed to extensions.
const (
	EnvConfigFile = "CLIENTBOOK_CONFIG"
	EnvLogLevel   = "CLIENTBOOK_LOG_LEVEL"
)

// ExtensionPrefix prefixes the name of extension executables.
const ExtensionPrefix = "cbk-"

// RunExtension attempts to find and execute an external cbk-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
func RunExtension(subcommand string, args []string) (bool, int) {
	name := ExtensionPrefix + subcommand
	lp, err := exec.LookPath(name)
	if err != nil {
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	// Global flags are passed as environment variables.
	cmd.Env = append(os.Environ(), EnvConfigFile+"="+*configFile)
	if *logLevel != "" {
		cmd.Env = append(cmd.Env, EnvLogLevel+"="+*logLevel)
	}

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return true, exitErr.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", name, err)
		return true, 1
	}
	return true, 0
}
