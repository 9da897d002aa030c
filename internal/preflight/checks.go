// Package preflight provides startup validation checks.
package preflight

import (
	"fmt"
	"os/exec"
)

// Check represents the result of a single preflight check.
type Check struct {
	Name    string // Name of the check
	Passed  bool   // Whether the check passed
	Warning bool   // True if it's a warning (non-fatal)
	Message string // Additional context
}

// Result holds the results of all preflight checks.
type Result struct {
	Checks []Check
	Passed bool
}

// String returns a human-readable summary of the check.
func (c Check) String() string {
	status := "✓"
	if !c.Passed {
		status = "✗"
	} else if c.Warning {
		status = "⚠"
	}
	return fmt.Sprintf("  %s %s: %s", status, c.Name, c.Message)
}

// RunAll executes all preflight checks.
func RunAll(shell string) *Result {
	result := &Result{
		Checks: make([]Check, 0, 3),
		Passed: true,
	}

	// A usable shell is required: execute_bash_command cannot work
	// without one, and the empty-command contract depends on it.
	shellCheck := checkShell(shell)
	result.Checks = append(result.Checks, shellCheck)
	if !shellCheck.Passed {
		result.Passed = false
	}

	// ping is a warning: the tool reports its absence per call.
	result.Checks = append(result.Checks, checkPing())

	// FD headroom is a warning: probes and spawned commands each hold a
	// handful of descriptors.
	result.Checks = append(result.Checks, checkFileDescriptors())

	return result
}

// checkShell verifies the command shell resolves to an executable.
func checkShell(shell string) Check {
	path, err := exec.LookPath(shell)
	if err != nil {
		return Check{
			Name:    "shell",
			Passed:  false,
			Message: fmt.Sprintf("%q not found: %v", shell, err),
		}
	}
	return Check{
		Name:    "shell",
		Passed:  true,
		Message: path,
	}
}

// checkPing verifies the system ping binary is present.
func checkPing() Check {
	path, err := exec.LookPath("ping")
	if err != nil {
		return Check{
			Name:    "ping binary",
			Passed:  true,
			Warning: true,
			Message: "not found; ping_target will report an error per call",
		}
	}
	return Check{
		Name:    "ping binary",
		Passed:  true,
		Message: path,
	}
}
