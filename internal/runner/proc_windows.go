//go:build windows

package runner

import (
	"errors"
	"os"
	"os/exec"
	"syscall"
)

// Windows has no process-group signal delivery, so the ladder degrades to
// direct-child termination: the interrupt and terminate rungs both map to
// Kill on the shell process. Descendants spawned by the shell may outlive
// it; this reduced guarantee is a documented platform gap.

type signalValue = int

const (
	interruptSignal signalValue = iota
	terminateSignal
	killSignal
)

func groupSysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP}
}

func (r *Runner) signalGroup(cmd *exec.Cmd, sig signalValue) {
	cmd.Process.Kill()
}

func terminateSignalOS() os.Signal {
	return os.Kill
}

func exitCodeFromError(err error) (int, bool) {
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return 0, false
	}
	return exitErr.ExitCode(), true
}
