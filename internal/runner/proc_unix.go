//go:build !windows

package runner

import (
	"errors"
	"os"
	"os/exec"
	"syscall"
)

// signalValue is the platform signal type used by the escalation ladder.
type signalValue = syscall.Signal

const (
	interruptSignal signalValue = syscall.SIGINT
	terminateSignal signalValue = syscall.SIGTERM
	killSignal      signalValue = syscall.SIGKILL
)

// groupSysProcAttr makes the spawned shell the leader of a new process
// group. Without this, signals would reach only the shell itself, leaving
// any children it spawned orphaned and running.
func groupSysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setpgid: true}
}

// signalGroup delivers sig to the whole process group, falling back to the
// direct child if the group id cannot be read.
func (r *Runner) signalGroup(cmd *exec.Cmd, sig signalValue) {
	pgid, err := syscall.Getpgid(cmd.Process.Pid)
	if err == nil {
		syscall.Kill(-pgid, sig)
		return
	}
	cmd.Process.Signal(sig)
}

func terminateSignalOS() os.Signal {
	return syscall.SIGTERM
}

// exitCodeFromError extracts an exit code from a Wait error. A signal
// death is reported shell-style as 128 + signal number.
func exitCodeFromError(err error) (int, bool) {
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return 0, false
	}
	if status, ok := exitErr.Sys().(syscall.WaitStatus); ok {
		if status.Signaled() {
			return 128 + int(status.Signal()), true
		}
		return status.ExitStatus(), true
	}
	return exitErr.ExitCode(), true
}
