// Package runner executes one-shot shell commands with a bounded runtime.
//
// A command is spawned as the leader of a new process group so that signals
// reach every descendant the shell creates. If the primary timeout elapses
// the runner walks an escalation ladder — interrupt, terminate, kill — with
// a bounded grace wait at each rung, and always returns a structured
// Outcome. It never returns an error and never panics past its boundary.
package runner

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

const (
	// DefaultTimeout bounds normal command execution.
	DefaultTimeout = 90 * time.Second

	// DefaultGrace bounds the wait after each escalation signal.
	DefaultGrace = 5 * time.Second

	// reapWait is the brief pause in the post-ladder safety net.
	reapWait = 250 * time.Millisecond
)

// Sentinel exit codes for abnormal server-side termination. A real exit
// code always wins when the process reports one; sentinels fill the gap
// when the process died from our signal instead.
const (
	ExitInterrupted = -99 // exited after the interrupt rung, no real code
	ExitTerminated  = -98 // exited after the terminate rung, no real code
	ExitKilled      = -97 // exited after the kill rung, no real code
	ExitFault       = -1  // empty input or internal fault
)

// Outcome is the terminal result of one command execution. The JSON keys
// are a wire contract: callers parse exactly stdout, stderr, returncode.
type Outcome struct {
	Stdout   string `json:"stdout"`
	Stderr   string `json:"stderr"`
	ExitCode int    `json:"returncode"`
}

// Callbacks contains optional hooks for runner events.
type Callbacks struct {
	// OnStart is called after the process group is spawned.
	OnStart func(pid int)

	// OnEscalate is called before each escalation signal is sent.
	OnEscalate func(signal string)

	// OnExit is called with the final exit code and total runtime.
	OnExit func(exitCode int, runtime time.Duration)
}

// Config holds configuration for creating a Runner.
type Config struct {
	Shell     string        // path to the shell, defaults to DefaultShell()
	Timeout   time.Duration // primary timeout, defaults to DefaultTimeout
	Grace     time.Duration // per-rung grace period, defaults to DefaultGrace
	Logger    *slog.Logger
	Callbacks Callbacks
}

// Runner executes shell commands one at a time. It holds no state across
// invocations; concurrent Run calls are independent.
type Runner struct {
	shell     string
	timeout   time.Duration
	grace     time.Duration
	logger    *slog.Logger
	callbacks Callbacks
}

// New creates a Runner with the given configuration.
func New(cfg Config) *Runner {
	shell := cfg.Shell
	if shell == "" {
		shell = DefaultShell()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	grace := cfg.Grace
	if grace <= 0 {
		grace = DefaultGrace
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		shell:     shell,
		timeout:   timeout,
		grace:     grace,
		logger:    logger,
		callbacks: cfg.Callbacks,
	}
}

// DefaultShell returns the shell used to interpret commands. Bash is
// preferred for parity with the tool's documented behavior; a POSIX sh is
// the fallback.
func DefaultShell() string {
	for _, candidate := range []string{"bash", "sh"} {
		if path, err := exec.LookPath(candidate); err == nil {
			return path
		}
	}
	return "/bin/sh"
}

// Run executes one command string and returns its Outcome. The command is
// interpreted by the shell, so pipes, redirection, and expansion work.
//
// Cancellation of ctx is treated exactly like primary-timeout expiry: the
// runner enters the escalation ladder rather than abandoning the process
// group, so the no-orphan guarantee holds on every exit path.
func (r *Runner) Run(ctx context.Context, command string) (outcome Outcome) {
	start := time.Now()

	// OnExit pairs with OnStart: callers balance counters (a running
	// gauge) across the two, so neither fires unless the spawn succeeded.
	started := false
	defer func() {
		if rec := recover(); rec != nil {
			outcome = faultOutcome(fmt.Sprintf("An unexpected server-side error occurred: %v", rec))
		}
		if started && r.callbacks.OnExit != nil {
			r.callbacks.OnExit(outcome.ExitCode, time.Since(start))
		}
	}()

	if strings.TrimSpace(command) == "" {
		r.logger.Warn("empty_command_rejected")
		return Outcome{
			Stderr:   "Error: Empty command string received.",
			ExitCode: ExitFault,
		}
	}

	cmd := exec.Command(r.shell, "-c", command)
	cmd.SysProcAttr = groupSysProcAttr()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		r.logger.Error("command_spawn_failed", "error", err)
		return faultOutcome(fmt.Sprintf("An unexpected server-side error occurred: %v", err))
	}

	started = true
	pid := cmd.Process.Pid
	r.logger.Debug("command_started", "pid", pid, "timeout", r.timeout.String())
	if r.callbacks.OnStart != nil {
		r.callbacks.OnStart(pid)
	}

	waitCh := make(chan error, 1)
	go func() { waitCh <- cmd.Wait() }()

	var exitCode int

	select {
	case err := <-waitCh:
		exitCode = realExitCode(cmd, err)
		r.logger.Debug("command_exited", "pid", pid, "exit_code", exitCode)
	case <-time.After(r.timeout):
		r.logger.Warn("command_timeout", "pid", pid, "timeout", r.timeout.String())
		exitCode = r.escalate(cmd, waitCh)
	case <-ctx.Done():
		r.logger.Warn("command_cancelled", "pid", pid, "error", ctx.Err())
		exitCode = r.escalate(cmd, waitCh)
	}

	r.reapStraggler(cmd)

	return Outcome{
		Stdout:   strings.TrimSpace(stdout.String()),
		Stderr:   strings.TrimSpace(stderr.String()),
		ExitCode: exitCode,
	}
}

// rung is one step of the escalation ladder.
type rung struct {
	name     string
	signal   signalValue
	sentinel int
}

// escalate walks the termination ladder against the whole process group.
// Each rung is attempted exactly once; the ladder only moves forward. The
// final kill wait is unbounded since SIGKILL cannot be blocked.
func (r *Runner) escalate(cmd *exec.Cmd, waitCh <-chan error) int {
	pid := cmd.Process.Pid

	for _, step := range []rung{
		{name: "interrupt", signal: interruptSignal, sentinel: ExitInterrupted},
		{name: "terminate", signal: terminateSignal, sentinel: ExitTerminated},
	} {
		r.logger.Warn("escalation_signal_sent", "pid", pid, "signal", step.name, "grace", r.grace.String())
		if r.callbacks.OnEscalate != nil {
			r.callbacks.OnEscalate(step.name)
		}
		r.signalGroup(cmd, step.signal)

		select {
		case <-waitCh:
			code := exitCodeOrSentinel(cmd, step.sentinel)
			r.logger.Info("command_exited_after_signal", "pid", pid, "signal", step.name, "exit_code", code)
			return code
		case <-time.After(r.grace):
			// Still running, move to the next rung.
		}
	}

	r.logger.Warn("escalation_signal_sent", "pid", pid, "signal", "kill")
	if r.callbacks.OnEscalate != nil {
		r.callbacks.OnEscalate("kill")
	}
	r.signalGroup(cmd, killSignal)

	// SIGKILL cannot be caught or ignored, so waiting for reclamation
	// here cannot block forever.
	<-waitCh
	code := exitCodeOrSentinel(cmd, ExitKilled)
	r.logger.Info("command_exited_after_signal", "pid", pid, "signal", "kill", "exit_code", code)
	return code
}

// reapStraggler is the post-ladder safety net. If the handle still reports
// a live process, send one direct (non-group) terminate, wait briefly, then
// a direct kill.
func (r *Runner) reapStraggler(cmd *exec.Cmd) {
	if cmd.Process == nil || cmd.ProcessState != nil {
		return
	}

	r.logger.Warn("straggler_detected", "pid", cmd.Process.Pid)
	cmd.Process.Signal(terminateSignalOS())
	time.Sleep(reapWait)
	cmd.Process.Kill()
}

// faultOutcome converts an internal fault into the terminal Outcome shape.
func faultOutcome(description string) Outcome {
	return Outcome{
		Stderr:   description,
		ExitCode: ExitFault,
	}
}

// realExitCode extracts the exit code after a normal (pre-timeout) exit.
// A signal death is reported shell-style as 128 + signal number.
func realExitCode(cmd *exec.Cmd, waitErr error) int {
	if waitErr == nil {
		return cmd.ProcessState.ExitCode()
	}
	if code, ok := exitCodeFromError(waitErr); ok {
		return code
	}
	// Wait failed for a reason other than a non-zero exit status. If the
	// process state was still collected, report it; otherwise fault.
	if cmd.ProcessState != nil {
		return cmd.ProcessState.ExitCode()
	}
	return ExitFault
}

// exitCodeOrSentinel extracts the exit code after an escalation signal.
// If the process exited on its own terms with a real code, that code is
// kept; a signal death yields the rung's sentinel.
func exitCodeOrSentinel(cmd *exec.Cmd, sentinel int) int {
	state := cmd.ProcessState
	if state == nil {
		return sentinel
	}
	if code := state.ExitCode(); code >= 0 {
		return code
	}
	return sentinel
}
