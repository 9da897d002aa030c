//go:build windows

package preflight

// Windows has no RLIMIT_NOFILE; handle limits are per-process and far
// above what this server opens, so the check passes unconditionally.
func checkFileDescriptors() Check {
	return Check{
		Name:    "file descriptors",
		Passed:  true,
		Message: "not limited on this platform",
	}
}
