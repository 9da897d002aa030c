//go:build !windows

package preflight

import (
	"fmt"
	"syscall"
)

// minFileDescriptors is the soft-limit headroom wanted for concurrent tool
// invocations (sockets, pipes, spawned shells).
const minFileDescriptors = 256

// checkFileDescriptors verifies sufficient file descriptors are available.
func checkFileDescriptors() Check {
	var limit syscall.Rlimit
	if err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &limit); err != nil {
		return Check{
			Name:    "file descriptors",
			Passed:  true,
			Warning: true,
			Message: fmt.Sprintf("could not read limit: %v", err),
		}
	}

	actual := int(limit.Cur)
	if actual < minFileDescriptors {
		return Check{
			Name:    "file descriptors",
			Passed:  true,
			Warning: true,
			Message: fmt.Sprintf("%d available (want %d); raise ulimit -n under load", actual, minFileDescriptors),
		}
	}
	return Check{
		Name:    "file descriptors",
		Passed:  true,
		Message: fmt.Sprintf("%d available", actual),
	}
}
