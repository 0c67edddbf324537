//go:build !windows

// Package process reaps browser processes left behind after Chrome exits.
package process

import "syscall"

// KillTree kills pid and its children by signalling the process group.
// Errors are ignored: the process may already be gone.
func KillTree(pid int) {
	if pid <= 0 {
		return
	}
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
