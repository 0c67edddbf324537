//go:build windows

// Package process reaps browser processes left behind after Chrome exits.
package process

import (
	"os/exec"
	"strconv"
)

// KillTree kills pid and its children with taskkill /T.
// Errors are ignored: the process may already be gone.
func KillTree(pid int) {
	if pid <= 0 {
		return
	}
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run() // #nosec G204 -- pid is an int
}
