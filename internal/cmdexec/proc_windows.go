//go:build windows

package cmdexec

import "os/exec"

func shellArgv(line string) (string, []string) {
	return "cmd", []string{"/C", line}
}

// killProcessGroup keeps the default cancellation, which kills the child
// process only.
func killProcessGroup(cmd *exec.Cmd) {}
