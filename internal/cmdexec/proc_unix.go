//go:build !windows

package cmdexec

import (
	"errors"
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

func shellArgv(line string) (string, []string) {
	return "/bin/sh", []string{"-c", line}
}

// killProcessGroup starts the child in its own process group and makes
// context cancellation SIGKILL the whole group, so anything the command
// spawned dies with it.
func killProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		err := unix.Kill(-cmd.Process.Pid, unix.SIGKILL)
		if errors.Is(err, unix.ESRCH) {
			return os.ErrProcessDone
		}
		return err
	}
}
