//go:build !windows

package process

import (
	"os/exec"
	"syscall"
)

// configureProcAttr puts the child in its own process group and makes
// cancellation terminate the whole group, so a client that spawned helpers
// (ssh under scp) does not outlive the driver.
func configureProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid: true,
	}
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		// Negative PID signals the entire process group.
		if err := syscall.Kill(-cmd.Process.Pid, syscall.SIGTERM); err != nil {
			return cmd.Process.Kill()
		}
		return nil
	}
}
