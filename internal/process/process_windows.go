//go:build windows

package process

import (
	"os/exec"
	"syscall"
)

// configureProcAttr starts the child in a new process group. Windows has no
// group signal, so cancellation falls back to the default Process.Kill.
func configureProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP,
	}
}
