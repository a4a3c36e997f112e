// SPDX-License-Identifier: MPL-2.0

//go:build windows

package runner

import (
	"os/exec"
	"syscall"
)

func setCmdLine(c *exec.Cmd, cmdLine string) {
	if cmdLine == "" {
		return
	}
	c.SysProcAttr = &syscall.SysProcAttr{CmdLine: cmdLine}
}
