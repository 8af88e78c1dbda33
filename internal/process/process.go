// Package process cleans up external processes started by mdpdf: the headless
// browser and the print spool command.
package process

import "os/exec"

// BindToContext makes cancellation of cmd's context kill the whole process
// group rather than only the direct child. Call before cmd.Start.
func BindToContext(cmd *exec.Cmd) {
	IsolateGroup(cmd)
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		KillProcessGroup(cmd.Process.Pid)
		return nil
	}
}
