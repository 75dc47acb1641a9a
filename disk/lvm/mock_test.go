package lvm_test

import (
	"context"
	"strings"

	gc "gopkg.in/check.v1"

	"github.com/kisun-bit/lvmctl/disk/lvm"
)

// mockRunner plays back lvm invocations in the order they were expected.
type mockRunner struct {
	c        *gc.C
	commands []*mockCommand
}

type mockCommand struct {
	args   []string
	result lvm.Result
	err    error
}

func (m *mockRunner) expect(args ...string) *mockCommand {
	cmd := &mockCommand{args: args}
	m.commands = append(m.commands, cmd)
	return cmd
}

func (m *mockRunner) Run(ctx context.Context, name string, args ...string) (lvm.Result, error) {
	m.c.Assert(m.commands, gc.Not(gc.HasLen), 0, gc.Commentf("unexpected command: %s %s", name, strings.Join(args, " ")))
	cmd := m.commands[0]
	m.commands = m.commands[1:]
	m.c.Assert(name, gc.Equals, lvm.DefaultLVMPath)
	m.c.Assert(args, gc.DeepEquals, cmd.args)
	return cmd.result, cmd.err
}

func (m *mockRunner) assertDrained() {
	m.c.Assert(m.commands, gc.HasLen, 0)
}

func (cmd *mockCommand) respond(stdout string) {
	cmd.result = lvm.Result{Stdout: stdout}
}

func (cmd *mockCommand) fail(exit int, stderr string) {
	cmd.result = lvm.Result{Exit: exit, Stderr: stderr}
}

func (cmd *mockCommand) launchError(err error) {
	cmd.err = err
}
