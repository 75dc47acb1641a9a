package lvm_test

import (
	"context"
	"time"

	"github.com/pkg/errors"
	gc "gopkg.in/check.v1"

	"github.com/kisun-bit/lvmctl/disk/lvm"
)

type execSuite struct{}

var _ = gc.Suite(&execSuite{})

func (s *execSuite) TestRun(c *gc.C) {
	r, err := lvm.ExecRunner{Timeout: 10 * time.Second}.Run(context.Background(),
		"/bin/sh", "-c", "echo one; echo two; echo oops >&2; exit 3")
	c.Assert(err, gc.IsNil)
	c.Assert(r, gc.DeepEquals, lvm.Result{Exit: 3, Stdout: "one\ntwo", Stderr: "oops\n"})
}

func (s *execSuite) TestStderrVerbatim(c *gc.C) {
	script := `printf '  WARNING: a\r\n\n  Volume group "vg01" has insufficient free space.\n' >&2; exit 5`
	r, err := lvm.ExecRunner{Timeout: 10 * time.Second}.Run(context.Background(), "/bin/sh", "-c", script)
	c.Assert(err, gc.IsNil)
	c.Assert(r.Exit, gc.Equals, 5)
	c.Assert(r.Stderr, gc.Equals, "  WARNING: a\r\n\n  Volume group \"vg01\" has insufficient free space.\n")
}

func (s *execSuite) TestNoShell(c *gc.C) {
	r, err := lvm.ExecRunner{}.Run(context.Background(), "/bin/echo", "vg01; rm -rf /", "$HOME")
	c.Assert(err, gc.IsNil)
	c.Assert(r.Exit, gc.Equals, 0)
	c.Assert(r.Stdout, gc.Equals, "vg01; rm -rf / $HOME")
}

func (s *execSuite) TestLaunchFailed(c *gc.C) {
	_, err := lvm.ExecRunner{}.Run(context.Background(), "/nonexistent/lvm", "vgs")
	c.Assert(errors.Cause(err), gc.Equals, lvm.ErrLaunchFailed)
}

func (s *execSuite) TestTimeout(c *gc.C) {
	start := time.Now()
	_, err := lvm.ExecRunner{Timeout: 100 * time.Millisecond}.Run(context.Background(), "/bin/sleep", "10")
	c.Assert(errors.Cause(err), gc.Equals, lvm.ErrTimeout)
	c.Assert(time.Since(start) < 5*time.Second, gc.Equals, true)
}

func (s *execSuite) TestCancel(c *gc.C) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()
	_, err := lvm.ExecRunner{}.Run(ctx, "/bin/sleep", "10")
	c.Assert(errors.Cause(err), gc.Equals, context.Canceled)
}
