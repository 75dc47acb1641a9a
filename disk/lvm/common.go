package lvm

import (
	"bytes"
	"context"
	"github.com/go-cmd/cmd"
	"github.com/pkg/errors"
	"io"
	"os/exec"
	"strings"
	"time"
)

// Result is what an lvm invocation left behind.
type Result struct {
	Exit   int
	Stdout string
	Stderr string
}

// Runner starts a program with a fixed argument list and waits for it.
// A non-nil error means the program could not be run at all; a program that
// ran and failed reports it through Result.Exit.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (Result, error)
}

// RunnerFunc adapts a function to Runner.
type RunnerFunc func(ctx context.Context, name string, args ...string) (Result, error)

func (f RunnerFunc) Run(ctx context.Context, name string, args ...string) (Result, error) {
	return f(ctx, name, args...)
}

// ExecRunner runs programs directly, never through a shell, and gives up
// after Timeout (0 means wait as long as ctx allows).
type ExecRunner struct {
	Timeout time.Duration
}

func (r ExecRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	// go-cmd splits output into lines; stderr must reach the caller verbatim.
	var stderr bytes.Buffer
	c := cmd.NewCmdOptions(cmd.Options{
		Buffered: true,
		BeforeExec: []func(*exec.Cmd){
			func(ec *exec.Cmd) {
				ec.Stderr = io.MultiWriter(ec.Stderr, &stderr)
			},
		},
	}, name, args...)
	statusChan := c.Start()

	var status cmd.Status
	select {
	case status = <-statusChan:
	case <-ctx.Done():
		_ = c.Stop()
		<-statusChan
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return Result{}, errors.Wrapf(ErrTimeout, "%s %s", name, strings.Join(args, " "))
		}
		return Result{}, errors.Wrapf(ctx.Err(), "%s %s", name, strings.Join(args, " "))
	}

	if status.Error != nil {
		return Result{}, errors.Wrapf(ErrLaunchFailed, "%s: %v", name, status.Error)
	}
	return Result{
		Exit:   status.Exit,
		Stdout: strings.Join(status.Stdout, "\n"),
		Stderr: stderr.String(),
	}, nil
}
