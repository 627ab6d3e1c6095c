package clone

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"repo-sweep/internal/config"
)

// Runner spawns the external checkout executable. The four strategies are
// interchangeable; they differ only in where the child's output goes and how
// the command line reaches the kernel.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// NewRunner maps a configured strategy name to its Runner.
// Unknown names fall back to inherit; config validation rejects them first.
func NewRunner(strategy string) Runner {
	switch strategy {
	case config.RunnerCaptured:
		return CapturedRunner{}
	case config.RunnerQuiet:
		return QuietRunner{}
	case config.RunnerShell:
		return ShellRunner{}
	default:
		return InheritRunner{}
	}
}

// InheritRunner passes the parent's stdout/stderr straight to the child, so
// the checkout's own progress output reaches the operator
type InheritRunner struct{}

func (InheritRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// CapturedRunner collects the child's combined output and surfaces it in the
// error, for callers that log rather than stream
type CapturedRunner struct{}

func (CapturedRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	if err := cmd.Run(); err != nil {
		out := strings.TrimSpace(buf.String())
		if out != "" {
			return fmt.Errorf("%w: %s", err, out)
		}
		return err
	}
	return nil
}

// QuietRunner discards all child output
type QuietRunner struct{}

func (QuietRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	return cmd.Run()
}

// ShellRunner hands the command line to sh -c, for environments that rely on
// shell-resolved executables or wrappers
type ShellRunner struct{}

func (ShellRunner) Run(ctx context.Context, name string, args ...string) error {
	line := shellQuote(name)
	for _, a := range args {
		line += " " + shellQuote(a)
	}
	cmd := exec.CommandContext(ctx, "sh", "-c", line)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// shellQuote single-quotes one argument for sh -c
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
