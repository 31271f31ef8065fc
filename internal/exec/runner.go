// Package exec runs external tools (git, package managers, provisioning
// commands) behind an interface that tests can stub.
package exec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/google/shlex"
)

// waitDelay bounds how long Run waits for output pipes to close after the
// process was killed. Package managers leave grandchildren holding them.
const waitDelay = 2 * time.Second

// ErrCommandNotFound is returned when the program is not on PATH.
var ErrCommandNotFound = errors.New("command not found")

// RunOpts holds optional parameters for a command.
type RunOpts struct {
	// Dir is the working directory. Empty uses the current directory.
	Dir string

	// Env is overlaid on the current environment.
	Env map[string]string

	// Stdout and Stderr, when set, receive output as it is produced in
	// addition to the captured copy in Result.
	Stdout io.Writer
	Stderr io.Writer
}

// Result holds the outcome of a command that started.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Success reports whether the command exited zero.
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// Runner runs external commands.
//
// Run returns a Result with ExitCode set whenever the process ran, including
// non-zero exits. An error is returned only when the process could not be
// run: the program is missing, the context was canceled, or I/O failed.
type Runner interface {
	Run(ctx context.Context, name string, args []string, opts RunOpts) (Result, error)
}

// OSRunner runs commands with os/exec.
type OSRunner struct{}

// NewOSRunner returns the production Runner.
func NewOSRunner() *OSRunner {
	return &OSRunner{}
}

// Run executes name with args and captures its output.
func (r *OSRunner) Run(ctx context.Context, name string, args []string, opts RunOpts) (Result, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %s", ErrCommandNotFound, name)
	}

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Dir = opts.Dir
	cmd.WaitDelay = waitDelay
	killProcessGroup(cmd)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = tee(&stdout, opts.Stdout)
	cmd.Stderr = tee(&stderr, opts.Stderr)

	if len(opts.Env) > 0 {
		cmd.Env = cmd.Environ()
		for k, v := range opts.Env {
			cmd.Env = append(cmd.Env, k+"="+v)
		}
	}

	err = cmd.Run()
	result := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return result, ctxErr
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return result, fmt.Errorf("%s: %w", CommandLine(name, args), err)
	}

	return result, nil
}

func tee(buf *bytes.Buffer, w io.Writer) io.Writer {
	if w == nil {
		return buf
	}
	return io.MultiWriter(buf, w)
}

// CommandLine renders a command for logs and error messages.
func CommandLine(name string, args []string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, " ")
}

// Split parses a configured command line into program and arguments using
// shell quoting rules.
func Split(line string) (string, []string, error) {
	fields, err := shlex.Split(line)
	if err != nil {
		return "", nil, fmt.Errorf("parsing command %q: %w", line, err)
	}
	if len(fields) == 0 {
		return "", nil, errors.New("empty command")
	}
	return fields[0], fields[1:], nil
}
