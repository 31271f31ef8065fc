// Package postinit runs the best-effort steps that follow materialization:
// repository initialization, database provisioning, and dependency install.
// A failing step never undoes the project; the caller reports it and prints
// the manual command instead.
package postinit

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/kitforge/create-express/internal/exec"
	"github.com/kitforge/create-express/internal/output"
)

// DefaultProvisionCommand creates a claimable Neon database and writes its
// connection string to .env in the working directory.
const DefaultProvisionCommand = "npx -y neondb --yes"

const (
	installTimeout   = 10 * time.Minute
	provisionTimeout = 3 * time.Minute

	// stderrTail bounds how much tool output a StepError carries.
	stderrTail = 20
)

// Step names a post-setup step.
type Step string

const (
	StepGit       Step = "git"
	StepProvision Step = "provision"
	StepInstall   Step = "install"
)

// StepError reports a failed post-setup step together with the command the
// user can run by hand.
type StepError struct {
	Step    Step
	Command string
	Err     error

	// Output is the tail of the tool's stderr, if any.
	Output string
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s step failed (%s): %v", e.Step, e.Command, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Steps runs post-setup commands inside a freshly materialized project.
type Steps struct {
	Runner exec.Runner

	// Dir is the project directory.
	Dir string

	PackageManager   PackageManager
	ProvisionCommand string
}

// InitGit creates a git repository in Dir. It is skipped with a warning
// when git is not installed or Dir is already inside a work tree.
func (s *Steps) InitGit(ctx context.Context) error {
	log := output.StepLogger(string(StepGit))
	args := []string{"init", "--quiet"}

	inside, err := s.Runner.Run(ctx, "git", []string{"rev-parse", "--is-inside-work-tree"}, exec.RunOpts{Dir: s.Dir})
	if errors.Is(err, exec.ErrCommandNotFound) {
		log.Warn("git not found on PATH, skipping repository initialization")
		return nil
	}
	if err != nil {
		return &StepError{Step: StepGit, Command: exec.CommandLine("git", args), Err: err}
	}
	if inside.Success() && strings.TrimSpace(inside.Stdout) == "true" {
		log.Warn("directory is already inside a git work tree, skipping git init", "dir", s.Dir)
		return nil
	}

	res, err := s.Runner.Run(ctx, "git", args, exec.RunOpts{Dir: s.Dir})
	if err := checkResult(StepGit, "git", args, res, err); err != nil {
		return err
	}

	log.Debug("initialized repository", "dir", s.Dir)
	return nil
}

// Install installs the project's dependencies with the configured package
// manager.
func (s *Steps) Install(ctx context.Context) error {
	pm := s.PackageManager
	if pm == "" {
		pm = DefaultPackageManager
	}
	name, args := pm.InstallCommand()

	err := output.RunWithSpinner(ctx, func(ctx context.Context) error {
		res, err := s.Runner.Run(ctx, name, args, exec.RunOpts{Dir: s.Dir})
		return checkResult(StepInstall, name, args, res, err)
	},
		output.WithTitle(fmt.Sprintf("Installing dependencies with %s...", pm)),
		output.WithTimeout(installTimeout),
	)
	if err != nil {
		return asStepError(StepInstall, name, args, err)
	}

	output.StepLogger(string(StepInstall)).Debug("dependencies installed", "packageManager", string(pm))
	return nil
}

// ProvisionDatabase runs the provisioning command in Dir so it can append
// DATABASE_URL to the project's .env.
func (s *Steps) ProvisionDatabase(ctx context.Context) error {
	line := s.ProvisionCommand
	if strings.TrimSpace(line) == "" {
		line = DefaultProvisionCommand
	}
	name, args, err := exec.Split(line)
	if err != nil {
		return &StepError{Step: StepProvision, Command: line, Err: err}
	}

	err = output.RunWithSpinner(ctx, func(ctx context.Context) error {
		res, err := s.Runner.Run(ctx, name, args, exec.RunOpts{Dir: s.Dir})
		return checkResult(StepProvision, name, args, res, err)
	},
		output.WithTitle("Provisioning a Neon database..."),
		output.WithTimeout(provisionTimeout),
	)
	if err != nil {
		return asStepError(StepProvision, name, args, err)
	}

	log := output.StepLogger(string(StepProvision))
	if ok, err := hasDatabaseURL(filepath.Join(s.Dir, ".env")); err != nil || !ok {
		log.Warn("provisioning finished but .env has no DATABASE_URL; set it by hand")
		return nil
	}
	log.Debug("database provisioned")
	return nil
}

var databaseURLLine = regexp.MustCompile(`(?m)^DATABASE_URL=\S`)

func hasDatabaseURL(envPath string) (bool, error) {
	data, err := os.ReadFile(envPath)
	if err != nil {
		return false, err
	}
	return databaseURLLine.Match(data), nil
}

// checkResult turns a run outcome into a StepError when the command could
// not run or exited non-zero.
func checkResult(step Step, name string, args []string, res exec.Result, err error) error {
	cmdline := exec.CommandLine(name, args)
	if err != nil {
		return &StepError{Step: step, Command: cmdline, Err: err}
	}
	if !res.Success() {
		return &StepError{
			Step:    step,
			Command: cmdline,
			Err:     fmt.Errorf("exit status %d", res.ExitCode),
			Output:  tail(res.Stderr, stderrTail),
		}
	}
	return nil
}

func asStepError(step Step, name string, args []string, err error) error {
	var stepErr *StepError
	if errors.As(err, &stepErr) {
		return stepErr
	}
	return &StepError{Step: step, Command: exec.CommandLine(name, args), Err: err}
}

// tail returns at most the last n lines of s.
func tail(s string, n int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
