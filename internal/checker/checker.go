// Package checker runs the external advisory-check subprocess and parses
// its output into update records.
package checker

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mingue/arch-audit-notify/config"
	"github.com/mingue/arch-audit-notify/errors"
	"github.com/mingue/arch-audit-notify/internal/notifier"
)

// advisoryURL is the base link for per-package advisory pages.
const advisoryURL = "https://security.archlinux.org/package/"

// Executor creates exec.Cmd instances. This abstraction allows for
// dependency injection, enabling test-specific command creation logic
// (e.g. a PATH with mock binaries) without modifying production code.
type Executor interface {
	CommandContext(ctx context.Context, name string, args ...string) *exec.Cmd
}

// RealExecutor is the production implementation of Executor.
type RealExecutor struct{}

// CommandContext creates a standard context-aware exec.Cmd.
func (e *RealExecutor) CommandContext(ctx context.Context, name string, args ...string) *exec.Cmd {
	return exec.CommandContext(ctx, name, args...)
}

// ArchAudit invokes the arch-audit binary (or whatever command is
// configured in its place) and implements notifier.Checker.
//
// arch-audit -u prints one line per installed package with pending security
// updates and exits 1 when any exist; exit 0 with empty output means all
// clear. Both are successful outcomes here.
type ArchAudit struct {
	command  string
	args     []string
	timeout  time.Duration
	executor Executor
	logger   *logrus.Entry
}

// New creates a checker from the configuration.
func New(cfg config.CheckerConfig, logger *logrus.Entry) *ArchAudit {
	return &ArchAudit{
		command:  cfg.Command,
		args:     cfg.Args,
		timeout:  cfg.Timeout(),
		executor: &RealExecutor{},
		logger:   logger,
	}
}

// SetExecutor replaces the command executor. Test hook.
func (a *ArchAudit) SetExecutor(executor Executor) {
	a.executor = executor
}

// Check runs one advisory check. The timeout bounds the subprocess; there
// is no other cancellation of an in-flight invocation.
func (a *ArchAudit) Check(ctx context.Context) ([]notifier.Update, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	cmd := a.executor.CommandContext(ctx, a.command, a.args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	a.logger.WithField("command", a.command).Debug("Running checker")
	err := cmd.Run()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, errors.New(errors.ErrCodeCheckerTimeout,
				fmt.Sprintf("checker did not finish within %s", a.timeout))
		}

		var exitErr *exec.ExitError
		if stderrors.As(err, &exitErr) {
			// arch-audit exits 1 when vulnerable packages are installed.
			// That is a finding, not a failure.
			if exitErr.ExitCode() == 1 && stdout.Len() > 0 {
				return parseOutput(stdout.String())
			}
			return nil, errors.CheckerFailed(a.command, err, strings.TrimSpace(stderr.String()))
		}

		// Spawn failure: binary missing, not executable, etc.
		return nil, errors.CheckerNotFound(a.command, err)
	}

	return parseOutput(stdout.String())
}

// parseOutput converts checker stdout into update records, one per
// non-empty line. The first whitespace-separated field is the package name
// used to build the advisory link; the full line is the display text.
func parseOutput(out string) ([]notifier.Update, error) {
	var updates []notifier.Update
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		name := strings.Fields(line)[0]
		if !validPackageName(name) {
			return nil, errors.CheckerOutputInvalid(fmt.Sprintf("bad package name %q in line %q", name, line))
		}

		updates = append(updates, notifier.Update{
			Text: line,
			Link: advisoryURL + name,
		})
	}
	return updates, nil
}

// validPackageName accepts the character set pacman allows for package
// names. The name ends up inside a URL, so anything else is rejected as
// unparseable output rather than passed through.
func validPackageName(name string) bool {
	if name == "" {
		return false
	}
	for _, c := range name {
		switch {
		case c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9':
		case c == '@' || c == '.' || c == '_' || c == '+' || c == '-':
		default:
			return false
		}
	}
	return true
}
