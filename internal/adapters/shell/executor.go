// Package shell runs external processes such as the native compiler.
package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"go.trai.ch/zerr"
)

// Runner implements ports.CommandRunner using os/exec.
type Runner struct {
	env map[string]string
}

// NewRunner creates a Runner. env entries override the inherited environment.
func NewRunner(env map[string]string) *Runner {
	return &Runner{env: env}
}

// Run executes name with args in dir and waits for it to exit.
func (r *Runner) Run(ctx context.Context, dir, name string, args []string, stdout, stderr io.Writer) error {
	cmdEnv := resolveEnvironment(os.Environ(), r.env)

	executable := name
	if !filepath.IsAbs(name) {
		if lp, err := lookPath(name, cmdEnv); err == nil {
			executable = lp
		}
	}

	cmd := exec.CommandContext(ctx, executable, args...) //nolint:gosec // compiler path comes from the resolver
	if len(cmd.Args) > 0 {
		cmd.Args[0] = name
	}
	cmd.Dir = dir
	cmd.Env = cmdEnv
	cmd.Stdout = orDiscard(stdout)
	cmd.Stderr = orDiscard(stderr)

	if err := cmd.Run(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		failed := zerr.With(zerr.Wrap(err, "command failed"), "exit_code", exitCode)
		return zerr.With(failed, "command", name)
	}
	return nil
}

// LookPath resolves name on the PATH the runner would use.
func (r *Runner) LookPath(name string) (string, error) {
	return lookPath(name, resolveEnvironment(os.Environ(), r.env))
}

func orDiscard(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}

// allowListedEnvVars are the system variables the compiler inherits.
var allowListedEnvVars = map[string]struct{}{
	"HOME":       {},
	"TERM":       {},
	"USER":       {},
	"PATH":       {},
	"TMPDIR":     {},
	"SYSTEMROOT": {},
}

// resolveEnvironment keeps the allow-listed system variables and applies
// overrides. The result is sorted.
func resolveEnvironment(sysEnv []string, overrides map[string]string) []string {
	envMap := make(map[string]string)
	for _, entry := range sysEnv {
		k, v, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if _, allowed := allowListedEnvVars[k]; allowed {
			envMap[k] = v
		}
	}
	for k, v := range overrides {
		envMap[k] = v
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	sort.Strings(result)
	return result
}

// lookPath searches for an executable in the PATH of env.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if v, ok := strings.CutPrefix(e, "PATH="); ok {
			path = v
			break
		}
	}
	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
