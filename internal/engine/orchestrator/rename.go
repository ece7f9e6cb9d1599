package orchestrator

import (
	"os"
	"path/filepath"
	"strings"
)

// renameOutputs renames compiler outputs named after the source basename to
// the template name. Directory outputs (the _js and _cpp trees) have their
// inner files renamed too.
func renameOutputs(dir, base, template string) error {
	if base == template {
		return nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	for _, e := range entries {
		renamed, ok := renamedOutput(e.Name(), base, template)
		if !ok {
			continue
		}
		target := filepath.Join(dir, renamed)
		if err := os.Rename(filepath.Join(dir, e.Name()), target); err != nil {
			return err
		}
		if e.IsDir() {
			if err := renameOutputs(target, base, template); err != nil {
				return err
			}
		}
	}
	return nil
}

// renamedOutput maps "<base>.x" and "<base>_x" to the template name.
func renamedOutput(name, base, template string) (string, bool) {
	rest, ok := strings.CutPrefix(name, base)
	if !ok || rest == "" {
		return "", false
	}
	if rest[0] != '.' && rest[0] != '_' {
		return "", false
	}
	return template + rest, true
}

// commitDir moves every entry of staged into dst, replacing stale entries of
// the same name.
func commitDir(staged, dst string, perm os.FileMode) error {
	if err := os.MkdirAll(dst, perm); err != nil {
		return err
	}

	entries, err := os.ReadDir(staged)
	if err != nil {
		return err
	}

	for _, e := range entries {
		target := filepath.Join(dst, e.Name())
		if err := os.RemoveAll(target); err != nil {
			return err
		}
		if err := os.Rename(filepath.Join(staged, e.Name()), target); err != nil {
			return err
		}
	}
	return nil
}

// collectLogs returns the contents of every *.log file in dir.
func collectLogs(dir string) string {
	matches, err := filepath.Glob(filepath.Join(dir, "*.log"))
	if err != nil {
		return ""
	}

	var b strings.Builder
	for _, m := range matches {
		data, err := os.ReadFile(m) //nolint:gosec // staging directory
		if err != nil {
			continue
		}
		b.WriteString(filepath.Base(m))
		b.WriteString(":\n")
		b.Write(data)
		if len(data) > 0 && data[len(data)-1] != '\n' {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
