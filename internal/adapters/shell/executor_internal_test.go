package shell_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zkc/internal/adapters/shell"
)

func TestResolveEnvironment(t *testing.T) {
	sys := []string{"PATH=/usr/bin", "HOME=/home/u", "AWS_SECRET=x", "MALFORMED"}
	got := shell.ResolveEnvironment(sys, map[string]string{"PATH": "/opt/bin", "EXTRA": "1"})
	assert.Equal(t, []string{"EXTRA=1", "HOME=/home/u", "PATH=/opt/bin"}, got)

	assert.Empty(t, shell.ResolveEnvironment(nil, nil))
}

func TestLookPath_EmptyPATH(t *testing.T) {
	_, err := shell.LookPath("sh", []string{"HOME=/x"})
	assert.ErrorIs(t, err, exec.ErrNotFound)
}

func TestFindExecutable(t *testing.T) {
	dir := t.TempDir()
	assert.ErrorIs(t, shell.FindExecutable(dir), os.ErrPermission, "directories are not executable")

	plain := filepath.Join(dir, "plain")
	require.NoError(t, os.WriteFile(plain, nil, 0o600))
	assert.ErrorIs(t, shell.FindExecutable(plain), os.ErrPermission)

	assert.Error(t, shell.FindExecutable(filepath.Join(dir, "missing")))
}
