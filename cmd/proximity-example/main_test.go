package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
	"go.uber.org/zap"
)

const centerGrid = `
origin_x: 0
origin_y: 3
pixel_size_x: 1
pixel_size_y: 1
target: 5
rows:
  - [0, 0, 0]
  - [0, 5, 0]
  - [0, 0, 0]
`

func runRootCmd(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Cleanup(func() { zap.ReplaceGlobals(zap.NewNop()) })
	cmd := newRootCmd()
	var stdout bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(t.Context())
	return stdout.String(), err
}

func TestRootCmd(t *testing.T) {
	for _, tc := range []struct {
		name     string
		stdin    string
		args     []string
		expected string
	}{
		{
			name:  "center",
			stdin: centerGrid,
			expected: "" +
				"1.4142135623730951 1 1.4142135623730951\n" +
				"1 0 1\n" +
				"1.4142135623730951 1 1.4142135623730951\n",
		},
		{
			name:  "target_flag",
			stdin: centerGrid,
			args:  []string{"--target", "7"},
			expected: "" +
				"+Inf +Inf +Inf\n" +
				"+Inf +Inf +Inf\n" +
				"+Inf +Inf +Inf\n",
		},
		{
			name:  "rows_strategy",
			stdin: centerGrid,
			args:  []string{"--strategy", "rows", "--target", "0"},
			expected: "" +
				"0 0 0\n" +
				"0 1 0\n" +
				"0 0 0\n",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := runRootCmd(t, tc.stdin, tc.args...)
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestRootCmdFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.yaml")
	assert.NoError(t, os.WriteFile(path, []byte(centerGrid), 0o644))

	actual, err := runRootCmd(t, "", path, "--scale-mode", "diagonal")
	assert.NoError(t, err)
	assert.Equal(t, "0", strings.Fields(actual)[4])
}

func TestRootCmdErrors(t *testing.T) {
	for _, tc := range []struct {
		name  string
		stdin string
		args  []string
	}{
		{
			name:  "no_target",
			stdin: "pixel_size_x: 1\npixel_size_y: 1\nrows: [[1]]\n",
		},
		{
			name:  "degenerate",
			stdin: "pixel_size_x: 0\npixel_size_y: 1\ntarget: 1\nrows: [[1]]\n",
		},
		{
			name:  "ragged",
			stdin: "pixel_size_x: 1\npixel_size_y: 1\ntarget: 1\nrows: [[1, 2], [1]]\n",
		},
		{
			name:  "bad_target",
			stdin: centerGrid,
			args:  []string{"--target", "five"},
		},
		{
			name:  "bad_strategy",
			stdin: centerGrid,
			args:  []string{"--strategy", "kdtree"},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := runRootCmd(t, tc.stdin, tc.args...)
			assert.Error(t, err)
		})
	}
}
