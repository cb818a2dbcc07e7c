package fileutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rohmanhakim/element-locator/pkg/fileutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetFileExtension(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{name: "yaml file", path: "login.yaml", expected: "yaml"},
		{name: "uppercase extension", path: "STEP.JSON", expected: "json"},
		{name: "multiple dots", path: "workflow.v2.yml", expected: "yml"},
		{name: "no extension", path: "README", expected: ""},
		{name: "nested path", path: "/tmp/flows/checkout.json", expected: "json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, fileutil.GetFileExtension(tt.path))
		})
	}
}

func TestReplaceExtension(t *testing.T) {
	assert.Equal(t, "/tmp/flow.yaml", fileutil.ReplaceExtension("/tmp/flow.json", "yaml"))
	assert.Equal(t, "flow.yaml", fileutil.ReplaceExtension("flow", "yaml"))
}

func TestEnsureDir_CreatesNestedDirectories(t *testing.T) {
	root := t.TempDir()

	err := fileutil.EnsureDir(root, "reports", "2026")
	require.Nil(t, err)

	info, statErr := os.Stat(filepath.Join(root, "reports", "2026"))
	require.NoError(t, statErr)
	assert.True(t, info.IsDir())
}

func TestWriteFile(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "out")

	path, err := fileutil.WriteFile(dir, "report.md", []byte("# Report"))
	require.Nil(t, err)
	assert.Equal(t, filepath.Join(dir, "report.md"), path)
	assert.True(t, fileutil.Exists(path))

	content, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, "# Report", string(content))
}

func TestWriteFile_DirectoryIsAFile(t *testing.T) {
	root := t.TempDir()
	blocker := filepath.Join(root, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	_, err := fileutil.WriteFile(blocker, "report.md", []byte("data"))
	require.NotNil(t, err)

	var fileErr *fileutil.FileError
	require.ErrorAs(t, err, &fileErr)
	assert.Equal(t, fileutil.ErrCausePathError, fileErr.Cause)
}
