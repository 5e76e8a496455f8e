package platform

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlatformFlagsMatchRuntime(t *testing.T) {
	assert.Equal(t, runtime.GOOS, GOOS())
	assert.Equal(t, runtime.GOOS == "windows", IsWindows())
	assert.Equal(t, runtime.GOOS == "darwin", IsMacOS())
	assert.Equal(t, runtime.GOOS == "linux", IsLinux())
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()

	assert.True(t, FileExists(dir))
	assert.False(t, FileExists(filepath.Join(dir, "missing")))
	assert.False(t, FileExists(""))
}

func TestExpandEnv(t *testing.T) {
	t.Setenv("ADM_TEST_ROOT", "/opt/game")

	tests := []struct {
		in   string
		want string
	}{
		{"plain/path", "plain/path"},
		{"${ADM_TEST_ROOT}/tools", "/opt/game/tools"},
		{"$ADM_TEST_ROOT/tools", "/opt/game/tools"},
		{"${ADM_TEST_UNSET_VAR}/tools", "${ADM_TEST_UNSET_VAR}/tools"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandEnv(tt.in))
		})
	}
}
