package e2e

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCLI_E2E builds the numkit binary and checks its output and exit codes.
func TestCLI_E2E(t *testing.T) {
	if testing.Short() {
		t.Skip("builds the binary")
	}

	tmpDir := t.TempDir()
	binName := "numkit"
	if runtime.GOOS == "windows" {
		binName = "numkit.exe"
	}
	binPath := filepath.Join(tmpDir, binName)

	// go test runs in the package directory; build from the module root.
	build := exec.Command("go", "build", "-o", binPath, "./cmd/numkit")
	build.Dir = "../.."
	build.Stdout = os.Stdout
	build.Stderr = os.Stderr
	require.NoError(t, build.Run(), "build numkit")

	tests := []struct {
		name     string
		args     []string
		wantOut  string // substring match (case-insensitive)
		wantCode int
	}{
		{
			name:     "Sum",
			args:     []string{"sum", "2", "3"},
			wantOut:  "5",
			wantCode: 0,
		},
		{
			name:     "Sum Overflow",
			args:     []string{"sum", "9223372036854775807", "1"},
			wantOut:  "integer overflow",
			wantCode: 5,
		},
		{
			name:     "Sort And Sum",
			args:     []string{"sortsum", "--numbers", "3,1,2"},
			wantOut:  "6",
			wantCode: 0,
		},
		{
			name:     "Distance",
			args:     []string{"distance", "0", "0", "3", "4"},
			wantOut:  "5",
			wantCode: 0,
		},
		{
			name:     "Person JSON",
			args:     []string{"--format", "json", "person", "--name", "Alice", "--age", "30", "--email", "a@example.com"},
			wantOut:  `"email": "a@example.com"`,
			wantCode: 0,
		},
		{
			name:     "Basic Calculation",
			args:     []string{"fib", "10", "-c"},
			wantOut:  "F(10) =",
			wantCode: 0,
		},
		{
			name:     "All Algorithms Comparison",
			args:     []string{"fib", "100", "--algo", "all", "-c"},
			wantOut:  "F(100)",
			wantCode: 0,
		},
		{
			name:     "Quiet Mode",
			args:     []string{"fib", "10", "--quiet"},
			wantOut:  "55",
			wantCode: 0,
		},
		{
			name:     "Checked 64-bit Overflow",
			args:     []string{"fib", "94", "--u64"},
			wantOut:  "overflow",
			wantCode: 5,
		},
		{
			name:     "Very Short Timeout",
			args:     []string{"fib", "10000000", "--timeout", "1ms"},
			wantOut:  "timeout",
			wantCode: 2,
		},
		{
			name:     "Invalid Argument",
			args:     []string{"sum", "1", "two"},
			wantOut:  "validation error",
			wantCode: 4,
		},
		{
			name:     "Help",
			args:     []string{"--help"},
			wantOut:  "usage",
			wantCode: 0,
		},
		{
			name:     "Version Flag",
			args:     []string{"--version"},
			wantOut:  "numkit",
			wantCode: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := exec.Command(binPath, tt.args...)
			cmd.Env = append(os.Environ(), "NO_COLOR=1")
			output, err := cmd.CombinedOutput()
			outStr := string(output)

			code := 0
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				code = exitErr.ExitCode()
			} else {
				require.NoError(t, err, "command did not run")
			}
			assert.Equal(t, tt.wantCode, code, outStr)
			assert.Contains(t, strings.ToLower(outStr), strings.ToLower(tt.wantOut))
		})
	}
}
