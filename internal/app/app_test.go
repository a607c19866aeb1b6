package app

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/agbru/numkit/internal/cli"
	apperrors "github.com/agbru/numkit/internal/errors"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// run executes numkit with colors disabled and returns stdout, stderr and
// the exit code.
func run(t *testing.T, args ...string) (string, string, int) {
	t.Helper()
	var out, errOut bytes.Buffer
	a := New(&errOut)
	code := a.Run(context.Background(), append([]string{"--no-color"}, args...), &out)
	return out.String(), errOut.String(), code
}

func TestRootCommand(t *testing.T) {
	cmd := New(&bytes.Buffer{}).NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "numkit", cmd.Use)
	assert.Contains(t, cmd.Long, "overflow")
	assert.True(t, cmd.SilenceUsage)
}

func TestCommandPresence(t *testing.T) {
	cmd := New(&bytes.Buffer{}).NewRootCommand()
	commands := []string{"sum", "nonempty", "sortsum", "fib", "distance", "area", "person", "repl", "tui", "serve"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := New(&bytes.Buffer{}).NewRootCommand()

	quietFlag := cmd.PersistentFlags().Lookup("quiet")
	require.NotNil(t, quietFlag)
	assert.Equal(t, "q", quietFlag.Shorthand)
	assert.Equal(t, "false", quietFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	timeoutFlag := cmd.PersistentFlags().Lookup("timeout")
	require.NotNil(t, timeoutFlag)
	assert.Equal(t, "5m0s", timeoutFlag.DefValue)
}

func TestFibCommandFlags(t *testing.T) {
	cmd := New(&bytes.Buffer{}).NewRootCommand()
	fibCmd, _, err := cmd.Find([]string{"fib"})
	require.NoError(t, err)

	showValue := fibCmd.Flags().Lookup("show-value")
	require.NotNil(t, showValue)
	assert.Equal(t, "c", showValue.Shorthand)

	output := fibCmd.Flags().Lookup("output")
	require.NotNil(t, output)
	assert.Equal(t, "o", output.Shorthand)

	algo := fibCmd.Flags().Lookup("algo")
	require.NotNil(t, algo)
	assert.Equal(t, "fast", algo.DefValue)
	assert.Contains(t, algo.Usage, "matrix")
}

func TestNumericCommands(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"sum", []string{"sum", "2", "3"}, "5\n"},
		{"sum negative", []string{"sum", "--", "-7", "4"}, "-3\n"},
		{"sum alias", []string{"add", "40", "2"}, "42\n"},
		{"nonempty text", []string{"nonempty", "hello"}, "true\n"},
		{"nonempty empty", []string{"nonempty", ""}, "false\n"},
		{"nonempty missing", []string{"nonempty"}, "false\n"},
		{"sortsum args", []string{"sortsum", "3", "1", "2"}, "6\n"},
		{"sortsum flag", []string{"sortsum", "--numbers", "3,1,2"}, "6\n"},
		{"sortsum both", []string{"sortsum", "--numbers", "10", "5"}, "15\n"},
		{"sortsum empty", []string{"sortsum"}, "0\n"},
		{"fib u64", []string{"fib", "10", "--u64"}, "55\n"},
		{"fib u64 max", []string{"fib", "93", "--u64"}, "12200160415121876738\n"},
		{"distance", []string{"distance", "0", "0", "3", "4"}, "5\n"},
		{"distance nan", []string{"distance", "NaN", "0", "0", "0"}, "NaN\n"},
		{"area", []string{"area", "2", "3.5"}, "7\n"},
		{"person", []string{"person", "--name", "Alice", "--age", "30", "--email", "alice@example.com"},
			"Name:  Alice\nAge:   30\nEmail: alice@example.com\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, errOut, code := run(t, tt.args...)
			require.Equal(t, apperrors.ExitSuccess, code, "stderr: %s", errOut)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestStructuredOutput(t *testing.T) {
	out, _, code := run(t, "--format", "json", "sum", "1", "2")
	require.Equal(t, apperrors.ExitSuccess, code)
	assert.JSONEq(t, `{"operation":"sum","result":3}`, out)

	out, _, code = run(t, "--format", "yaml", "person", "--name", "Bob", "--age", "41", "--email", "bob@example.com")
	require.Equal(t, apperrors.ExitSuccess, code)
	assert.Equal(t, "operation: person\nresult:\n  name: Bob\n  age: 41\n  email: bob@example.com\n", out)
}

func TestExitCodes(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		code    int
		wantErr string
	}{
		{"sum overflow", []string{"sum", "9223372036854775807", "1"}, apperrors.ExitErrorOverflow, "integer overflow"},
		{"fib u64 overflow", []string{"fib", "94", "--u64"}, apperrors.ExitErrorOverflow, "integer overflow"},
		{"sortsum overflow", []string{"sortsum", "9223372036854775807", "9223372036854775807"}, apperrors.ExitErrorOverflow, "integer overflow"},
		{"bad integer", []string{"sum", "1", "x"}, apperrors.ExitErrorConfig, `"b"`},
		{"missing argument", []string{"sum", "1"}, apperrors.ExitErrorConfig, "expects 2 argument(s)"},
		{"unknown flag", []string{"sum", "--bogus", "1", "2"}, apperrors.ExitErrorConfig, "bogus"},
		{"bad format", []string{"--format", "xml", "sum", "1", "2"}, apperrors.ExitErrorConfig, "invalid output format"},
		{"unknown algorithm", []string{"fib", "10", "--algo", "nope"}, apperrors.ExitErrorConfig, "unknown algorithm"},
		{"bad last digits", []string{"fib", "10", "--last-digits", "0"}, apperrors.ExitErrorConfig, "last-digits"},
		{"too many last digits", []string{"fib", "10", "--last-digits", "10001"}, apperrors.ExitErrorConfig, "between 1 and 10000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errOut, code := run(t, append(tt.args, "-q")...)
			assert.Equal(t, tt.code, code, "stderr: %s", errOut)
			assert.Contains(t, errOut, tt.wantErr)
		})
	}
}

func TestFibCommand(t *testing.T) {
	t.Run("single algorithm", func(t *testing.T) {
		out, errOut, code := run(t, "fib", "10", "-c")
		require.Equal(t, apperrors.ExitSuccess, code, "stderr: %s", errOut)
		assert.Contains(t, out, "--- Execution Configuration ---")
		assert.Contains(t, out, "Global Status: Success")
		assert.Contains(t, out, "F(10) =\n55\n")
	})

	t.Run("all algorithms", func(t *testing.T) {
		out, errOut, code := run(t, "fib", "100", "--algo", "all", "-c")
		require.Equal(t, apperrors.ExitSuccess, code, "stderr: %s", errOut)
		assert.Contains(t, out, "Parallel comparison of all algorithms")
		assert.Contains(t, out, "All valid results are consistent")
		assert.Contains(t, out, "354,224,848,179,261,915,075")
	})

	t.Run("quiet", func(t *testing.T) {
		out, _, code := run(t, "fib", "100", "-q")
		require.Equal(t, apperrors.ExitSuccess, code)
		assert.Equal(t, "354224848179261915075\n", out)
	})

	t.Run("json", func(t *testing.T) {
		out, _, code := run(t, "--format", "json", "fib", "100")
		require.Equal(t, apperrors.ExitSuccess, code)
		var got map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.Equal(t, "fibonacci", got["operation"])
		assert.Equal(t, "354224848179261915075", got["result"])
	})

	t.Run("last digits", func(t *testing.T) {
		out, _, code := run(t, "fib", "10", "--last-digits", "3", "-q")
		require.Equal(t, apperrors.ExitSuccess, code)
		assert.Equal(t, "055\n", out)

		out, _, code = run(t, "fib", "100", "--last-digits", "5")
		require.Equal(t, apperrors.ExitSuccess, code)
		assert.Contains(t, out, "Last 5 digits of F(100): 15075")
	})

	t.Run("details", func(t *testing.T) {
		out, _, code := run(t, "fib", "100", "--details")
		require.Equal(t, apperrors.ExitSuccess, code)
		assert.Contains(t, out, "Number of digits        : 21")
		assert.Contains(t, out, "Memory Stats:")
		assert.Contains(t, out, "Environment: ")
	})

	t.Run("output file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "fib.txt")
		out, _, code := run(t, "fib", "100", "-o", path)
		require.Equal(t, apperrors.ExitSuccess, code)
		assert.Contains(t, out, "Result saved to: "+path)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "354224848179261915075")
	})

	t.Run("timeout", func(t *testing.T) {
		_, errOut, code := run(t, "fib", "10000000", "--timeout", "1ms", "-q")
		assert.Equal(t, apperrors.ExitErrorTimeout, code)
		assert.Contains(t, errOut, "Timeout")
	})
}

func TestConfigPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "numkit.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: yaml\n"), 0o600))

	out, _, code := run(t, "--config", path, "sum", "1", "2")
	require.Equal(t, apperrors.ExitSuccess, code)
	assert.Equal(t, "operation: sum\nresult: 3\n", out, "file over default")

	t.Setenv("NUMKIT_FORMAT", "json")
	out, _, code = run(t, "--config", path, "sum", "1", "2")
	require.Equal(t, apperrors.ExitSuccess, code)
	assert.JSONEq(t, `{"operation":"sum","result":3}`, out, "environment over file")

	out, _, code = run(t, "--config", path, "--format", "text", "sum", "1", "2")
	require.Equal(t, apperrors.ExitSuccess, code)
	assert.Equal(t, "3\n", out, "flag over environment")
}

func TestREPLCommand(t *testing.T) {
	var out, errOut bytes.Buffer
	cmd := New(&errOut).NewRootCommand()
	cmd.SetArgs([]string{"--no-color", "repl", "--algo", "matrix"})
	cmd.SetIn(strings.NewReader("sum 2 3\nfib 10\nexit\n"))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.Contains(t, out.String(), "numkit - Interactive Mode")
	assert.Contains(t, out.String(), cli.Prompt+"5\n")
	assert.Contains(t, out.String(), "F(10) = 55")
	assert.Contains(t, out.String(), "Goodbye!")
}

func TestREPLCommand_UnknownAlgorithm(t *testing.T) {
	_, errOut, code := run(t, "repl", "--algo", "nope")
	assert.Equal(t, apperrors.ExitErrorConfig, code)
	assert.Contains(t, errOut, "unknown algorithm")
}

func TestNewServer(t *testing.T) {
	a := New(&bytes.Buffer{})

	a.Config.Algo = "all"
	a.Config.CORSOrigins = ""
	srv, err := a.newServer()
	require.NoError(t, err)
	require.NotNil(t, srv)

	a.Config.Algo = "nope"
	_, err = a.newServer()
	assert.Error(t, err)
}

func TestServeCommand_ShutsDownOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out, errOut bytes.Buffer
	code := New(&errOut).Run(ctx, []string{"--no-color", "serve", "--addr", "127.0.0.1:0"}, &out)
	assert.Equal(t, apperrors.ExitSuccess, code, "stderr: %s", errOut.String())
	assert.Contains(t, errOut.String(), "server listening")
}

func TestVersionFlag(t *testing.T) {
	out, _, code := run(t, "--version")
	assert.Equal(t, apperrors.ExitSuccess, code)
	assert.Equal(t, "numkit "+Version+"\n", out)
}
