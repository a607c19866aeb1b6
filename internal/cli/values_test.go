package cli

import (
	"bytes"
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/agbru/numkit/internal/errors"
	"github.com/agbru/numkit/internal/numeric"
)

func TestFormatValue(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"int", int64(-42), "-42"},
		{"bool", true, "true"},
		{"float", 5.0, "5"},
		{"fraction", 2.5, "2.5"},
		{"nan", math.NaN(), "NaN"},
		{"inf", math.Inf(-1), "-Inf"},
		{"big", big.NewInt(6100080207560938369), "6100080207560938369"},
		{"person", numeric.MakePerson("Alice", 30, "a@example.com"), "Name:  Alice\nAge:   30\nEmail: a@example.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, FormatValue(tt.value))
		})
	}
}

func TestWriteValue(t *testing.T) {
	t.Parallel()

	t.Run("text", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		require.NoError(t, WriteValue(&buf, OutputText, "sum", int64(3)))
		assert.Equal(t, "3\n", buf.String())
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		require.NoError(t, WriteValue(&buf, OutputJSON, "sum", int64(3)))
		assert.JSONEq(t, `{"operation":"sum","result":3}`, buf.String())
	})

	t.Run("json big integer is a string", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		n, _ := new(big.Int).SetString("354224848179261915075", 10)
		require.NoError(t, WriteValue(&buf, OutputJSON, "fibonacci", n))
		assert.JSONEq(t, `{"operation":"fibonacci","result":"354224848179261915075"}`, buf.String())
	})

	t.Run("json NaN is a string", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		require.NoError(t, WriteValue(&buf, OutputJSON, "distance", math.NaN()))
		assert.JSONEq(t, `{"operation":"distance","result":"NaN"}`, buf.String())
	})

	t.Run("json person", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		require.NoError(t, WriteValue(&buf, OutputJSON, "person", numeric.MakePerson("Bob", 41, "b@example.com")))
		assert.JSONEq(t, `{"operation":"person","result":{"name":"Bob","age":41,"email":"b@example.com"}}`, buf.String())
	})

	t.Run("yaml person", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		require.NoError(t, WriteValue(&buf, OutputYAML, "person", numeric.MakePerson("Bob", 41, "b@example.com")))
		assert.Equal(t, "operation: person\nresult:\n  name: Bob\n  age: 41\n  email: b@example.com\n", buf.String())
	})

	t.Run("unknown format", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		err := WriteValue(&buf, "xml", "sum", 1)
		var configErr apperrors.ConfigError
		require.ErrorAs(t, err, &configErr)
		assert.Equal(t, apperrors.ExitErrorConfig, apperrors.ExitCode(err))
	})
}
