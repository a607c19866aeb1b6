package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"math/big"
	"strconv"

	"gopkg.in/yaml.v3"

	apperrors "github.com/agbru/numkit/internal/errors"
	"github.com/agbru/numkit/internal/numeric"
)

// Output formats accepted by --format.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// OutputFormats lists the accepted --format values.
var OutputFormats = []string{OutputText, OutputJSON, OutputYAML}

// valueEnvelope is the machine-readable form of a command result.
type valueEnvelope struct {
	Operation string `json:"operation" yaml:"operation"`
	Result    any    `json:"result" yaml:"result"`
}

// FormatValue renders a command result as plain text. Floats use the
// shortest representation that round-trips, so NaN and infinities print as
// "NaN", "+Inf" and "-Inf".
func FormatValue(value any) string {
	switch v := value.(type) {
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case *big.Int:
		return v.String()
	case numeric.Person:
		return fmt.Sprintf("Name:  %s\nAge:   %d\nEmail: %s", v.Name, v.Age, v.Email)
	default:
		return fmt.Sprint(v)
	}
}

// WriteValue writes the result of op to out in the requested format.
//
// Parameters:
//   - out: The output writer.
//   - outputFormat: One of OutputText, OutputJSON or OutputYAML.
//   - op: The operation name, included in structured output.
//   - value: The result.
//
// Returns:
//   - error: A ConfigError for an unknown format, or the encoder's error.
func WriteValue(out io.Writer, outputFormat, op string, value any) error {
	switch outputFormat {
	case OutputText, "":
		_, err := fmt.Fprintln(out, FormatValue(value))
		return err
	case OutputJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(valueEnvelope{Operation: op, Result: structuredValue(value)})
	case OutputYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(valueEnvelope{Operation: op, Result: structuredValue(value)}); err != nil {
			return err
		}
		return enc.Close()
	default:
		return apperrors.NewConfigError("unknown output format %q (want text, json or yaml)", outputFormat)
	}
}

// structuredValue converts values that encoders cannot represent faithfully.
// Big integers become decimal strings and non-finite floats their text form.
func structuredValue(value any) any {
	switch v := value.(type) {
	case *big.Int:
		return v.String()
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return FormatValue(v)
		}
		return v
	default:
		return v
	}
}
