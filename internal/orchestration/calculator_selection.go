package orchestration

import (
	"github.com/agbru/numkit/internal/fibonacci"
)

// AllAlgorithms selects every registered calculator.
const AllAlgorithms = "all"

// GetCalculatorsToRun resolves an algorithm selection against factory.
// "all" returns every registered calculator in alphabetical order.
//
// Parameters:
//   - algo: An algorithm name or AllAlgorithms.
//   - factory: The calculator factory to retrieve implementations from.
//
// Returns:
//   - []fibonacci.Calculator: The calculators to execute.
//   - error: A ValidationError when algo names no registered calculator.
func GetCalculatorsToRun(algo string, factory fibonacci.CalculatorFactory) ([]fibonacci.Calculator, error) {
	if algo == AllAlgorithms {
		keys := factory.List()
		calculators := make([]fibonacci.Calculator, 0, len(keys))
		for _, k := range keys {
			if calc, err := factory.Get(k); err == nil {
				calculators = append(calculators, calc)
			}
		}
		return calculators, nil
	}
	calc, err := factory.Get(algo)
	if err != nil {
		return nil, err
	}
	return []fibonacci.Calculator{calc}, nil
}
