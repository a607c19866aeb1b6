package fibonacci

import (
	"fmt"
	"slices"
	"sync"

	apperrors "github.com/agbru/numkit/internal/errors"
)

// builtinCores lists the algorithms registered by NewDefaultFactory. Build
// tagged files may add entries from their init functions.
var builtinCores = map[string]func() coreCalculator{
	"fast":      func() coreCalculator { return &OptimizedFastDoubling{} },
	"matrix":    func() coreCalculator { return &MatrixExponentiation{} },
	"iterative": func() coreCalculator { return &IterativeAddition{} },
	"recursive": func() coreCalculator { return &MemoizedRecursion{} },
}

// CalculatorFactory creates Calculator instances by name.
type CalculatorFactory interface {
	// Get returns the calculator registered under name, or a
	// ValidationError when the name is unknown.
	Get(name string) (Calculator, error)
	// List returns the registered names in sorted order.
	List() []string
	// Register adds a calculator under name, replacing any existing entry.
	Register(name string, creator func() coreCalculator) error
	// GetAll returns every registered calculator keyed by name.
	GetAll() map[string]Calculator
}

// DefaultFactory is the thread-safe CalculatorFactory implementation.
// Calculators are created lazily and cached.
type DefaultFactory struct {
	mu          sync.RWMutex
	creators    map[string]func() coreCalculator
	calculators map[string]Calculator
}

// NewDefaultFactory returns a factory holding the built-in algorithms.
func NewDefaultFactory() *DefaultFactory {
	f := &DefaultFactory{
		creators:    make(map[string]func() coreCalculator, len(builtinCores)),
		calculators: make(map[string]Calculator, len(builtinCores)),
	}
	for name, creator := range builtinCores {
		f.creators[name] = creator
	}
	return f
}

// Register implements CalculatorFactory.
func (f *DefaultFactory) Register(name string, creator func() coreCalculator) error {
	if name == "" {
		return fmt.Errorf("calculator name cannot be empty")
	}
	if creator == nil {
		return fmt.Errorf("creator for %q cannot be nil", name)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creators[name] = creator
	delete(f.calculators, name)
	return nil
}

// Get implements CalculatorFactory.
func (f *DefaultFactory) Get(name string) (Calculator, error) {
	f.mu.RLock()
	if calc, ok := f.calculators[name]; ok {
		f.mu.RUnlock()
		return calc, nil
	}
	f.mu.RUnlock()

	f.mu.Lock()
	defer f.mu.Unlock()
	if calc, ok := f.calculators[name]; ok {
		return calc, nil
	}
	creator, ok := f.creators[name]
	if !ok {
		return nil, apperrors.ValidationError{
			Field:   "algo",
			Message: fmt.Sprintf("unknown algorithm %q (available: %v)", name, f.namesLocked()),
		}
	}
	calc := NewCalculator(creator())
	f.calculators[name] = calc
	return calc, nil
}

// MustGet is like Get but panics on an unknown name.
func (f *DefaultFactory) MustGet(name string) Calculator {
	calc, err := f.Get(name)
	if err != nil {
		panic(err)
	}
	return calc
}

// List implements CalculatorFactory.
func (f *DefaultFactory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.namesLocked()
}

func (f *DefaultFactory) namesLocked() []string {
	names := make([]string, 0, len(f.creators))
	for name := range f.creators {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// GetAll implements CalculatorFactory.
func (f *DefaultFactory) GetAll() map[string]Calculator {
	all := make(map[string]Calculator)
	for _, name := range f.List() {
		if calc, err := f.Get(name); err == nil {
			all[name] = calc
		}
	}
	return all
}

var (
	globalFactory     *DefaultFactory
	globalFactoryOnce sync.Once
)

// GlobalFactory returns the process-wide factory shared by the CLI, the TUI
// and the server. It is built on first use.
func GlobalFactory() *DefaultFactory {
	globalFactoryOnce.Do(func() {
		globalFactory = NewDefaultFactory()
	})
	return globalFactory
}
