package app

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/agbru/numkit/internal/cli"
	apperrors "github.com/agbru/numkit/internal/errors"
	"github.com/agbru/numkit/internal/logging"
	"github.com/agbru/numkit/internal/numeric"
)

func (a *Application) newSumCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "sum A B",
		Aliases: []string{"add"},
		Short:   "Print the sum of two integers",
		Example: "  numkit sum 2 3\n  numkit sum -- -7 4",
		Args:    exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := parseInt("a", args[0])
			if err != nil {
				return err
			}
			y, err := parseInt("b", args[1])
			if err != nil {
				return err
			}
			sum, err := numeric.Sum(x, y)
			if err != nil {
				return err
			}
			return a.writeValue(cmd, "sum", sum)
		},
	}
}

func (a *Application) newNonEmptyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "nonempty [TEXT]",
		Short: "Print whether TEXT is non-empty",
		Args:  maxArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := ""
			if len(args) == 1 {
				text = args[0]
			}
			return a.writeValue(cmd, "nonempty", numeric.IsNonEmpty(text))
		},
	}
}

func (a *Application) newSortSumCommand() *cobra.Command {
	var numbers []int64
	cmd := &cobra.Command{
		Use:   "sortsum [N...]",
		Short: "Sort integers ascending and print their sum",
		Long: `Sort integers ascending and print their sum. The numbers come from the
arguments followed by --numbers. Intermediate overflow is not an error;
only a total outside the 64-bit range is.`,
		Example: "  numkit sortsum 3 1 2\n  numkit sortsum --numbers 3,1,2",
		RunE: func(cmd *cobra.Command, args []string) error {
			values := make([]int64, 0, len(args)+len(numbers))
			for i, arg := range args {
				v, err := parseInt("numbers["+strconv.Itoa(i)+"]", arg)
				if err != nil {
					return err
				}
				values = append(values, v)
			}
			values = append(values, numbers...)

			sum, err := numeric.SortAndSum(values)
			if err != nil {
				return err
			}
			a.Logger.Debug("sorted numbers", logging.Int("count", len(values)))
			return a.writeValue(cmd, "sortsum", sum)
		},
	}
	cmd.Flags().Int64SliceVar(&numbers, "numbers", nil, "Comma-separated integers")
	return cmd
}

func (a *Application) newDistanceCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "distance X1 Y1 X2 Y2",
		Aliases: []string{"dist"},
		Short:   "Print the Euclidean distance between two points",
		Example: "  numkit distance 0 0 3 4",
		Args:    exactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := []string{"x1", "y1", "x2", "y2"}
			var coords [4]float64
			for i, arg := range args {
				v, err := parseFloat(names[i], arg)
				if err != nil {
					return err
				}
				coords[i] = v
			}
			p1 := numeric.Point2D{X: coords[0], Y: coords[1]}
			p2 := numeric.Point2D{X: coords[2], Y: coords[3]}
			return a.writeValue(cmd, "distance", numeric.Distance(p1, p2))
		},
	}
}

func (a *Application) newAreaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "area W H",
		Short: "Print the area of a W by H rectangle",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := parseFloat("width", args[0])
			if err != nil {
				return err
			}
			h, err := parseFloat("height", args[1])
			if err != nil {
				return err
			}
			return a.writeValue(cmd, "area", numeric.Area(w, h))
		},
	}
}

func (a *Application) newPersonCommand() *cobra.Command {
	var (
		name  string
		age   int
		email string
	)
	cmd := &cobra.Command{
		Use:     "person",
		Short:   "Print a person record",
		Example: "  numkit person --name Alice --age 30 --email alice@example.com --format yaml",
		Args:    exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.writeValue(cmd, "person", numeric.MakePerson(name, age, email))
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Name")
	cmd.Flags().IntVar(&age, "age", 0, "Age")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	return cmd
}

func (a *Application) writeValue(cmd *cobra.Command, op string, value any) error {
	return cli.WriteValue(cmd.OutOrStdout(), a.Config.Format, op, value)
}

// exactArgs is cobra.ExactArgs reporting a ConfigError.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return apperrors.NewConfigError("%s expects %d argument(s), got %d", cmd.Name(), n, len(args))
		}
		return nil
	}
}

// maxArgs is cobra.MaximumNArgs reporting a ConfigError.
func maxArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) > n {
			return apperrors.NewConfigError("%s accepts at most %d argument(s), got %d", cmd.Name(), n, len(args))
		}
		return nil
	}
}

func parseInt(field, s string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, apperrors.ValidationError{Field: field, Message: "not a 64-bit integer: " + strconv.Quote(s)}
	}
	return v, nil
}

func parseUint(field, s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, apperrors.ValidationError{Field: field, Message: "not a non-negative 64-bit integer: " + strconv.Quote(s)}
	}
	return v, nil
}

// parseFloat accepts anything strconv.ParseFloat does, including NaN and
// infinities, which Distance and Area propagate.
func parseFloat(field, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, apperrors.ValidationError{Field: field, Message: "not a number: " + strconv.Quote(s)}
	}
	return v, nil
}
