package services

import (
	"fmt"

	"recipehub/utils"
)

func invalid(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrInvalidInput)...)
}

func checkDay(date string) error {
	if _, err := utils.ParseDay(date); err != nil {
		return fmt.Errorf("%v: %w", err, ErrInvalidInput)
	}
	return nil
}

func checkRange(from, to string) error {
	if err := utils.ValidRange(from, to); err != nil {
		return fmt.Errorf("%v: %w", err, ErrInvalidInput)
	}
	return nil
}

func checkNonNegative(fields map[string]float64) error {
	for name, v := range fields {
		if v < 0 {
			return invalid("%s must not be negative", name)
		}
	}
	return nil
}

// todayString is swapped in tests that need a fixed day.
var todayString = utils.Today
