// Package dates converts between the backend date format (YYYY-MM-DD,
// what the pedidos and usuarios APIs store) and the form format shown to
// shoppers (DD-MM-YYYY).
package dates

import (
	"errors"
	"fmt"
	"time"
)

const (
	// StorageLayout is the wire/storage format.
	StorageLayout = "2006-01-02"
	// FormLayout is the user-facing format.
	FormLayout = "02-01-2006"
)

var ErrBadDate = errors.New("malformed date")

// ToFormFormat converts YYYY-MM-DD into DD-MM-YYYY. The input must be a
// real calendar date, not just three dash-separated fields.
func ToFormFormat(date string) (string, error) {
	t, err := time.Parse(StorageLayout, date)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrBadDate, date)
	}
	return t.Format(FormLayout), nil
}

// ToStorageFormat converts DD-MM-YYYY into YYYY-MM-DD.
func ToStorageFormat(date string) (string, error) {
	t, err := time.Parse(FormLayout, date)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrBadDate, date)
	}
	return t.Format(StorageLayout), nil
}

// Today returns the current date in storage format.
func Today() string {
	return time.Now().Format(StorageLayout)
}
