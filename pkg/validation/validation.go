// Package validation checks raw textual input before it is turned into
// ledger entities.
//
// All functions are pure. Failures are *Error values which unwrap to one
// of the Err* kinds, so callers can tell them apart with errors.Is and show
// the message to the user as is.
package validation

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pocketledger/backend/internal/types"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"golang.org/x/text/unicode/norm"
)

// MaxDescriptionLength is the maximum number of characters in a description.
const MaxDescriptionLength = 100

// AmountMessages holds the user facing messages for amount validation.
type AmountMessages struct {
	NotANumber  string
	NotPositive string
}

var (
	entryAmountMessages = AmountMessages{
		NotANumber:  "Please enter a valid number",
		NotPositive: "Amount must be greater than 0",
	}

	budgetAmountMessages = AmountMessages{
		NotANumber:  "Please enter a valid budget amount",
		NotPositive: "Budget amount must be greater than 0",
	}
)

// ValidateDate reports whether s is acceptable as a date.
//
// The empty string is valid, callers substitute the current day for it.
func ValidateDate(s string) bool {
	if s == "" {
		return true
	}

	_, err := types.ParseDate(s)
	return err == nil
}

// ParseDate returns the Date for s. An empty s yields today.
func ParseDate(s string, today func() types.Date) (types.Date, error) {
	if s == "" {
		return today(), nil
	}

	d, err := types.ParseDate(s)
	if err != nil {
		return types.Date{}, fail(ErrInvalidDate, "Invalid date format. Please use YYYY-MM-DD format.")
	}

	return d, nil
}

// ValidateAmount parses s as a positive decimal number.
func ValidateAmount(s string) (decimal.Decimal, error) {
	return ParseAmount(s, entryAmountMessages)
}

// ValidateBudgetAmount is ValidateAmount with budget specific messages.
func ValidateBudgetAmount(s string) (decimal.Decimal, error) {
	return ParseAmount(s, budgetAmountMessages)
}

// ParseAmount parses s as a positive decimal number, failing with the
// given messages.
func ParseAmount(s string, messages AmountMessages) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fail(ErrNotANumber, messages.NotANumber)
	}

	if !amount.IsPositive() {
		return decimal.Zero, fail(ErrNonPositiveAmount, messages.NotPositive)
	}

	return amount, nil
}

// ValidateDescription trims and normalizes s. It must not be empty and
// must not be longer than MaxDescriptionLength characters.
func ValidateDescription(s string) (string, error) {
	s = normalize(s)
	if s == "" {
		return "", fail(ErrEmptyText, "Description cannot be empty")
	}

	if utf8.RuneCountInString(s) > MaxDescriptionLength {
		return "", fail(ErrTextTooLong, "Description must be less than 100 characters")
	}

	return s, nil
}

// ValidateCategory trims and normalizes s, which must not be empty.
func ValidateCategory(s string) (string, error) {
	s = normalize(s)
	if s == "" {
		return "", fail(ErrEmptyText, "Category cannot be empty")
	}

	return s, nil
}

// ValidateMenuChoice reports whether choice is one of allowed.
func ValidateMenuChoice(choice string, allowed []string) bool {
	return slices.Contains(allowed, choice)
}

// RequireMenuChoice is ValidateMenuChoice returning an error.
func RequireMenuChoice(choice string, allowed []string) error {
	if !ValidateMenuChoice(choice, allowed) {
		return fail(ErrUnknownMenuChoice, "Invalid choice. Please try again.")
	}
	return nil
}

// ValidateIndex parses s as a position in a collection of the given length.
// Valid positions are 0 to length-1.
func ValidateIndex(s string, length int) (int, error) {
	index, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fail(ErrNotANumber, "Please enter a valid number")
	}

	if err := CheckIndex(index, length); err != nil {
		return 0, err
	}

	return index, nil
}

// CheckIndex verifies that index is a position in a collection of the
// given length.
func CheckIndex(index, length int) error {
	if index < 0 || index >= length {
		return fail(ErrIndexOutOfRange, "Index out of range")
	}
	return nil
}

func normalize(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
