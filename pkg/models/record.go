package models

import (
	"encoding/json"
	"fmt"

	"github.com/pocketledger/backend/internal/types"
	"github.com/shopspring/decimal"
)

// Record is the plain field mapping form of an entity used for persistence.
type Record map[string]any

// Record keys.
const (
	KeyDate        = "date"
	KeyAmount      = "amount"
	KeyCategory    = "category"
	KeyDescription = "description"
	KeyCategories  = "categories"
)

// Decimal coerces a stored amount into a decimal.
//
// Amounts written by this package are decimals. Records that went through
// an encoder come back as strings, json.Numbers or floats.
func Decimal(v any) (decimal.Decimal, error) {
	switch a := v.(type) {
	case decimal.Decimal:
		return a, nil
	case string:
		return decimal.NewFromString(a)
	case json.Number:
		return decimal.NewFromString(a.String())
	case float64:
		return decimal.NewFromFloat(a), nil
	case float32:
		return decimal.NewFromFloat32(a), nil
	case int:
		return decimal.NewFromInt(int64(a)), nil
	case int64:
		return decimal.NewFromInt(a), nil
	default:
		return decimal.Zero, fmt.Errorf("unsupported amount type %T", v)
	}
}

func (r Record) amount(key string) (decimal.Decimal, error) {
	v, ok := r[key]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: missing %s", ErrInvalidRecord, key)
	}

	d, err := Decimal(v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s: %w", ErrInvalidRecord, key, err)
	}

	return d, nil
}

func (r Record) text(key string) (string, error) {
	v, ok := r[key]
	if !ok {
		return "", fmt.Errorf("%w: missing %s", ErrInvalidRecord, key)
	}

	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s is a %T, not a string", ErrInvalidRecord, key, v)
	}

	return s, nil
}

func (r Record) date(key string) (types.Date, error) {
	s, err := r.text(key)
	if err != nil {
		return types.Date{}, err
	}

	// The zero Date is written as an empty string
	if s == "" {
		return types.Date{}, nil
	}

	d, err := types.ParseDate(s)
	if err != nil {
		return types.Date{}, fmt.Errorf("%w: %s: %w", ErrInvalidRecord, key, err)
	}

	return d, nil
}
