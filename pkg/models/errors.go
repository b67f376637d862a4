package models

import "errors"

var (
	ErrInvalidRecord   = errors.New("invalid record")
	ErrNegativeCeiling = errors.New("category budget must not be negative")
)
