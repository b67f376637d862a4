package importer

import "errors"

var (
	ErrBothAmounts = errors.New("both outflow and inflow are set for the entry")
	ErrNoAmount    = errors.New("no amount is set for the entry")
	ErrNoDate      = errors.New("no date is set for the entry")
	ErrFormat      = errors.New("the file is not a valid CSV file with the columns Date,Category,Description,Outflow,Inflow")
)
