package ledger

import "errors"

var ErrLoad = errors.New("failed to load stored data")
