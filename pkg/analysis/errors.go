package analysis

import "errors"

// ErrNothingToAnalyze is returned when the input holds no records. It signals
// that there is nothing to show, not a failure.
var ErrNothingToAnalyze = errors.New("nothing to analyze")
