// Package report renders ledger data and analyses as plain text.
//
// The output is deterministic: amounts always carry two decimals,
// percentages one, and nothing is ever truncated.
package report

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

// Money formats an amount with a dollar sign and exactly two decimals.
// Negative amounts keep their sign after the dollar sign, e.g. "$-20.00".
func Money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// Percent formats a percentage with exactly one decimal, e.g. "85.0%".
func Percent(d decimal.Decimal) string {
	return d.StringFixed(1) + "%"
}

// printer writes lines until the first error and remembers it.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) line(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *printer) blank() {
	p.line("")
}
