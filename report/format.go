// Package report renders analysis results as console text.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Currency formats v rounded to two decimal places with thousands
// separators, e.g. 3500000 → "3,500,000.00".
func Currency(v float64) string {
	d := decimal.NewFromFloat(v).Round(2)
	whole := d.Truncate(0)
	frac := d.Sub(whole).Abs().StringFixed(2)[1:] // ".xx"

	sign := ""
	if d.IsNegative() {
		sign = "-"
		whole = whole.Abs()
	}
	return sign + humanize.Comma(whole.IntPart()) + frac
}

// Amount formats v rounded to the given number of places without separators.
func Amount(v float64, places int32) string {
	return decimal.NewFromFloat(v).StringFixed(places)
}

// Percent formats a fraction as a percentage with the given places.
func Percent(fraction float64, places int32) string {
	return decimal.NewFromFloat(fraction).Mul(decimal.NewFromInt(100)).StringFixed(places) + "%"
}

// printer は最初の書き込みエラーを保持する
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) rule(width int) {
	p.printf("%s\n", strings.Repeat("=", width))
}

func (p *printer) heading(title string) {
	p.printf("\n")
	p.rule(60)
	p.printf("%*s\n", 30+len(title)/2, title)
	p.rule(60)
}
