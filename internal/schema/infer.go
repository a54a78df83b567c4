package schema

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"csveng/internal/value"
)

// InferOptions configures schema inference, per §4.1 "Schema inference".
type InferOptions struct {
	// SampleRows caps how many records are read; 0 means a full scan.
	SampleRows int

	// ReportInvalid enables the majority-vote tolerance for Integer and
	// Boolean promotion: a small fraction of non-conforming rows is
	// still promoted rather than falling through the cascade.
	ReportInvalid bool

	// Tolerance is the maximum tolerated failure ratio when
	// ReportInvalid is set. Zero selects the default of 5%.
	Tolerance float64

	// CurrencyThreshold is the symbol-bearing ratio a Decimal-shaped
	// column must cross to be promoted to Currency instead. Zero
	// selects the default of 50%.
	CurrencyThreshold float64

	Placeholder PlaceholderPolicy
}

func (o InferOptions) tolerance() float64 {
	if o.Tolerance <= 0 {
		return 0.05
	}
	return o.Tolerance
}

func (o InferOptions) currencyThreshold() float64 {
	if o.CurrencyThreshold <= 0 {
		return 0.5
	}
	return o.CurrencyThreshold
}

// RowReader pulls one more raw row for inference to sample. ok is false
// with a nil error at end of input.
type RowReader func() (row []string, ok bool, err error)

// candidate accumulates evidence for one column across sampled rows.
// Integer and Boolean track failure counts so majority-vote tolerance
// can be applied at decide time; the remaining candidates use a strict
// AND-reduction the way the original schema inference does.
type candidate struct {
	possibleFloat    bool
	possibleDate     bool
	possibleDateTime bool
	possibleTime     bool
	possibleGuid     bool
	possibleDecimal  bool
	possibleCurrency bool

	maxPrecision int
	maxScale     int

	hadLeadingZero bool

	totalNonEmpty        int
	currencySymbolTokens int
	integerFailures      int
	booleanFailures      int
}

func newCandidate() *candidate {
	return &candidate{
		possibleFloat: true, possibleDate: true, possibleDateTime: true,
		possibleTime: true, possibleGuid: true, possibleDecimal: true, possibleCurrency: true,
	}
}

// hasLeadingZeroToken reports whether a numeric-looking token carries a
// leading zero digit, e.g. "007" — per §4.1, such a column is excluded
// from both Integer and Boolean promotion (Boolean extension decided in
// DESIGN.md's Open Questions since the spec itself only names Integer).
func hasLeadingZeroToken(raw string) bool {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "+")
	s = strings.TrimPrefix(s, "-")
	return len(s) >= 2 && s[0] == '0' && s[1] >= '0' && s[1] <= '9'
}

func (c *candidate) update(raw string) {
	c.totalNonEmpty++

	if hasLeadingZeroToken(raw) {
		c.hadLeadingZero = true
	}

	if _, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64); err != nil {
		c.integerFailures++
	}

	if !value.IsBooleanToken(raw) {
		c.booleanFailures++
	}

	if c.possibleFloat {
		if _, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err != nil {
			c.possibleFloat = false
		}
	}
	if c.possibleDate {
		if _, err := value.ParseDate(strings.TrimSpace(raw)); err != nil {
			c.possibleDate = false
		}
	}
	if c.possibleDateTime {
		if _, err := value.ParseDateTime(strings.TrimSpace(raw)); err != nil {
			c.possibleDateTime = false
		}
	}
	if c.possibleTime {
		if _, err := value.ParseClockTime(strings.TrimSpace(raw)); err != nil {
			c.possibleTime = false
		}
	}
	if c.possibleGuid {
		trimmed := strings.Trim(strings.TrimSpace(raw), "{}")
		if _, err := uuid.Parse(trimmed); err != nil {
			c.possibleGuid = false
		}
	}

	shape := value.ClassifyNumericToken(raw)
	if !shape.IsNumeric {
		c.possibleDecimal = false
		c.possibleCurrency = false
		return
	}
	if shape.Precision > c.maxPrecision {
		c.maxPrecision = shape.Precision
	}
	if shape.Scale > c.maxScale {
		c.maxScale = shape.Scale
	}
	if shape.HadCurrencySymbol || shape.HadParenNegative {
		c.currencySymbolTokens++
	}
	if shape.Scale != 0 && shape.Scale != 2 && shape.Scale != 4 {
		c.possibleCurrency = false
	}
}

func (c *candidate) tolerated(failures int, opts InferOptions) bool {
	if c.totalNonEmpty == 0 {
		return false
	}
	if failures == 0 {
		return true
	}
	if !opts.ReportInvalid {
		return false
	}
	return float64(failures)/float64(c.totalNonEmpty) <= opts.tolerance()
}

func clampPrecision(p int) int {
	if p > value.MaxDecimalPrecision {
		return value.MaxDecimalPrecision
	}
	if p == 0 {
		return 1
	}
	return p
}

func currencyScale(observedMax int) int {
	if observedMax <= 2 {
		return 2
	}
	return 4
}

// decide applies the promotion cascade from §4.1: Boolean, then
// Integer, then Decimal/Currency, then Date/DateTime/Time/Guid, falling
// back to String.
func (c *candidate) decide(opts InferOptions) value.Type {
	if c.totalNonEmpty == 0 {
		return stringType()
	}
	if !c.hadLeadingZero && c.tolerated(c.booleanFailures, opts) {
		return value.Type{Kind: value.KindBoolean}
	}
	if !c.hadLeadingZero && c.tolerated(c.integerFailures, opts) {
		return value.Type{Kind: value.KindInteger}
	}
	if c.possibleDecimal {
		ratio := float64(c.currencySymbolTokens) / float64(c.totalNonEmpty)
		if c.possibleCurrency && c.currencySymbolTokens > 0 && ratio >= opts.currencyThreshold() {
			return value.Type{Kind: value.KindCurrency, Scale: currencyScale(c.maxScale)}
		}
		return value.Type{Kind: value.KindDecimal, Precision: clampPrecision(c.maxPrecision), Scale: c.maxScale}
	}
	if c.possibleCurrency && c.currencySymbolTokens > 0 {
		return value.Type{Kind: value.KindCurrency, Scale: currencyScale(c.maxScale)}
	}
	if c.possibleDate {
		return value.Type{Kind: value.KindDate}
	}
	if c.possibleDateTime {
		return value.Type{Kind: value.KindDateTime}
	}
	if c.possibleTime {
		return value.Type{Kind: value.KindTime}
	}
	if c.possibleGuid {
		return value.Type{Kind: value.KindGuid}
	}
	return stringType()
}

// InferSchema samples rows from next (headers already consumed by the
// caller) and returns the inferred Schema along with a per-column
// placeholder tally, per §4.1 "Schema inference".
func InferSchema(headers []string, next RowReader, opts InferOptions) (Schema, *PlaceholderTally, error) {
	candidates := make([]*candidate, len(headers))
	for i := range candidates {
		candidates[i] = newCandidate()
	}
	tally := NewPlaceholderTally()

	processed := 0
	for {
		if opts.SampleRows > 0 && processed >= opts.SampleRows {
			break
		}
		row, ok, err := next()
		if err != nil {
			return Schema{}, nil, err
		}
		if !ok {
			break
		}
		for i, field := range row {
			if i >= len(candidates) {
				break
			}
			if field == "" {
				continue
			}
			if opts.Placeholder.IsPlaceholder(field) {
				tally.Record(i)
				continue
			}
			candidates[i].update(field)
		}
		processed++
	}

	columns := make([]Column, len(headers))
	for i, h := range headers {
		columns[i] = NewColumn(h, candidates[i].decide(opts))
	}
	return Schema{SchemaVersion: CurrentSchemaVersion, HasHeaders: true, Columns: columns}, tally, nil
}
