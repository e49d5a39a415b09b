package cgt

import (
	"fmt"
	"time"
)

// RecordKind classifies a realized record. The amount itself is always a
// magnitude; the sign lives here.
type RecordKind string

const (
	Gain RecordKind = "GAIN"
	Loss RecordKind = "LOSS"
)

// TaxPeriod is the fiscal-year boundary rule: the month and day on which a
// new tax year starts. The UK year starts on 6 April, so gains on or before
// 5 April belong to the ending year.
type TaxPeriod struct {
	Month time.Month
	Day   int
}

// UKTaxPeriod is the HMRC fiscal boundary.
var UKTaxPeriod = TaxPeriod{Month: time.April, Day: 6}

// TaxYear maps a date to its tax-year label, e.g. "2020/2021".
// A date on or after the boundary day belongs to the year starting then;
// anything earlier belongs to the ending year.
func (p TaxPeriod) TaxYear(d Date) string {
	if d.Month() > p.Month || (d.Month() == p.Month && d.Day() >= p.Day) {
		return fmt.Sprintf("%d/%d", d.Year(), d.Year()+1)
	}
	return fmt.Sprintf("%d/%d", d.Year()-1, d.Year())
}

// TaxableRecord is one realized gain or loss attributed to a tax year.
// It is created exactly once per disposal by the pool, or synthetically by
// AsTaxableIncome when a year's records are netted into a single figure.
type TaxableRecord struct {
	Date    Date // zero for synthetic yearly net records
	TaxYear string
	Kind    RecordKind
	Amount  Money // always non-negative
}

// newTaxableRecord derives the record kind from the sign of the realized
// amount: strictly positive is a gain, anything else a loss.
func newTaxableRecord(date Date, taxYear string, amount Money) TaxableRecord {
	kind := Loss
	if amount.IsPositive() {
		kind = Gain
	}
	return TaxableRecord{Date: date, TaxYear: taxYear, Kind: kind, Amount: amount.Abs()}
}

func (r TaxableRecord) IsGain() bool { return r.Kind == Gain }

// Signed returns the record's amount with its sign restored.
func (r TaxableRecord) Signed() Money {
	if r.IsGain() {
		return r.Amount
	}
	return r.Amount.Neg()
}

func (r TaxableRecord) String() string {
	return fmt.Sprintf("%s %s %s (%s)", r.TaxYear, r.Kind, r.Amount, r.Date)
}

// AsTaxableIncome collapses a tax year's records into one net record.
// Gains count positive, losses negative; the net is truncated toward zero to
// whole pounds (income rounds in the taxpayer's favour), and re-expressed as
// a single GAIN (net >= 0) or LOSS record.
func AsTaxableIncome(taxYear string, records []TaxableRecord) TaxableRecord {
	total := M(0, GBP)
	for _, r := range records {
		total = total.Add(r.Signed())
	}
	total = total.RoundDown()
	kind := Loss
	if !total.IsNegative() {
		kind = Gain
	}
	return TaxableRecord{TaxYear: taxYear, Kind: kind, Amount: total.Abs()}
}

// TaxRate is the flat capital-gains rate and tax-free allowance for one tax
// year, loaded from configuration. The engine never hardcodes either.
type TaxRate struct {
	Rate      Quantity
	Allowance Money
}

// TaxToPay computes the tax due on a year's net capital gain: the gain above
// the allowance, taxed at the flat rate, rounded up to the whole pound.
// Zero when the gain does not exceed the allowance.
func (t TaxRate) TaxToPay(netGain Money) Money {
	taxable := netGain.Sub(t.Allowance)
	if !taxable.IsPositive() {
		return M(0, GBP)
	}
	return taxable.Mul(t.Rate).RoundUp()
}
