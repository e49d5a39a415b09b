package cgt

import (
	"fmt"
	"maps"
	"slices"
)

// YearSummary is the aggregate tax position for one tax year across all
// assets: the net income record, the applicable rate, and the tax due.
type YearSummary struct {
	TaxYear string
	Records []TaxableRecord // realized records of that year, all assets
	Net     TaxableRecord   // the year's records collapsed into one figure
	Rate    TaxRate
	TaxDue  Money
}

// Summarize groups the realized records of all holdings by tax year and
// computes each year's net taxable income and tax due from the configured
// rate table. A realized record in a year missing from the table is a fatal
// configuration error.
func Summarize(holdings []Holding, rates map[string]TaxRate) ([]YearSummary, error) {
	byYear := make(map[string][]TaxableRecord)
	for _, h := range holdings {
		for _, r := range h.Records {
			byYear[r.TaxYear] = append(byYear[r.TaxYear], r)
		}
	}

	years := slices.Sorted(maps.Keys(byYear))

	summaries := make([]YearSummary, 0, len(years))
	for _, year := range years {
		rate, ok := rates[year]
		if !ok {
			return nil, fmt.Errorf("no tax rate configured for tax year %s", year)
		}
		records := byYear[year]
		net := AsTaxableIncome(year, records)

		taxDue := M(0, GBP)
		if net.IsGain() {
			taxDue = rate.TaxToPay(net.Amount)
		}
		summaries = append(summaries, YearSummary{
			TaxYear: year,
			Records: records,
			Net:     net,
			Rate:    rate,
			TaxDue:  taxDue,
		})
	}
	return summaries, nil
}

// Quoter is the price-quote collaborator: it returns the current unit price
// of an asset in the reporting currency. A provider failure is fatal for the
// estimate that needed it, and for nothing else.
type Quoter interface {
	GetPrice(asset Asset) (Money, error)
}

// PositionEstimate is the unrealized position of one open holding against the
// current market price: what the gain or loss and tax would be if the whole
// pool were disposed of today.
type PositionEstimate struct {
	Asset         Asset
	Pool          Pool
	UnitPrice     Money
	MarketValue   Money
	Record        TaxableRecord // unrealized gain/loss if disposed today
	TaxIfDisposed Money
}

// latestRate returns the rate of the most recent tax year in the table.
// Estimates are hypothetical disposals today, so they are taxed at the
// latest configured year's terms.
func latestRate(rates map[string]TaxRate) (TaxRate, error) {
	years := slices.Sorted(maps.Keys(rates))
	if len(years) == 0 {
		return TaxRate{}, fmt.Errorf("tax rate table is empty")
	}
	return rates[years[len(years)-1]], nil
}

// EstimatePositions computes the unrealized record of every holding with an
// open pool, using the quote collaborator for current prices. The holdings'
// pool chains are never modified.
func EstimatePositions(holdings []Holding, quoter Quoter, period TaxPeriod, rates map[string]TaxRate) ([]PositionEstimate, error) {
	rate, err := latestRate(rates)
	if err != nil {
		return nil, err
	}

	estimates := make([]PositionEstimate, 0, len(holdings))
	for _, h := range holdings {
		pool, ok := h.Latest()
		if !ok || pool.Volume.IsZero() {
			continue
		}

		price, err := quoter.GetPrice(h.Asset)
		if err != nil {
			return nil, fmt.Errorf("quoting %s: %w", h.Asset, err)
		}

		record, err := pool.Estimate(price, period)
		if err != nil {
			return nil, fmt.Errorf("estimating %s: %w", h.Asset, err)
		}

		taxDue := M(0, GBP)
		if record.IsGain() {
			taxDue = rate.TaxToPay(record.Amount)
		}
		estimates = append(estimates, PositionEstimate{
			Asset:         h.Asset,
			Pool:          pool,
			UnitPrice:     price,
			MarketValue:   price.Mul(pool.Volume),
			Record:        record,
			TaxIfDisposed: taxDue,
		})
	}
	return estimates, nil
}
