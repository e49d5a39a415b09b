// Package renderer turns processing results into markdown reports.
package renderer

import (
	"fmt"
	"strings"

	"github.com/gainside/cgt"
)

// SummaryMarkdown renders the per-tax-year report: every realized record of
// the year, the net taxable income and the tax due under that year's terms.
func SummaryMarkdown(summaries []cgt.YearSummary) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Capital Gains Tax Report\n\n")

	if len(summaries) == 0 {
		fmt.Fprint(&b, "No disposals, nothing to report.\n")
		return b.String()
	}

	for _, s := range summaries {
		fmt.Fprintf(&b, "## Tax Year %s\n\n", s.TaxYear)

		fmt.Fprintln(&b, "| Date | Kind | Amount |")
		fmt.Fprintln(&b, "|:---|:---|---:|")
		for _, r := range s.Records {
			fmt.Fprintf(&b, "| %s | %s | %s |\n", r.Date, r.Kind, r.Signed().SignedString())
		}
		fmt.Fprintf(&b, "| **%s** | **%s** | **%s** |\n\n",
			"Net", s.Net.Kind, s.Net.Signed().SignedString())

		fmt.Fprintf(&b, "Allowance: %s, Rate: %s\n\n", s.Rate.Allowance, s.Rate.Rate)
		fmt.Fprintf(&b, "**Tax to pay: %s**\n\n", s.TaxDue)
	}

	return b.String()
}

// RecordsMarkdown renders every realized gain and loss, grouped per asset.
func RecordsMarkdown(holdings []cgt.Holding) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Realized Gains and Losses\n\n")

	any := false
	for _, h := range holdings {
		if len(h.Records) == 0 {
			continue
		}
		any = true
		fmt.Fprintf(&b, "## %s\n\n", h.Asset)

		fmt.Fprintln(&b, "| Date | Tax Year | Kind | Amount |")
		fmt.Fprintln(&b, "|:---|:---|:---|---:|")
		for _, r := range h.Records {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", r.Date, r.TaxYear, r.Kind, r.Signed().SignedString())
		}
		fmt.Fprintln(&b)
	}
	if !any {
		fmt.Fprint(&b, "No disposals, nothing to report.\n")
	}

	return b.String()
}

// PoolsMarkdown renders the pool snapshot chain of every holding, oldest
// first, ending with the current position.
func PoolsMarkdown(holdings []cgt.Holding) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Section 104 Pools\n\n")

	for _, h := range holdings {
		fmt.Fprintf(&b, "## %s\n\n", h.Asset)

		if len(h.Pools) == 0 {
			fmt.Fprint(&b, "Fully offset within the matching window, no pool was opened.\n\n")
			continue
		}

		fmt.Fprintln(&b, "| # | Date | Volume | Total Cost | Cost / Unit |")
		fmt.Fprintln(&b, "|---:|:---|---:|---:|---:|")
		for _, p := range h.Pools {
			cpu := "n/a"
			if !p.Volume.IsZero() {
				cpu = p.CostPerUnit().String()
			}
			fmt.Fprintf(&b, "| %d | %s | %s | %s | %s |\n", p.Seq, p.Date, p.Volume, p.Cost, cpu)
		}
		fmt.Fprintln(&b)
	}

	return b.String()
}

// EstimateMarkdown renders the unrealized position of every open holding at
// current market prices.
func EstimateMarkdown(estimates []cgt.PositionEstimate) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Unrealized Positions\n\n")

	if len(estimates) == 0 {
		fmt.Fprint(&b, "No open positions.\n")
		return b.String()
	}

	fmt.Fprintln(&b, "| Asset | Volume | Cost / Unit | Price | Market Value | Unrealized | Tax if Disposed |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|---:|---:|")
	for _, e := range estimates {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
			e.Asset,
			e.Pool.Volume,
			e.Pool.CostPerUnit(),
			e.UnitPrice,
			e.MarketValue,
			e.Record.Signed().SignedString(),
			e.TaxIfDisposed,
		)
	}

	return b.String()
}
