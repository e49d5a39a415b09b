package renderer

import (
	"strings"
	"testing"

	"github.com/gainside/cgt"
)

func demoHoldings(t *testing.T) []cgt.Holding {
	t.Helper()
	asset := cgt.Asset{Group: "broker-a", Symbol: "TSLA", Kind: cgt.Equity}
	txs := []cgt.Transaction{
		cgt.NewTransaction(cgt.MustParse("2020-01-01"), cgt.Buy, asset, cgt.Q(10), cgt.M(2, cgt.GBP)),
		cgt.NewTransaction(cgt.MustParse("2020-06-01"), cgt.Sell, asset, cgt.Q(5), cgt.M(5, cgt.GBP)),
	}
	holdings, err := cgt.Process(txs, cgt.UKTaxPeriod)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	return holdings
}

func TestSummaryMarkdown(t *testing.T) {
	holdings := demoHoldings(t)
	rates := map[string]cgt.TaxRate{
		"2020/2021": {Rate: cgt.Q(0.2), Allowance: cgt.M(12300, cgt.GBP)},
	}
	summaries, err := cgt.Summarize(holdings, rates)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}

	md := SummaryMarkdown(summaries)

	for _, want := range []string{
		"# Capital Gains Tax Report",
		"## Tax Year 2020/2021",
		"| Date | Kind | Amount |",
		"GAIN",
		"Tax to pay",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("summary missing %q:\n%s", want, md)
		}
	}
}

func TestSummaryMarkdownEmpty(t *testing.T) {
	md := SummaryMarkdown(nil)
	if !strings.Contains(md, "nothing to report") {
		t.Errorf("empty summary should say so:\n%s", md)
	}
}

func TestRecordsMarkdown(t *testing.T) {
	md := RecordsMarkdown(demoHoldings(t))

	for _, want := range []string{
		"## broker-a/TSLA (STOCK)",
		"2020/2021",
		"2020-06-01",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("records missing %q:\n%s", want, md)
		}
	}
}

func TestPoolsMarkdown(t *testing.T) {
	md := PoolsMarkdown(demoHoldings(t))

	for _, want := range []string{
		"# Section 104 Pools",
		"## broker-a/TSLA (STOCK)",
		"| 0 | 2020-01-01 |",
		"| 1 | 2020-06-01 |",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("pools missing %q:\n%s", want, md)
		}
	}
}

func TestEstimateMarkdown(t *testing.T) {
	holdings := demoHoldings(t)
	pool, ok := holdings[0].Latest()
	if !ok {
		t.Fatal("want an open pool")
	}
	record, err := pool.Estimate(cgt.M(4, cgt.GBP), cgt.UKTaxPeriod)
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}

	md := EstimateMarkdown([]cgt.PositionEstimate{{
		Asset:         holdings[0].Asset,
		Pool:          pool,
		UnitPrice:     cgt.M(4, cgt.GBP),
		MarketValue:   cgt.M(20, cgt.GBP),
		Record:        record,
		TaxIfDisposed: cgt.M(0, cgt.GBP),
	}})

	for _, want := range []string{
		"# Unrealized Positions",
		"broker-a/TSLA (STOCK)",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("estimate missing %q:\n%s", want, md)
		}
	}
}

func TestEstimateMarkdownEmpty(t *testing.T) {
	if md := EstimateMarkdown(nil); !strings.Contains(md, "No open positions") {
		t.Errorf("empty estimate should say so:\n%s", md)
	}
}

func TestTransactionsMarkdown(t *testing.T) {
	asset := cgt.Asset{Group: "broker-a", Symbol: "TSLA", Kind: cgt.Equity}
	md := TransactionsMarkdown("Ledger", []cgt.Transaction{
		cgt.NewTransaction(cgt.MustParse("2020-01-01"), cgt.Buy, asset, cgt.Q(10), cgt.M(2, cgt.GBP)),
	})

	for _, want := range []string{"# Ledger", "BUY", "2020-01-01"} {
		if !strings.Contains(md, want) {
			t.Errorf("transactions missing %q:\n%s", want, md)
		}
	}

	if md := TransactionsMarkdown("Ledger", nil); !strings.Contains(md, "No transactions") {
		t.Errorf("empty listing should say so:\n%s", md)
	}
}
