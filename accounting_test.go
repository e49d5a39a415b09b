package cgt

import (
	"testing"
)

var btc = Asset{Group: "exchange-b", Symbol: "BTC", Kind: Crypto}

func TestProcess(t *testing.T) {
	txs := []Transaction{
		// TSLA: plain buy then sell, no matching.
		tx("2020-01-01", Buy, 10, 2),
		tx("2020-06-01", Sell, 5, 5),
		// BTC: the same-day acquisition offsets part of the disposal.
		NewTransaction(MustParse("2020-02-01"), Buy, btc, Q(2), M(100, GBP)),
		NewTransaction(MustParse("2020-05-01"), Buy, btc, Q(1), M(300, GBP)),
		NewTransaction(MustParse("2020-05-01"), Sell, btc, Q(2), M(400, GBP)),
	}

	holdings, err := Process(txs, UKTaxPeriod)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	if len(holdings) != 2 {
		t.Fatalf("want 2 holdings, got %d", len(holdings))
	}
	// Sorted by asset key: broker-a before exchange-b.
	if holdings[0].Asset != tsla || holdings[1].Asset != btc {
		t.Fatalf("unexpected holding order: %v, %v", holdings[0].Asset, holdings[1].Asset)
	}

	// TSLA: (5.00 - 2.00) x 5 = 15.00 gain.
	if len(holdings[0].Records) != 1 {
		t.Fatalf("TSLA: want 1 record, got %d", len(holdings[0].Records))
	}
	if r := holdings[0].Records[0]; !r.IsGain() || !r.Amount.Equal(M(15, GBP)) {
		t.Errorf("TSLA: want GAIN 15.00, got %s", r)
	}

	// BTC: same-day nets SELL 2 against BUY 1, leaving SELL 1 disposed from
	// a pool of 2 at 100.00: (400.00 - 100.00) x 1 = 300.00 gain.
	if len(holdings[1].Records) != 1 {
		t.Fatalf("BTC: want 1 record, got %d", len(holdings[1].Records))
	}
	if r := holdings[1].Records[0]; !r.IsGain() || !r.Amount.Equal(M(300, GBP)) {
		t.Errorf("BTC: want GAIN 300.00, got %s", r)
	}
	last, ok := holdings[1].Latest()
	if !ok || !last.Volume.Equal(Q(1)) {
		t.Errorf("BTC: want 1 unit left in the pool, got %v", last)
	}
}

func TestProcessOversell(t *testing.T) {
	txs := []Transaction{
		tx("2020-01-01", Buy, 10, 2),
		tx("2020-06-01", Sell, 15, 5),
	}
	if _, err := Process(txs, UKTaxPeriod); err == nil {
		t.Fatal("want an error disposing more than the pool holds")
	}
}

func TestProcessEmpty(t *testing.T) {
	holdings, err := Process(nil, UKTaxPeriod)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(holdings) != 0 {
		t.Errorf("want no holdings, got %v", holdings)
	}
}

func TestProcessDeterministicOrder(t *testing.T) {
	var txs []Transaction
	for _, a := range []Asset{btc, tsla, {Group: "broker-a", Symbol: "AAPL", Kind: Equity}} {
		txs = append(txs, NewTransaction(MustParse("2020-01-01"), Buy, a, Q(1), M(10, GBP)))
	}

	first, err := Process(txs, UKTaxPeriod)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	for range 10 {
		again, err := Process(txs, UKTaxPeriod)
		if err != nil {
			t.Fatalf("Process: %v", err)
		}
		for i := range first {
			if first[i].Asset != again[i].Asset {
				t.Fatalf("holding order is not deterministic: %v vs %v", first[i].Asset, again[i].Asset)
			}
		}
	}
}
