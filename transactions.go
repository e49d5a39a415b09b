package cgt

import (
	"fmt"
	"slices"
)

// Side is the direction of a ledger event.
type Side string

const (
	Buy  Side = "BUY"
	Sell Side = "SELL"
)

// ParseSide parses a transaction direction from its ledger representation.
// Anything but BUY or SELL is a fatal parse error.
func ParseSide(str string) (Side, error) {
	switch Side(str) {
	case Buy, Sell:
		return Side(str), nil
	default:
		return "", fmt.Errorf("transaction side can only be BUY or SELL, got %q", str)
	}
}

// Transaction is one ledger event: an acquisition or a disposal of an asset.
//
// Transactions are value records: the matching passes never adjust a volume in
// place, they derive a new record with WithVolume. A zero-volume transaction is
// fully consumed and is dropped from any working sequence.
type Transaction struct {
	Date   Date
	Side   Side
	Asset  Asset
	Volume Quantity // always >= 0
	Price  Money    // taxable unit price, in the reporting currency
	// OriginalPrice is the unit price in the original trade currency.
	// Informational only: it never enters the tax math.
	OriginalPrice Money
}

// NewTransaction builds a transaction record.
func NewTransaction(date Date, side Side, asset Asset, volume Quantity, price Money) Transaction {
	return Transaction{Date: date, Side: side, Asset: asset, Volume: volume, Price: price}
}

func (t Transaction) IsBuy() bool  { return t.Side == Buy }
func (t Transaction) IsSell() bool { return t.Side == Sell }

// WithVolume returns a copy of the transaction with an adjusted volume.
func (t Transaction) WithVolume(volume Quantity) Transaction {
	t.Volume = volume
	return t
}

func (t Transaction) String() string {
	return fmt.Sprintf("%s %s %s x%s @%s", t.Date, t.Side, t.Asset, t.Volume, t.Price)
}

// Validate checks the transaction invariants on ingestion.
func (t Transaction) Validate() error {
	if t.Side != Buy && t.Side != Sell {
		return fmt.Errorf("transaction side can only be BUY or SELL, got %q", t.Side)
	}
	if t.Volume.IsNegative() {
		return fmt.Errorf("transaction volume must not be negative, got %s", t.Volume)
	}
	if t.Price.IsNegative() {
		return fmt.Errorf("transaction price must not be negative, got %s", t.Price)
	}
	return nil
}

// SortByDate stable-sorts a transaction sequence in ascending date order.
// Same-day transactions keep their relative order.
func SortByDate(txs []Transaction) {
	slices.SortStableFunc(txs, func(a, b Transaction) int {
		switch {
		case a.Date.Before(b.Date):
			return -1
		case a.Date.After(b.Date):
			return 1
		default:
			return 0
		}
	})
}

// GroupByAsset partitions transactions into independent per-asset sequences,
// preserving input order within each group.
func GroupByAsset(txs []Transaction) map[Asset][]Transaction {
	groups := make(map[Asset][]Transaction)
	for _, tx := range txs {
		groups[tx.Asset] = append(groups[tx.Asset], tx)
	}
	return groups
}
