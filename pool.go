package cgt

import (
	"fmt"

	"github.com/google/uuid"
)

// Pool is one immutable snapshot of a Section 104 holding for a single asset,
// taken immediately after processing one transaction. Snapshots form an
// append-only chain: Deposit and Dispose return a new snapshot carrying the
// same pool identity and the next sequence index, and never touch the
// receiver.
type Pool struct {
	ID     uuid.UUID // stable across every snapshot of the same pool
	Seq    int       // strictly increases by 1 per transition
	Date   Date
	Asset  Asset
	Volume Quantity
	Cost   Money // total cost basis of the pooled holding
}

// NewPool opens a Section 104 pool from the first transaction of a matched
// sequence. By construction of the matching passes that transaction is a net
// acquisition; a sequence opening on a disposal is a domain error upstream.
func NewPool(tx Transaction) (Pool, error) {
	if !tx.IsBuy() {
		return Pool{}, fmt.Errorf("cannot open a pool with a disposal: %s", tx)
	}
	return Pool{
		ID:     uuid.New(),
		Date:   tx.Date,
		Asset:  tx.Asset,
		Volume: tx.Volume,
		Cost:   tx.Price.Mul(tx.Volume),
	}, nil
}

// check verifies the transition invariants shared by Deposit and Dispose.
func (p Pool) check(tx Transaction, side Side) error {
	if tx.Side != side {
		return fmt.Errorf("only %s transactions allowed here, got %s", side, tx)
	}
	if tx.Asset != p.Asset {
		return fmt.Errorf("pool holds %s, cannot apply transaction for %s", p.Asset, tx.Asset)
	}
	if tx.Date.Before(p.Date) {
		return fmt.Errorf("transaction on %s predates the pool snapshot of %s", tx.Date, p.Date)
	}
	return nil
}

// Deposit folds an acquisition into the pool at its actual cost.
func (p Pool) Deposit(tx Transaction) (Pool, error) {
	if err := p.check(tx, Buy); err != nil {
		return Pool{}, err
	}
	return Pool{
		ID:     p.ID,
		Seq:    p.Seq + 1,
		Date:   tx.Date,
		Asset:  p.Asset,
		Volume: p.Volume.Add(tx.Volume),
		Cost:   p.Cost.Add(tx.Price.Mul(tx.Volume)),
	}, nil
}

// Dispose removes volume from the pool at its weighted-average cost and
// realizes the gain or loss against the disposal price. The remaining holding
// keeps the same per-unit cost.
func (p Pool) Dispose(tx Transaction, period TaxPeriod) (Pool, TaxableRecord, error) {
	if err := p.check(tx, Sell); err != nil {
		return Pool{}, TaxableRecord{}, err
	}
	if p.Volume.LessThan(tx.Volume) {
		return Pool{}, TaxableRecord{}, fmt.Errorf(
			"cannot dispose of %s units of %s, pool only holds %s", tx.Volume, p.Asset, p.Volume)
	}

	costPerUnit := p.Cost.Div(p.Volume)
	volume := p.Volume.Sub(tx.Volume)
	next := Pool{
		ID:     p.ID,
		Seq:    p.Seq + 1,
		Date:   tx.Date,
		Asset:  p.Asset,
		Volume: volume,
		Cost:   costPerUnit.Mul(volume),
	}

	amount := tx.Price.Sub(costPerUnit).Mul(tx.Volume)
	record := newTaxableRecord(tx.Date, period.TaxYear(tx.Date), amount)
	return next, record, nil
}

// Estimate computes the unrealized gain or loss record for disposing of the
// whole pool at the given unit price today. The pool chain itself is left
// untouched: only the record is returned.
func (p Pool) Estimate(price Money, period TaxPeriod) (TaxableRecord, error) {
	sell := NewTransaction(Today(), Sell, p.Asset, p.Volume, price)
	_, record, err := p.Dispose(sell, period)
	return record, err
}

// CostPerUnit returns the pool's weighted-average cost per unit.
func (p Pool) CostPerUnit() Money { return p.Cost.Div(p.Volume) }

func (p Pool) String() string {
	return fmt.Sprintf("Pool(%s on %s: %s units, cost %s)", p.Asset, p.Date, p.Volume, p.Cost)
}

// Holding is the full Section 104 processing result for one asset: the
// chronological snapshot chain and the realized records it emitted.
type Holding struct {
	Asset   Asset
	Pools   []Pool
	Records []TaxableRecord
}

// Latest returns the most recent pool snapshot, or false when the matched
// sequence was empty (a fully offset asset never opens a pool).
func (h Holding) Latest() (Pool, bool) {
	if len(h.Pools) == 0 {
		return Pool{}, false
	}
	return h.Pools[len(h.Pools)-1], true
}

// Hold folds a matched, date-ordered transaction sequence into a Holding.
// The sequence must be the output of Match: any out-of-order, cross-asset or
// unsupported transaction is a domain error and aborts the run.
func Hold(asset Asset, txs []Transaction, period TaxPeriod) (Holding, error) {
	h := Holding{Asset: asset}
	if len(txs) == 0 {
		return h, nil
	}

	pool, err := NewPool(txs[0])
	if err != nil {
		return h, err
	}
	h.Pools = append(h.Pools, pool)

	for _, tx := range txs[1:] {
		switch tx.Side {
		case Buy:
			pool, err = pool.Deposit(tx)
			if err != nil {
				return h, err
			}
		case Sell:
			var record TaxableRecord
			pool, record, err = pool.Dispose(tx, period)
			if err != nil {
				return h, err
			}
			h.Records = append(h.Records, record)
		default:
			return h, fmt.Errorf("unsupported transaction side %q reached pooling", tx.Side)
		}
		h.Pools = append(h.Pools, pool)
	}
	return h, nil
}
