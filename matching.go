package cgt

import "slices"

// This file implements the HMRC disposal-matching rules that run before
// Section 104 pooling: same-day matching first, then the 30-day
// ("bed and breakfast") rule. Both are the same windowed netting algorithm
// with a different window width, and the 30-day pass always operates on the
// output of the same-day pass.

// thirtyDayWindow is the statutory half-width, in days, of the
// bed-and-breakfast matching window.
const thirtyDayWindow = 30

// Match reduces an asset's raw transaction sequence to the sequence Section
// 104 pooling must consume: sorted ascending by date, with all same-day and
// 30-day matches already netted out.
//
// The caller's slice is never modified; Match works on its own copy.
func Match(txs []Transaction) []Transaction {
	work := make([]Transaction, len(txs))
	copy(work, txs)
	SortByDate(work)

	work = windowPass(work, 0)
	return windowPass(work, thirtyDayWindow)
}

// windowPass nets disposals against acquisitions within a closed window of
// +/- days around each disposal's date.
//
// Every disposal present at the start of the pass is considered exactly once,
// in date order. A merge removes its whole window group from the working
// sequence before appending the survivors, so a record joins at most one
// merge group per considered disposal. A disposal fully consumed by an
// earlier group is gone from the working sequence and is skipped; a disposal
// that survived one only partially carries its residual volume into later
// groups as an ordinary record, never as a disposal of its own (its window
// was already exhausted).
func windowPass(txs []Transaction, days int) []Transaction {
	if len(txs) == 0 {
		return txs
	}

	work := make([]*Transaction, len(txs))
	for i := range txs {
		tx := txs[i]
		work[i] = &tx
	}

	var disposals []*Transaction
	for _, tx := range work {
		if tx.IsSell() {
			disposals = append(disposals, tx)
		}
	}

	for _, disposal := range disposals {
		if !slices.Contains(work, disposal) {
			// Consumed by an earlier merge group.
			continue
		}

		start, end := disposal.Date.Add(-days), disposal.Date.Add(days)

		group := make([]Transaction, 0, 4)
		rest := make([]*Transaction, 0, len(work))
		counterpart := false
		for _, tx := range work {
			if tx.Date.Before(start) || tx.Date.After(end) {
				rest = append(rest, tx)
				continue
			}
			group = append(group, *tx)
			if tx.IsBuy() {
				counterpart = true
			}
		}

		if !counterpart {
			// No acquisition in the window: the disposal stays a pure SELL.
			continue
		}

		work = rest
		for _, tx := range mergeCounterparts(group) {
			work = append(work, &tx)
		}
	}

	out := make([]Transaction, len(work))
	for i, tx := range work {
		out[i] = *tx
	}
	SortByDate(out)
	return out
}

// mergeCounterparts greedily nets acquisitions against disposals within one
// merge group. Each disposal consumes volume from acquisitions in input order
// until either side is exhausted. Survivors keep their own price: a net BUY
// remains at the acquisition's price, a net SELL at the disposal's price.
// Fully consumed records vanish.
func mergeCounterparts(txs []Transaction) []Transaction {
	if len(txs) <= 1 {
		return txs
	}

	var buys, sells []Transaction
	for _, tx := range txs {
		if tx.IsBuy() {
			buys = append(buys, tx)
		} else {
			sells = append(sells, tx)
		}
	}

	for b := range buys {
		for s := range sells {
			if sells[s].Volume.IsZero() {
				continue
			}
			if buys[b].Volume.IsZero() {
				break
			}
			matched := buys[b].Volume
			if sells[s].Volume.LessThan(matched) {
				matched = sells[s].Volume
			}
			buys[b] = buys[b].WithVolume(buys[b].Volume.Sub(matched))
			sells[s] = sells[s].WithVolume(sells[s].Volume.Sub(matched))
		}
	}

	merged := make([]Transaction, 0, len(txs))
	for _, tx := range buys {
		if tx.Volume.IsPositive() {
			merged = append(merged, tx)
		}
	}
	for _, tx := range sells {
		if tx.Volume.IsPositive() {
			merged = append(merged, tx)
		}
	}
	return merged
}
