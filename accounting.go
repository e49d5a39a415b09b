package cgt

import (
	"fmt"
	"maps"
	"slices"
)

// Process runs the full matching-and-pooling pipeline over a whole ledger:
// transactions are grouped per asset, each group is reduced by the HMRC
// matching passes, and the reduced sequence is folded into a Section 104
// holding. Groups are independent; they are processed in sorted asset order
// so the result does not depend on map iteration.
func Process(txs []Transaction, period TaxPeriod) ([]Holding, error) {
	groups := GroupByAsset(txs)

	assets := slices.SortedFunc(maps.Keys(groups), Asset.Compare)

	holdings := make([]Holding, 0, len(assets))
	for _, asset := range assets {
		matched := Match(groups[asset])
		holding, err := Hold(asset, matched, period)
		if err != nil {
			return nil, fmt.Errorf("processing %s: %w", asset, err)
		}
		holdings = append(holdings, holding)
	}
	return holdings, nil
}
