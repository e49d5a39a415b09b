package cgt

import (
	"cmp"
	"fmt"
)

// AssetKind discriminates the kinds of instruments the ledger can hold.
type AssetKind string

const (
	Equity AssetKind = "STOCK"
	Crypto AssetKind = "CRYPTO"
)

// ParseAssetKind parses an asset kind from its ledger representation.
func ParseAssetKind(str string) (AssetKind, error) {
	switch AssetKind(str) {
	case Equity, Crypto:
		return AssetKind(str), nil
	default:
		return "", fmt.Errorf("unknown asset kind %q", str)
	}
}

// Asset identifies a tradable instrument. It is a value type, comparable and
// usable as a map key; two assets are the same holding iff all three fields match.
type Asset struct {
	Group  string    // instrument group, e.g. an exchange or broker account
	Symbol string    // ticker symbol
	Kind   AssetKind // equity vs crypto
}

func (a Asset) String() string {
	return fmt.Sprintf("%s/%s (%s)", a.Group, a.Symbol, a.Kind)
}

// Compare orders assets by group, then symbol, then kind.
func (a Asset) Compare(b Asset) int {
	return cmp.Or(
		cmp.Compare(a.Group, b.Group),
		cmp.Compare(a.Symbol, b.Symbol),
		cmp.Compare(a.Kind, b.Kind),
	)
}
