package cgt

import (
	"encoding/csv"
	"fmt"
	"io"
)

// The ledger is a whitespace-delimited text file with one header line, then
// one transaction per line:
//
//	date side group symbol kind volume taxable_price original_price
//
// Fields may be double-quoted; numeric fields may carry thousands
// separators. Any malformed field aborts the whole run: this is a batch tax
// calculation with no partial-success mode.

const ledgerFieldCount = 8

// DecodeLedger reads every transaction from a ledger stream.
func DecodeLedger(r io.Reader) ([]Transaction, error) {
	reader := csv.NewReader(r)
	reader.Comma = ' '
	// Runs of spaces produce empty fields, stripped per record below.
	reader.FieldsPerRecord = -1

	var txs []Transaction
	header := true
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading ledger: %w", err)
		}
		if header {
			header = false
			continue
		}

		fields := row[:0:0]
		for _, f := range row {
			if f != "" {
				fields = append(fields, f)
			}
		}
		if len(fields) == 0 {
			continue
		}

		tx, err := parseTransaction(fields)
		if err != nil {
			line, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("ledger line %d: %w", line, err)
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// parseTransaction builds one transaction from the non-empty fields of a
// ledger line.
func parseTransaction(fields []string) (Transaction, error) {
	if len(fields) != ledgerFieldCount {
		return Transaction{}, fmt.Errorf("want %d fields, got %d", ledgerFieldCount, len(fields))
	}

	date, err := ParseDate(fields[0])
	if err != nil {
		return Transaction{}, err
	}
	side, err := ParseSide(fields[1])
	if err != nil {
		return Transaction{}, err
	}
	kind, err := ParseAssetKind(fields[4])
	if err != nil {
		return Transaction{}, err
	}
	asset := Asset{Group: fields[2], Symbol: fields[3], Kind: kind}

	volume, err := ParseQuantity(fields[5])
	if err != nil {
		return Transaction{}, fmt.Errorf("invalid volume %q: %w", fields[5], err)
	}
	price, err := ParseMoney(fields[6], GBP)
	if err != nil {
		return Transaction{}, fmt.Errorf("invalid taxable price %q: %w", fields[6], err)
	}
	original, err := ParseMoney(fields[7], "")
	if err != nil {
		return Transaction{}, fmt.Errorf("invalid original price %q: %w", fields[7], err)
	}

	tx := Transaction{
		Date:          date,
		Side:          side,
		Asset:         asset,
		Volume:        volume,
		Price:         price,
		OriginalPrice: original,
	}
	if err := tx.Validate(); err != nil {
		return Transaction{}, err
	}
	return tx, nil
}
