package renderer

import (
	"fmt"
	"strings"

	"github.com/gainside/cgt"
)

// TransactionsMarkdown renders a transaction sequence as a table, in the
// order given.
func TransactionsMarkdown(title string, txs []cgt.Transaction) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", title)

	if len(txs) == 0 {
		fmt.Fprint(&b, "No transactions.\n")
		return b.String()
	}

	fmt.Fprintln(&b, "| Date | Side | Asset | Volume | Price |")
	fmt.Fprintln(&b, "|:---|:---|:---|---:|---:|")
	for _, tx := range txs {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			tx.Date, tx.Side, tx.Asset, tx.Volume, tx.Price)
	}

	return b.String()
}
