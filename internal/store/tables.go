package store

import "fmt"

// Ledger tables.
const (
	TableMerchantRules   = "merchant_rules"
	TableMerchantAliases = "merchant_aliases"
	TableTransactions    = "transactions"
)

// Tables lists the ledger tables in reporting order.
var Tables = []string{TableMerchantRules, TableMerchantAliases, TableTransactions}

// checkTable guards the identifiers that get interpolated into SQL.
func checkTable(table string) error {
	for _, t := range Tables {
		if t == table {
			return nil
		}
	}
	return fmt.Errorf("unknown table %q", table)
}
