// Package verify reports row counts and the entity breakdown after a migration.
package verify

import (
	"context"
	"fmt"
	"sort"

	"github.com/dvloznov/ledgersync/internal/console"
	"github.com/dvloznov/ledgersync/internal/logger"
	"github.com/dvloznov/ledgersync/internal/store"
)

// Repository is the read-only surface the verifier queries.
type Repository interface {
	CountRows(ctx context.Context, table string) (int64, error)
	ListTransactionEntities(ctx context.Context) ([]string, error)
}

// EntityCount is one histogram bucket.
type EntityCount struct {
	Entity string
	Count  int
}

// Report is the verifier's output.
type Report struct {
	MerchantRules   int64
	MerchantAliases int64
	Transactions    int64
	Entities        []EntityCount
}

var tableLabels = map[string]string{
	store.TableMerchantRules:   "Merchant Rules",
	store.TableMerchantAliases: "Merchant Aliases",
	store.TableTransactions:    "Transactions",
}

// Run counts every ledger table and builds the transaction entity histogram.
func Run(ctx context.Context, repo Repository, con *console.Console) (*Report, error) {
	log := logger.FromContext(ctx)
	report := &Report{}

	con.Heading("Verification:")
	for _, table := range store.Tables {
		n, err := repo.CountRows(ctx, table)
		if err != nil {
			return nil, fmt.Errorf("Run: counting %s: %w", table, err)
		}

		switch table {
		case store.TableMerchantRules:
			report.MerchantRules = n
		case store.TableMerchantAliases:
			report.MerchantAliases = n
		case store.TableTransactions:
			report.Transactions = n
		}
		con.Plain("  %s: %d", tableLabels[table], n)
	}

	entities, err := repo.ListTransactionEntities(ctx)
	if err != nil {
		return nil, fmt.Errorf("Run: listing transaction entities: %w", err)
	}
	report.Entities = Histogram(entities)

	con.Heading("Transactions by Entity:")
	for _, e := range report.Entities {
		con.Plain("  %s: %d", e.Entity, e.Count)
	}

	log.Info().
		Int64("merchant_rules", report.MerchantRules).
		Int64("merchant_aliases", report.MerchantAliases).
		Int64("transactions", report.Transactions).
		Int("entities", len(report.Entities)).
		Msg("Verification complete")

	return report, nil
}

// Histogram counts occurrences of each entity, most frequent first. Ties are
// ordered by name so the output is stable.
func Histogram(entities []string) []EntityCount {
	counts := make(map[string]int)
	for _, e := range entities {
		counts[e]++
	}

	out := make([]EntityCount, 0, len(counts))
	for e, n := range counts {
		out = append(out, EntityCount{Entity: e, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Entity < out[j].Entity
	})
	return out
}
