package verify

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dvloznov/ledgersync/internal/console"
	"github.com/dvloznov/ledgersync/internal/store"
)

type mockRepository struct {
	counts    map[string]int64
	entities  []string
	countErr  error
	entityErr error
	calls     []string
}

func (m *mockRepository) CountRows(_ context.Context, table string) (int64, error) {
	m.calls = append(m.calls, "count:"+table)
	return m.counts[table], m.countErr
}

func (m *mockRepository) ListTransactionEntities(context.Context) ([]string, error) {
	m.calls = append(m.calls, "entities")
	return m.entities, m.entityErr
}

func TestHistogram(t *testing.T) {
	tests := []struct {
		name     string
		entities []string
		want     []EntityCount
	}{
		{
			name:     "empty",
			entities: nil,
			want:     []EntityCount{},
		},
		{
			name:     "sorted by count descending",
			entities: []string{"OpenHaul", "Origin", "Origin", "NEEDS REVIEW", "Origin", "NEEDS REVIEW"},
			want: []EntityCount{
				{"Origin", 3},
				{"NEEDS REVIEW", 2},
				{"OpenHaul", 1},
			},
		},
		{
			name:     "ties broken by name",
			entities: []string{"Personal", "Origin", "OpenHaul"},
			want: []EntityCount{
				{"OpenHaul", 1},
				{"Origin", 1},
				{"Personal", 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Histogram(tt.entities)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("bucket %d: got %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestRun(t *testing.T) {
	repo := &mockRepository{
		counts: map[string]int64{
			store.TableMerchantRules:   12,
			store.TableMerchantAliases: 40,
			store.TableTransactions:    3,
		},
		entities: []string{"Origin", "NEEDS REVIEW", "Origin"},
	}
	out := &bytes.Buffer{}

	report, err := Run(context.Background(), repo, console.NewWithWriter(out))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.MerchantRules != 12 || report.MerchantAliases != 40 || report.Transactions != 3 {
		t.Errorf("unexpected counts: %+v", report)
	}
	if len(report.Entities) != 2 || report.Entities[0] != (EntityCount{"Origin", 2}) {
		t.Errorf("unexpected histogram: %v", report.Entities)
	}

	text := out.String()
	for _, want := range []string{"Merchant Rules: 12", "Merchant Aliases: 40", "Transactions: 3", "Origin: 2", "NEEDS REVIEW: 1"} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
	if strings.Index(text, "Origin: 2") > strings.Index(text, "NEEDS REVIEW: 1") {
		t.Errorf("expected most frequent entity first:\n%s", text)
	}
}

func TestRun_Errors(t *testing.T) {
	t.Run("count failure", func(t *testing.T) {
		repo := &mockRepository{countErr: errors.New("relation does not exist")}
		_, err := Run(context.Background(), repo, console.NewWithWriter(&bytes.Buffer{}))
		if err == nil || !strings.Contains(err.Error(), "counting merchant_rules") {
			t.Fatalf("expected count error, got %v", err)
		}
		if len(repo.calls) != 1 {
			t.Errorf("expected to stop after first failure, got calls %v", repo.calls)
		}
	})

	t.Run("entity failure", func(t *testing.T) {
		repo := &mockRepository{entityErr: errors.New("timeout")}
		_, err := Run(context.Background(), repo, console.NewWithWriter(&bytes.Buffer{}))
		if err == nil || !strings.Contains(err.Error(), "listing transaction entities") {
			t.Fatalf("expected entity error, got %v", err)
		}
	})
}
