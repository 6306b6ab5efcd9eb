// Package snapshot archives raw worksheet contents to Cloud Storage so a
// migration can be audited against exactly what the sheet held.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/dvloznov/ledgersync/internal/logger"
	"github.com/dvloznov/ledgersync/internal/sheets"
)

// stampLayout names the per-run folder.
const stampLayout = "20060102T150405Z"

// Archiver writes one JSON object per worksheet under a shared run folder.
type Archiver struct {
	writer ObjectWriter
	bucket string
	prefix string
	runAt  time.Time
}

// Document is the JSON body of a worksheet snapshot.
type Document struct {
	Worksheet string          `json:"worksheet"`
	TakenAt   time.Time       `json:"taken_at"`
	Rows      []sheets.Record `json:"rows"`
}

// NewArchiver creates an Archiver whose objects land under prefix/<runAt in UTC>/.
func NewArchiver(writer ObjectWriter, bucket, prefix string, runAt time.Time) *Archiver {
	return &Archiver{
		writer: writer,
		bucket: bucket,
		prefix: prefix,
		runAt:  runAt.UTC().Truncate(time.Second),
	}
}

// Snapshot uploads records as gs://bucket/prefix/<stamp>/<worksheet>.json.
func (a *Archiver) Snapshot(ctx context.Context, worksheet string, records []sheets.Record) error {
	data, err := json.Marshal(Document{Worksheet: worksheet, TakenAt: a.runAt, Rows: records})
	if err != nil {
		return fmt.Errorf("Snapshot: encoding %q: %w", worksheet, err)
	}

	object := ObjectName(a.prefix, a.runAt.Format(stampLayout), worksheet)
	if err := a.writer.WriteObject(ctx, a.bucket, object, "application/json", data); err != nil {
		return fmt.Errorf("Snapshot: %w", err)
	}

	log := logger.FromContext(ctx)
	log.Info().
		Str("sheet", worksheet).
		Str("uri", URI(a.bucket, object)).
		Int("rows", len(records)).
		Msg("Snapshot written")
	return nil
}

// ObjectName builds prefix/stamp/<worksheet slug>.json.
func ObjectName(prefix, stamp, worksheet string) string {
	return path.Join(prefix, stamp, slug(worksheet)+".json")
}

// slug lowercases name and joins its words with dashes.
func slug(name string) string {
	fields := strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
	return strings.Join(fields, "-")
}
