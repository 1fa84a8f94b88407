package sink

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/justapithecus/lode/lode"

	"github.com/pithecene-io/ezcrash/report"
)

// ArchivePrefix is the top-level prefix of archived records.
const ArchivePrefix = "crashes"

// ArchiveFile is the object name of an archived record.
const ArchiveFile = "record.msgpack"

// Archive stores the structured record of each report in a lode store.
// Records land at Hive-partitioned paths:
//
//	crashes/day=<YYYY-MM-DD>/incident=<id>/record.msgpack
type Archive struct {
	storeFactory lode.StoreFactory

	storeOnce sync.Once
	store     lode.Store
	storeErr  error
}

// Verify Archive implements Sink.
var _ Sink = (*Archive)(nil)

// NewArchive creates an archive sink rooted at a local directory.
// The directory is created on first delivery.
func NewArchive(root string) *Archive {
	return NewArchiveWithFactory(func() (lode.Store, error) {
		if err := os.MkdirAll(root, 0o755); err != nil {
			return nil, err
		}
		return lode.NewFSFactory(root)()
	})
}

// NewArchiveWithFactory creates an archive sink with a custom store factory.
// Use lode.NewMemoryFactory() for testing.
func NewArchiveWithFactory(factory lode.StoreFactory) *Archive {
	return &Archive{storeFactory: factory}
}

// Name returns "archive".
func (a *Archive) Name() string { return NameArchive }

// Deliver encodes the record with msgpack and puts it at its archive path.
// A record without an incident id is given a fresh one.
func (a *Archive) Deliver(ctx context.Context, r *report.Report) error {
	store, err := a.getOrCreateStore()
	if err != nil {
		return wrapStorageError("init", "", err)
	}

	rec := r.Record
	if rec.IncidentID == "" {
		rec.IncidentID = uuid.NewString()
	}
	data, err := report.EncodeRecord(&rec)
	if err != nil {
		return err
	}

	path := ArchivePath(&rec)
	if err := store.Put(ctx, path, bytes.NewReader(data)); err != nil {
		return wrapStorageError("write", path, err)
	}
	return nil
}

// getOrCreateStore lazily initializes the store from the factory.
func (a *Archive) getOrCreateStore() (lode.Store, error) {
	a.storeOnce.Do(func() {
		a.store, a.storeErr = a.storeFactory()
	})
	return a.store, a.storeErr
}

// ArchivePath computes the storage path of a record.
// Records without a parseable timestamp are filed under day=unknown.
func ArchivePath(rec *report.Record) string {
	day := "unknown"
	if ts, err := time.Parse(time.RFC3339Nano, rec.Timestamp); err == nil {
		day = ts.UTC().Format(time.DateOnly)
	}
	return fmt.Sprintf("%s/day=%s/incident=%s/%s", ArchivePrefix, day, rec.IncidentID, ArchiveFile)
}
