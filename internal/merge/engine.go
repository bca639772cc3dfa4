// Package merge implements the reconciliation pass that merges a locally
// cached collection of entities with the same owner's remote collection.
//
// The algorithm is last-write-wins on the entity's update timestamp, with
// the local side winning ties. It never merges fields inside an entity:
// whichever side wins contributes its whole record. Deletions are not
// tracked here; there are no tombstones, so a stale cache can resurrect a
// record deleted elsewhere. That gap is deliberate and must be solved by
// the embedding system if it matters there.
package merge

import (
	"context"
	"time"

	"github.com/dspolyakov/buildpad/internal/logging"
)

// Entity is the minimal view the engine needs of a syncable record.
type Entity interface {
	// EntityID returns the stable identifier, unique within one owner's
	// collection on each side.
	EntityID() string

	// ModifiedAt returns the last-write timestamp. Whoever mutates the
	// record sets it; the engine only compares it.
	ModifiedAt() time.Time
}

// Store is the owner-scoped remote collection the engine reconciles
// against. Implementations must return errors rather than panic so a pass
// can degrade instead of aborting, and Upsert must be idempotent by id.
type Store[R any] interface {
	// FetchAll returns every record belonging to ownerID, ordered by
	// update timestamp descending. The engine does not rely on the order.
	FetchAll(ctx context.Context, ownerID string) ([]R, error)

	// Upsert creates or overwrites the record, keyed by its id.
	Upsert(ctx context.Context, ownerID string, record R) error

	// Delete removes the record with the given id. The engine never calls
	// it; deletion is caller-initiated (see services.SyncService).
	Delete(ctx context.Context, id string) error
}

// Codec translates between the local entity shape and the remote record
// layout for one entity kind.
type Codec[L Entity, R any] interface {
	// ToRemote renames fields into the remote layout and attaches the
	// owner id. It must not set create/update timestamps; the store
	// stamps those on write.
	ToRemote(ownerID string, local L) R

	// FromRemote renames fields back, defaulting every optional nested
	// collection to empty. A record missing its id or update timestamp
	// returns common.ErrMalformedRecord.
	FromRemote(record R) (L, error)
}

// Engine runs reconciliation passes for one entity kind. It is stateless
// between passes and safe for use from a single pass at a time per owner;
// callers must not overlap passes for the same owner (see SyncService).
type Engine[L Entity, R any] struct {
	store Store[R]
	codec Codec[L, R]
	log   logging.Logger
}

func NewEngine[L Entity, R any](store Store[R], codec Codec[L, R], log logging.Logger) *Engine[L, R] {
	return &Engine[L, R]{store: store, codec: codec, log: log}
}

// Reconcile merges the owner's local entities with the remote collection
// and uploads every record the local side won. It always returns a
// best-effort merged collection; remote failures are folded into the
// Report instead of an error.
//
// Outcome per id:
//   - local only            -> keep local, upload it
//   - both, local not older -> keep local, upload it (local wins ties)
//   - both, remote newer    -> keep remote, no upload
//   - remote only           -> keep remote unchanged, no upload
func (e *Engine[L, R]) Reconcile(ctx context.Context, ownerID string, local []L) ([]L, Report) {
	var report Report

	records, err := e.store.FetchAll(ctx, ownerID)
	if err != nil {
		// Degrade to an empty remote set. Every local record will look
		// local-only this pass and remote-only records stay invisible.
		e.log.Warn(ctx, "remote fetch failed, treating remote as empty",
			"owner", ownerID, "error", err)
		report.FetchFailed = true
		records = nil
	}
	report.Fetched = len(records)

	index := make(map[string]L, len(records))
	remote := make([]L, 0, len(records))
	for _, rec := range records {
		l, err := e.codec.FromRemote(rec)
		if err != nil {
			report.Malformed++
			continue
		}
		if _, dup := index[l.EntityID()]; dup {
			// The store contract guarantees unique ids; drop extras so
			// the merged result cannot contain duplicates.
			report.Malformed++
			continue
		}
		index[l.EntityID()] = l
		remote = append(remote, l)
	}
	if report.Malformed > 0 {
		e.log.Warn(ctx, "skipped malformed remote records",
			"owner", ownerID, "count", report.Malformed)
	}

	merged := make([]L, 0, len(local)+len(remote))
	var uploads []L
	seen := make(map[string]struct{}, len(local))

	for _, l := range local {
		id := l.EntityID()
		if _, ok := seen[id]; ok {
			e.log.Warn(ctx, "duplicate id in local cache, keeping first",
				"owner", ownerID, "id", id)
			continue
		}
		seen[id] = struct{}{}

		r, ok := index[id]
		if !ok {
			merged = append(merged, l)
			uploads = append(uploads, l)
			continue
		}
		delete(index, id)

		if l.ModifiedAt().Before(r.ModifiedAt()) {
			merged = append(merged, r)
			continue
		}
		merged = append(merged, l)
		uploads = append(uploads, l)
	}

	// Whatever the local loop did not claim is remote-only. Preserve
	// fetch order.
	for _, r := range remote {
		if _, ok := index[r.EntityID()]; ok {
			delete(index, r.EntityID())
			merged = append(merged, r)
		}
	}

	for _, l := range uploads {
		report.UploadsAttempted++
		if err := e.store.Upsert(ctx, ownerID, e.codec.ToRemote(ownerID, l)); err != nil {
			report.UploadsFailed++
			e.log.Warn(ctx, "upload failed",
				"owner", ownerID, "id", l.EntityID(), "error", err)
		}
	}

	return merged, report
}
