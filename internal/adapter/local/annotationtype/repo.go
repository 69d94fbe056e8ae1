// Package annotationtype is a local, badger-backed substitute for the REST
// annotation-type repository, used in offline and demo scenarios. The whole
// collection lives under one key as a JSON array of raw records; every
// operation is a snapshot read-modify-write. Fine at annotation-type data
// volumes, not a model for the backend-facing repositories.
//
// GetByParentID on an empty store seeds one placeholder record carrying the
// normalized {"None", none} parent, so only a query for parent "None" sees
// the seeded record; other parent ids still get an empty first result.
package annotationtype

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"time"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/slidelab/pathclient/internal/adapter/rest"
	restann "github.com/slidelab/pathclient/internal/adapter/rest/annotationtype"
	"github.com/slidelab/pathclient/internal/config"
	"github.com/slidelab/pathclient/internal/domain"
)

// storeKey is the single durable entry holding the collection.
var storeKey = []byte("annotation_types")

// Repo is the badger-backed annotation-type repository.
type Repo struct {
	db  *badger.DB
	log *slog.Logger

	// now is swappable for deterministic ids in tests.
	now func() time.Time
}

// Open opens (or creates) the local store described by the configuration.
func Open(cfg config.LocalStoreConfig, log *slog.Logger) (*Repo, error) {
	opts := badger.DefaultOptions(cfg.Path).WithLogger(nil)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("local store: open: %w", err)
	}
	return &Repo{
		db:  db,
		log: log.With("component", "local_annotation_types"),
		now: time.Now,
	}, nil
}

// Close releases the underlying store.
func (r *Repo) Close() error {
	return r.db.Close()
}

// List returns one page of annotation types from the local snapshot.
func (r *Repo) List(ctx context.Context, page rest.Page, _ rest.Sort) ([]*domain.AnnotationType, rest.PageInfo, error) {
	records, err := r.load()
	if err != nil {
		return nil, rest.PageInfo{}, err
	}

	limit, offset := pageBounds(page)
	var window []domain.RawAnnotationType
	if offset < len(records) {
		end := offset + limit
		if end > len(records) {
			end = len(records)
		}
		window = records[offset:end]
	}

	types, err := mapRecords(window)
	if err != nil {
		return nil, rest.PageInfo{}, err
	}

	info := rest.PageInfo{Limit: limit, Offset: offset, HasMore: offset+len(window) < len(records)}
	return types, info, nil
}

// GetByParentID returns every record under the given parent id. A fully
// empty store synthesizes one placeholder record first, so manual testing
// never starts from an empty-state dead end.
func (r *Repo) GetByParentID(ctx context.Context, parentID string) ([]*domain.AnnotationType, error) {
	records, err := r.load()
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		placeholder := r.placeholderRecord()
		if err := r.save([]domain.RawAnnotationType{placeholder}); err != nil {
			return nil, err
		}
		r.log.Info("seeded placeholder annotation type", slog.String("id", placeholder.ID))
		records = []domain.RawAnnotationType{placeholder}
	}

	var matched []domain.RawAnnotationType
	for _, rec := range records {
		if rec.Parent != nil && rec.Parent.ID == parentID {
			matched = append(matched, rec)
		}
	}
	return mapRecords(matched)
}

// GetByID fetches one record by id, yielding domain.ErrNotFound when absent.
func (r *Repo) GetByID(ctx context.Context, id string) (*domain.AnnotationType, error) {
	records, err := r.load()
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if rec.ID == id {
			return domain.NewAnnotationType(rec)
		}
	}
	return nil, fmt.Errorf("annotation type %s: %w", id, domain.ErrNotFound)
}

// Create assigns a time-based unique id and appends the record.
func (r *Repo) Create(ctx context.Context, req restann.CreateRequest) (*domain.AnnotationType, error) {
	if err := rest.ValidateRequest(req); err != nil {
		return nil, fmt.Errorf("create annotation type: %w", err)
	}

	records, err := r.load()
	if err != nil {
		return nil, err
	}

	now := r.now().UTC()
	ts := domain.NewTimestamp(now)
	rec := domain.RawAnnotationType{
		ID:        strconv.FormatInt(now.UnixNano(), 10),
		Name:      req.Name,
		Parent:    req.Parent,
		Type:      req.Type,
		Options:   req.Options,
		Global:    req.Global,
		Required:  req.Required,
		Min:       req.Min,
		Max:       req.Max,
		CreatedAt: &ts,
		UpdatedAt: &ts,
	}
	if req.Description != nil {
		rec.Description = *req.Description
	}
	if req.Color != nil {
		rec.Color = *req.Color
	}
	if rec.Parent == nil {
		rec.Parent = &domain.RawParentRef{ID: "None", Type: domain.ParentTypeNone.String()}
	}

	if err := r.save(append(records, rec)); err != nil {
		return nil, err
	}
	return domain.NewAnnotationType(rec)
}

// Update shallow-merges the partial request into the stored record and
// stamps updated_at.
func (r *Repo) Update(ctx context.Context, id string, req restann.UpdateRequest) error {
	if err := rest.ValidateRequest(req); err != nil {
		return fmt.Errorf("update annotation type %s: %w", id, err)
	}

	records, err := r.load()
	if err != nil {
		return err
	}

	for i := range records {
		if records[i].ID != id {
			continue
		}
		merge(&records[i], req)
		ts := domain.NewTimestamp(r.now().UTC())
		records[i].UpdatedAt = &ts
		return r.save(records)
	}
	return fmt.Errorf("annotation type %s: %w", id, domain.ErrNotFound)
}

// Delete removes one record, yielding domain.ErrNotFound when absent.
func (r *Repo) Delete(ctx context.Context, id string) error {
	records, err := r.load()
	if err != nil {
		return err
	}
	for i := range records {
		if records[i].ID == id {
			return r.save(append(records[:i], records[i+1:]...))
		}
	}
	return fmt.Errorf("annotation type %s: %w", id, domain.ErrNotFound)
}

// BatchDelete removes every listed id that exists; missing ids are skipped,
// matching the backend's batch semantics.
func (r *Repo) BatchDelete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	records, err := r.load()
	if err != nil {
		return err
	}
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	kept := records[:0]
	for _, rec := range records {
		if _, gone := drop[rec.ID]; !gone {
			kept = append(kept, rec)
		}
	}
	return r.save(kept)
}

// Count returns the number of stored records.
func (r *Repo) Count(ctx context.Context) (int, error) {
	records, err := r.load()
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

func (r *Repo) load() ([]domain.RawAnnotationType, error) {
	var records []domain.RawAnnotationType
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(storeKey)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &records)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("local store: load: %w", err)
	}
	sort.SliceStable(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records, nil
}

func (r *Repo) save(records []domain.RawAnnotationType) error {
	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("local store: marshal: %w", err)
	}
	err = r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(storeKey, payload)
	})
	if err != nil {
		return fmt.Errorf("local store: save: %w", err)
	}
	return nil
}

// placeholderRecord is what an empty store hands out so the UI always has
// one schema to draw with.
func (r *Repo) placeholderRecord() domain.RawAnnotationType {
	now := r.now().UTC()
	ts := domain.NewTimestamp(now)
	return domain.RawAnnotationType{
		ID:        strconv.FormatInt(now.UnixNano(), 10),
		Name:      "Region of interest",
		Color:     "#ff0000",
		CreatorID: "local",
		Parent:    &domain.RawParentRef{ID: "None", Type: domain.ParentTypeNone.String()},
		Type:      domain.TagTypeText.String(),
		CreatedAt: &ts,
		UpdatedAt: &ts,
	}
}

func merge(rec *domain.RawAnnotationType, req restann.UpdateRequest) {
	if req.Name != nil {
		rec.Name = *req.Name
	}
	if req.Description != nil {
		rec.Description = *req.Description
	}
	if req.Options != nil {
		rec.Options = req.Options
	}
	if req.Required != nil {
		rec.Required = *req.Required
	}
	if req.Min != nil {
		rec.Min = req.Min
	}
	if req.Max != nil {
		rec.Max = req.Max
	}
	if req.Color != nil {
		rec.Color = *req.Color
	}
}

func pageBounds(page rest.Page) (limit, offset int) {
	limit = page.Limit
	if limit <= 0 {
		limit = rest.DefaultLimit
	}
	offset = page.Offset
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func mapRecords(records []domain.RawAnnotationType) ([]*domain.AnnotationType, error) {
	types := make([]*domain.AnnotationType, 0, len(records))
	for _, rec := range records {
		t, err := domain.NewAnnotationType(rec)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, nil
}
