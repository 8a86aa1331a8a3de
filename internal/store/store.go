package store

import (
	"context"
	"encoding/json"
	"fmt"

	"resumeforge/internal/common"
	"resumeforge/internal/config"
	"resumeforge/internal/errors"
	"resumeforge/internal/types"
)

// Store is the persistence boundary for resume documents. Update applies a
// shallow merge: top-level fields present in the patch replace the stored
// value, absent fields are kept, and the ID never changes.
type Store interface {
	Create(ctx context.Context, resume *types.Resume) (*types.Resume, error)
	Get(ctx context.Context, id string) (*types.Resume, error)
	Update(ctx context.Context, id string, patch map[string]json.RawMessage) (*types.Resume, error)
	Delete(ctx context.Context, id string) error
	ListAll(ctx context.Context) ([]*types.Resume, error)
	Close() error
}

// New creates a Store for the configured backend.
func New(ctx context.Context, cfg config.StorageConfig, logger *errors.Logger) (Store, error) {
	switch cfg.Backend {
	case "memory", "":
		logger.Debug("Using in-memory resume store")
		return NewMemoryStore(logger), nil
	case "postgres":
		logger.Debug("Using postgres resume store")
		return NewPostgresStore(ctx, cfg, logger)
	default:
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			fmt.Sprintf("unsupported storage backend: %s", cfg.Backend), nil)
	}
}

// normalizeForStorage scrubs a resume before it is written: rich text
// fragments are sanitized and skill ratings are dropped. Ratings feed the
// scorer on input but are never part of the stored document.
func normalizeForStorage(resume *types.Resume) {
	common.SanitizeResume(resume)
	for i := range resume.Skills {
		resume.Skills[i].Rating = 0
	}
}

// applyPatch shallow-merges patch into the stored resume and returns the
// merged document. The merged JSON is re-validated against the resume
// schema so a patch cannot smuggle in fields a full write would reject.
func applyPatch(existing *types.Resume, id string, patch map[string]json.RawMessage) (*types.Resume, error) {
	base, err := json.Marshal(existing)
	if err != nil {
		return nil, errors.NewStorageError(errors.ErrCodeStorageFailed, "failed to encode stored resume", err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(base, &doc); err != nil {
		return nil, errors.NewStorageError(errors.ErrCodeStorageFailed, "failed to decode stored resume", err)
	}

	for key, value := range patch {
		if key == "id" {
			continue
		}
		doc[key] = value
	}
	doc["id"] = json.RawMessage(fmt.Sprintf("%q", id))

	merged, err := json.Marshal(doc)
	if err != nil {
		return nil, errors.NewStorageError(errors.ErrCodeStorageFailed, "failed to encode merged resume", err)
	}

	if err := common.ValidateResumeJSON(merged); err != nil {
		return nil, err
	}

	result, err := common.DecodeResume(merged)
	if err != nil {
		return nil, err
	}
	return result, nil
}
