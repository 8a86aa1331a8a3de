package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"resumeforge/internal/errors"
	"resumeforge/internal/types"

	"github.com/google/uuid"
)

// MemoryStore keeps resumes in process memory. It is the default backend
// and the one the CLI uses; documents do not survive a restart.
type MemoryStore struct {
	mu      sync.RWMutex
	resumes map[string]*types.Resume
	logger  *errors.Logger
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(logger *errors.Logger) *MemoryStore {
	return &MemoryStore{
		resumes: make(map[string]*types.Resume),
		logger:  logger,
	}
}

func (s *MemoryStore) Create(ctx context.Context, resume *types.Resume) (*types.Resume, error) {
	if resume == nil {
		return nil, errors.NewValidationError(errors.ErrCodeInvalidResume, "resume is required", nil)
	}

	stored := cloneResume(resume)
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	normalizeForStorage(stored)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.resumes[stored.ID]; exists {
		return nil, errors.NewStorageError(errors.ErrCodeStorageFailed,
			fmt.Sprintf("resume %s already exists", stored.ID), nil)
	}
	s.resumes[stored.ID] = stored

	s.logger.Debug("Resume created", "id", stored.ID, "title", stored.Title)
	return cloneResume(stored), nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*types.Resume, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	resume, ok := s.resumes[id]
	if !ok {
		return nil, errors.NewNotFoundError(errors.ErrCodeResumeNotFound,
			fmt.Sprintf("resume %s not found", id), nil)
	}
	return cloneResume(resume), nil
}

func (s *MemoryStore) Update(ctx context.Context, id string, patch map[string]json.RawMessage) (*types.Resume, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.resumes[id]
	if !ok {
		return nil, errors.NewNotFoundError(errors.ErrCodeResumeNotFound,
			fmt.Sprintf("resume %s not found", id), nil)
	}

	merged, err := applyPatch(existing, id, patch)
	if err != nil {
		return nil, err
	}
	normalizeForStorage(merged)
	s.resumes[id] = merged

	s.logger.Debug("Resume updated", "id", id, "patched_fields", len(patch))
	return cloneResume(merged), nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.resumes[id]; !ok {
		return errors.NewNotFoundError(errors.ErrCodeResumeNotFound,
			fmt.Sprintf("resume %s not found", id), nil)
	}
	delete(s.resumes, id)

	s.logger.Debug("Resume deleted", "id", id)
	return nil
}

func (s *MemoryStore) ListAll(ctx context.Context) ([]*types.Resume, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*types.Resume, 0, len(s.resumes))
	for _, resume := range s.resumes {
		result = append(result, cloneResume(resume))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s *MemoryStore) Close() error {
	return nil
}

// cloneResume deep-copies via JSON so callers cannot mutate stored state.
func cloneResume(resume *types.Resume) *types.Resume {
	raw, err := json.Marshal(resume)
	if err != nil {
		// Resume contains only marshalable fields.
		return resume
	}
	var clone types.Resume
	if err := json.Unmarshal(raw, &clone); err != nil {
		return resume
	}
	return &clone
}
