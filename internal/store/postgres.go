package store

import (
	"context"
	"encoding/json"
	"fmt"

	"resumeforge/internal/config"
	"resumeforge/internal/errors"
	"resumeforge/internal/types"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createResumesTable = `
CREATE TABLE IF NOT EXISTS resumes (
    id         TEXT PRIMARY KEY,
    doc        JSONB NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PostgresStore persists resumes as JSONB documents in a single table.
type PostgresStore struct {
	pool   *pgxpool.Pool
	logger *errors.Logger
}

// NewPostgresStore connects a pgx pool using the configured DSN and pool
// limits, and bootstraps the schema when migrate.autoCreate is set.
func NewPostgresStore(ctx context.Context, cfg config.StorageConfig, logger *errors.Logger) (*PostgresStore, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig, "invalid postgres DSN", err)
	}

	if cfg.Pool.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Pool.MaxConns
	}
	if cfg.Pool.MinConns > 0 {
		poolConfig.MinConns = cfg.Pool.MinConns
	}
	if cfg.Pool.MaxConnLifetime > 0 {
		poolConfig.MaxConnLifetime = cfg.Pool.MaxConnLifetime
	}
	if cfg.Pool.MaxConnIdleTime > 0 {
		poolConfig.MaxConnIdleTime = cfg.Pool.MaxConnIdleTime
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, errors.NewStorageError(errors.ErrCodeStorageFailed, "failed to create postgres pool", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.NewStorageError(errors.ErrCodeStorageFailed, "failed to connect to postgres", err)
	}

	store := &PostgresStore{pool: pool, logger: logger}

	if cfg.Migrate.AutoCreate {
		if _, err := pool.Exec(ctx, createResumesTable); err != nil {
			pool.Close()
			return nil, errors.NewStorageError(errors.ErrCodeStorageFailed, "failed to create resumes table", err)
		}
		logger.Debug("Resumes table ensured")
	}

	logger.Info("Connected to postgres resume store",
		"max_conns", poolConfig.MaxConns,
		"min_conns", poolConfig.MinConns)
	return store, nil
}

func (s *PostgresStore) Create(ctx context.Context, resume *types.Resume) (*types.Resume, error) {
	if resume == nil {
		return nil, errors.NewValidationError(errors.ErrCodeInvalidResume, "resume is required", nil)
	}

	stored := cloneResume(resume)
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	normalizeForStorage(stored)

	doc, err := json.Marshal(stored)
	if err != nil {
		return nil, errors.NewStorageError(errors.ErrCodeStorageFailed, "failed to encode resume", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO resumes (id, doc) VALUES ($1, $2)`,
		stored.ID, doc)
	if err != nil {
		return nil, errors.NewStorageError(errors.ErrCodeStorageFailed, "failed to insert resume", err)
	}

	s.logger.Debug("Resume created", "id", stored.ID, "title", stored.Title)
	return stored, nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (*types.Resume, error) {
	var doc []byte
	err := s.pool.QueryRow(ctx,
		`SELECT doc FROM resumes WHERE id = $1`, id).Scan(&doc)
	if err == pgx.ErrNoRows {
		return nil, errors.NewNotFoundError(errors.ErrCodeResumeNotFound,
			fmt.Sprintf("resume %s not found", id), nil)
	}
	if err != nil {
		return nil, errors.NewStorageError(errors.ErrCodeStorageFailed, "failed to read resume", err)
	}

	return decodeStoredResume(doc)
}

// Update runs a read-modify-write inside a transaction with the row locked
// so concurrent patches to one resume serialize instead of clobbering.
func (s *PostgresStore) Update(ctx context.Context, id string, patch map[string]json.RawMessage) (*types.Resume, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, errors.NewStorageError(errors.ErrCodeStorageFailed, "failed to begin transaction", err)
	}
	defer tx.Rollback(ctx)

	var doc []byte
	err = tx.QueryRow(ctx,
		`SELECT doc FROM resumes WHERE id = $1 FOR UPDATE`, id).Scan(&doc)
	if err == pgx.ErrNoRows {
		return nil, errors.NewNotFoundError(errors.ErrCodeResumeNotFound,
			fmt.Sprintf("resume %s not found", id), nil)
	}
	if err != nil {
		return nil, errors.NewStorageError(errors.ErrCodeStorageFailed, "failed to read resume", err)
	}

	existing, err := decodeStoredResume(doc)
	if err != nil {
		return nil, err
	}

	merged, err := applyPatch(existing, id, patch)
	if err != nil {
		return nil, err
	}
	normalizeForStorage(merged)

	mergedDoc, err := json.Marshal(merged)
	if err != nil {
		return nil, errors.NewStorageError(errors.ErrCodeStorageFailed, "failed to encode merged resume", err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE resumes SET doc = $2, updated_at = now() WHERE id = $1`,
		id, mergedDoc)
	if err != nil {
		return nil, errors.NewStorageError(errors.ErrCodeStorageFailed, "failed to update resume", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, errors.NewStorageError(errors.ErrCodeStorageFailed, "failed to commit update", err)
	}

	s.logger.Debug("Resume updated", "id", id, "patched_fields", len(patch))
	return merged, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	if err != nil {
		return errors.NewStorageError(errors.ErrCodeStorageFailed, "failed to delete resume", err)
	}
	if tag.RowsAffected() == 0 {
		return errors.NewNotFoundError(errors.ErrCodeResumeNotFound,
			fmt.Sprintf("resume %s not found", id), nil)
	}

	s.logger.Debug("Resume deleted", "id", id)
	return nil
}

func (s *PostgresStore) ListAll(ctx context.Context) ([]*types.Resume, error) {
	rows, err := s.pool.Query(ctx, `SELECT doc FROM resumes ORDER BY id`)
	if err != nil {
		return nil, errors.NewStorageError(errors.ErrCodeStorageFailed, "failed to list resumes", err)
	}
	defer rows.Close()

	var result []*types.Resume
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, errors.NewStorageError(errors.ErrCodeStorageFailed, "failed to scan resume row", err)
		}
		resume, err := decodeStoredResume(doc)
		if err != nil {
			return nil, err
		}
		result = append(result, resume)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStorageError(errors.ErrCodeStorageFailed, "failed to iterate resumes", err)
	}
	return result, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func decodeStoredResume(doc []byte) (*types.Resume, error) {
	var resume types.Resume
	if err := json.Unmarshal(doc, &resume); err != nil {
		return nil, errors.NewStorageError(errors.ErrCodeStorageFailed, "stored resume is corrupt", err)
	}
	return &resume, nil
}
