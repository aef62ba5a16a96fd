package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hpungsan/shareline/internal/casestudy"
	"github.com/hpungsan/shareline/internal/errors"
	"github.com/hpungsan/shareline/internal/slug"
)

// Put inserts a case study, or replaces the record sharing its normalized
// slug. An empty ID gets a fresh ULID. Returns the stored record.
func (s *Store) Put(ctx context.Context, ref casestudy.CaseStudyRef) (*casestudy.CaseStudyRef, error) {
	norm := slug.Normalize(ref.Slug)
	if norm == "" {
		return nil, errors.NewInvalidRequest("slug must contain at least one alphanumeric character")
	}
	if ref.Title == "" {
		return nil, errors.NewInvalidRequest("title is required")
	}

	if ref.ID == "" {
		id, err := casestudy.NewID()
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		ref.ID = id
	}
	if ref.CoverURL == "" {
		ref.CoverURL = casestudy.PlaceholderCover(norm)
	}

	tagsJSON, err := json.Marshal(ref.Tags)
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	now := time.Now().Unix()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO case_studies (id, title, slug_raw, slug_norm, summary, cover_url, tags_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(slug_norm) DO UPDATE SET
		  title = excluded.title,
		  slug_raw = excluded.slug_raw,
		  summary = excluded.summary,
		  cover_url = excluded.cover_url,
		  tags_json = excluded.tags_json,
		  updated_at = excluded.updated_at`,
		ref.ID, ref.Title, ref.Slug, norm, ref.Summary, ref.CoverURL, string(tagsJSON), now, now)
	if err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to store case study: %w", err))
	}

	return s.GetProjectBySlug(ctx, norm)
}

// GetProjectBySlug returns the case study whose normalized slug matches, or
// nil when there is no such record. Implements resolver.Source.
func (s *Store) GetProjectBySlug(ctx context.Context, rawSlug string) (*casestudy.CaseStudyRef, error) {
	norm := slug.Normalize(rawSlug)
	if norm == "" {
		return nil, nil
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, slug_raw, summary, cover_url, tags_json
		FROM case_studies WHERE slug_norm = ?`, norm)

	ref, err := scanRef(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch case study: %w", err)
	}
	return ref, nil
}

// ListAllProjects returns every case study, oldest first. Implements
// resolver.Source.
func (s *Store) ListAllProjects(ctx context.Context) ([]casestudy.CaseStudyRef, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, slug_raw, summary, cover_url, tags_json
		FROM case_studies ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list case studies: %w", err)
	}
	defer rows.Close()

	var refs []casestudy.CaseStudyRef
	for rows.Next() {
		ref, err := scanRef(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan case study: %w", err)
		}
		refs = append(refs, *ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate case studies: %w", err)
	}
	return refs, nil
}

// Delete removes the case study with the given slug.
func (s *Store) Delete(ctx context.Context, rawSlug string) error {
	norm := slug.Normalize(rawSlug)
	res, err := s.db.ExecContext(ctx, `DELETE FROM case_studies WHERE slug_norm = ?`, norm)
	if err != nil {
		return errors.NewInternal(fmt.Errorf("failed to delete case study: %w", err))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return errors.NewInternal(err)
	}
	if affected == 0 {
		return errors.NewNotFound(rawSlug)
	}
	return nil
}

// Count returns the number of stored case studies.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM case_studies`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count case studies: %w", err)
	}
	return n, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRef(sc scanner) (*casestudy.CaseStudyRef, error) {
	var ref casestudy.CaseStudyRef
	var tagsJSON sql.NullString
	if err := sc.Scan(&ref.ID, &ref.Title, &ref.Slug, &ref.Summary, &ref.CoverURL, &tagsJSON); err != nil {
		return nil, err
	}
	if tagsJSON.Valid && tagsJSON.String != "" {
		if err := json.Unmarshal([]byte(tagsJSON.String), &ref.Tags); err != nil {
			return nil, fmt.Errorf("failed to parse tags: %w", err)
		}
	}
	return &ref, nil
}
