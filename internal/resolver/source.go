package resolver

import (
	"context"

	"github.com/hpungsan/shareline/internal/casestudy"
)

// Source is the live catalog collaborator the resolver reads from.
//
// Implementations should prefer returning an empty result over an error, and
// must never panic across this boundary in the happy path; the resolver
// defends against both regardless, so a misbehaving source degrades a tier
// instead of failing a request.
type Source interface {
	// ListAllProjects returns every published case study.
	ListAllProjects(ctx context.Context) ([]casestudy.CaseStudyRef, error)
	// GetProjectBySlug returns the case study for slug, or nil when there is
	// no such record.
	GetProjectBySlug(ctx context.Context, slug string) (*casestudy.CaseStudyRef, error)
}
