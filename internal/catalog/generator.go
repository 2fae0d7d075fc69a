package catalog

import (
	"errors"

	"github.com/mmr-tortoise/emojimix/internal/model"
)

// ErrNoRevisions is returned by NewGenerator when the revision list is empty.
var ErrNoRevisions = errors.New("catalog: at least one revision is required")

// Generator produces the ordered candidate URLs for an emoji pair.
// It holds only read-only data and is safe for concurrent use.
type Generator struct {
	template  *Template
	revisions []model.CatalogRevision
}

// NewGenerator creates a Generator. The revision order is kept as given:
// earlier revisions are probed first and win ties.
func NewGenerator(template *Template, revisions []model.CatalogRevision) (*Generator, error) {
	if template == nil {
		return nil, &model.TemplateError{Reason: "template is nil"}
	}
	if len(revisions) == 0 {
		return nil, ErrNoRevisions
	}

	// Copy so later changes to the caller's slice cannot reorder probing.
	revs := make([]model.CatalogRevision, len(revisions))
	copy(revs, revisions)

	return &Generator{template: template, revisions: revs}, nil
}

// Revisions returns a copy of the configured revisions in probe order.
func (g *Generator) Revisions() []model.CatalogRevision {
	out := make([]model.CatalogRevision, len(g.revisions))
	copy(out, g.revisions)
	return out
}

// Template returns the parsed URL template.
func (g *Generator) Template() *Template {
	return g.template
}

// Generate returns the candidate URLs for (a, b), revision-major and
// orientation-minor:
//
//	(r1,a,b), (r1,b,a), (r2,a,b), (r2,b,a), ...
//
// When a == b only (r,a,a) is produced per revision.
func (g *Generator) Generate(a, b model.HexIdentifier) []model.CandidateURL {
	perRevision := 2
	if a == b {
		perRevision = 1
	}

	candidates := make([]model.CandidateURL, 0, len(g.revisions)*perRevision)
	for _, rev := range g.revisions {
		candidates = append(candidates, g.candidate(rev, a, b))
		if a != b {
			candidates = append(candidates, g.candidate(rev, b, a))
		}
	}
	return candidates
}

func (g *Generator) candidate(rev model.CatalogRevision, first, second model.HexIdentifier) model.CandidateURL {
	return model.CandidateURL{
		URL:      g.template.Expand(rev, first, second),
		Revision: rev,
		First:    first,
		Second:   second,
	}
}
