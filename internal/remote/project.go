package remote

import (
	"fmt"

	"github.com/dspolyakov/buildpad/internal/client/models"
	"github.com/dspolyakov/buildpad/internal/common"
)

// ProjectCodec maps between models.Project and ProjectRecord.
type ProjectCodec struct{}

// ToRemote renames fields into the remote layout and attaches the owner id.
// Nested structures pass through unchanged; timestamps stay unset because
// the store stamps them on write.
func (ProjectCodec) ToRemote(ownerID string, p models.Project) ProjectRecord {
	return ProjectRecord{
		ID:             p.ID,
		UserID:         ownerID,
		Name:           p.Name,
		Status:         string(p.Status),
		Mode:           string(p.Mode),
		PRD:            p.PRD,
		Tasks:          p.Tasks,
		Modules:        p.Modules,
		PriorityStack:  p.PriorityStack,
		BuildSteps:     p.BuildSteps,
		DeployURL:      p.DeployURL,
		ProdURL:        p.ProdURL,
		ProdVersion:    p.ProdVersion,
		VersionHistory: p.VersionHistory,
		Suggestions:    p.Suggestions,
		Review:         &p.Review,
	}
}

// FromRemote renames fields back into the local layout. Optional nested
// collections default to empty so downstream code never sees nil; a record
// without id or updated_at fails with common.ErrMalformedRecord.
func (ProjectCodec) FromRemote(r ProjectRecord) (models.Project, error) {
	if r.ID == "" || r.UpdatedAt.IsZero() {
		return models.Project{}, fmt.Errorf("project record %q: %w", r.ID, common.ErrMalformedRecord)
	}

	review := models.DefaultReview()
	if r.Review != nil {
		review = *r.Review
		if review.Findings == nil {
			review.Findings = []string{}
		}
	}

	return models.Project{
		ID:             r.ID,
		Name:           r.Name,
		Status:         models.ProjectStatus(r.Status),
		Mode:           models.ProjectMode(r.Mode),
		PRD:            r.PRD,
		Tasks:          orEmpty(r.Tasks),
		Modules:        orEmpty(r.Modules),
		PriorityStack:  orEmpty(r.PriorityStack),
		BuildSteps:     orEmpty(r.BuildSteps),
		DeployURL:      r.DeployURL,
		ProdURL:        r.ProdURL,
		ProdVersion:    r.ProdVersion,
		VersionHistory: orEmpty(r.VersionHistory),
		Suggestions:    orEmpty(r.Suggestions),
		Review:         review,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}, nil
}

// orEmpty replaces a nil slice with an empty one.
func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
