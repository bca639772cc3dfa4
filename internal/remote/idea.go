package remote

import (
	"fmt"

	"github.com/dspolyakov/buildpad/internal/client/models"
	"github.com/dspolyakov/buildpad/internal/common"
)

// IdeaCodec maps between models.Idea and IdeaRecord.
type IdeaCodec struct{}

func (IdeaCodec) ToRemote(ownerID string, i models.Idea) IdeaRecord {
	captures := i.PRDCaptures
	return IdeaRecord{
		ID:                  i.ID,
		UserID:              ownerID,
		Title:               i.Title,
		Description:         i.Description,
		Tags:                i.Tags,
		Chat:                i.Chat,
		PRDCaptures:         &captures,
		Status:              string(i.Status),
		PromotedToProjectID: i.ProjectID,
	}
}

// FromRemote renames fields back. A missing prd_captures defaults to an
// object with all six buckets empty.
func (IdeaCodec) FromRemote(r IdeaRecord) (models.Idea, error) {
	if r.ID == "" || r.UpdatedAt.IsZero() {
		return models.Idea{}, fmt.Errorf("idea record %q: %w", r.ID, common.ErrMalformedRecord)
	}

	captures := models.DefaultPRDCaptures()
	if r.PRDCaptures != nil {
		captures = models.PRDCaptures{
			Overview: orEmpty(r.PRDCaptures.Overview),
			Features: orEmpty(r.PRDCaptures.Features),
			Users:    orEmpty(r.PRDCaptures.Users),
			Screens:  orEmpty(r.PRDCaptures.Screens),
			Data:     orEmpty(r.PRDCaptures.Data),
			Design:   orEmpty(r.PRDCaptures.Design),
		}
	}

	return models.Idea{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Tags:        orEmpty(r.Tags),
		Chat:        orEmpty(r.Chat),
		PRDCaptures: captures,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		Status:      models.IdeaStatus(r.Status),
		ProjectID:   r.PromotedToProjectID,
	}, nil
}
