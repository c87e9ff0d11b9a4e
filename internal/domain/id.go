package domain

import (
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// NewQuestID builds a readable unique id from the quest title, e.g.
// "smart-contract-auditor-challenge-1a2b3c4d".
func NewQuestID(title string) string {
	return newID("quest", title)
}

// NewStageID builds a readable unique id from the stage title.
func NewStageID(title string) string {
	return newID("stage", title)
}

func newID(fallback, title string) string {
	s := slug.Make(title)
	if s == "" {
		s = fallback
	}
	return s + "-" + uuid.NewString()[:8]
}
