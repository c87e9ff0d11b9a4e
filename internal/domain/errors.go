package domain

import "errors"

var (
	// ErrQuestNotFound indicates the quest id does not exist in the catalog.
	ErrQuestNotFound = errors.New("quest not found")
	// ErrQuestInactive is returned when a participant tries to enter a deactivated quest.
	ErrQuestInactive = errors.New("quest is not active")
	// ErrQuestFull is returned when the winner cap has been reached.
	ErrQuestFull = errors.New("quest winner limit reached")
	// ErrQuestCompleted is returned when submitting into an already completed quest.
	ErrQuestCompleted = errors.New("quest already completed")
	// ErrNoStages indicates a quest with an empty stage list cannot be played.
	ErrNoStages = errors.New("quest has no stages")
	// ErrStageOutOfRange indicates a stage index outside the quest's stage list.
	ErrStageOutOfRange = errors.New("stage index out of range")
)
