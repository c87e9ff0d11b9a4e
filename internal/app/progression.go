package app

import (
	"context"
	"strings"

	"web3-quest-service/internal/domain"
)

// SubmissionStatus classifies the outcome of an answer submission.
type SubmissionStatus string

const (
	// StatusAdvanced means the answer was correct and there are stages left.
	StatusAdvanced SubmissionStatus = "advanced"
	// StatusCompleted means the answer was correct on the final stage.
	StatusCompleted SubmissionStatus = "completed"
	// StatusIncorrect means the answer did not match; progress is unchanged.
	StatusIncorrect SubmissionStatus = "incorrect"
)

// SubmissionResult is what the progression engine reports back to the caller
// after each answer.
type SubmissionResult struct {
	Status   SubmissionStatus      `json:"status"`
	Feedback string                `json:"feedback"`
	Progress domain.HackerProgress `json:"progress"`
}

const (
	feedbackAdvanced  = "Correct! Moving to the next stage..."
	feedbackCompleted = "Congratulations! You completed the quest!"
	feedbackIncorrect = "Incorrect code. Try again!"
)

// StartQuest loads or initializes progress for a quest and returns the quest
// alongside it. Entry is gated on the active flag and the winner cap; a
// participant with existing progress may resume even after the cap fills.
func (s *QuestService) StartQuest(ctx context.Context, questID string) (domain.Quest, domain.HackerProgress, error) {
	quest, err := s.GetQuest(ctx, questID)
	if err != nil {
		return domain.Quest{}, domain.HackerProgress{}, err
	}
	if !quest.IsActive {
		return domain.Quest{}, domain.HackerProgress{}, domain.ErrQuestInactive
	}
	if len(quest.Stages) == 0 {
		return domain.Quest{}, domain.HackerProgress{}, domain.ErrNoStages
	}

	progress, ok, err := s.repo.GetProgress(ctx, questID)
	if err != nil {
		return domain.Quest{}, domain.HackerProgress{}, err
	}
	if !ok {
		if quest.IsFull() {
			return domain.Quest{}, domain.HackerProgress{}, domain.ErrQuestFull
		}
		progress = domain.HackerProgress{
			QuestID:         questID,
			CurrentStage:    0,
			CompletedStages: []int{},
			StartedAt:       s.clock().UnixMilli(),
		}
		if err := s.repo.SaveProgress(ctx, progress); err != nil {
			return domain.Quest{}, domain.HackerProgress{}, err
		}
	}
	return quest, progress, nil
}

// Progress returns the stored progress record for a quest, if any.
func (s *QuestService) Progress(ctx context.Context, questID string) (domain.HackerProgress, bool, error) {
	return s.repo.GetProgress(ctx, questID)
}

// SubmitAnswer validates the input against the current stage's correct code.
// Both sides are trimmed and upper-cased before comparing. A correct answer
// advances (and persists) the progress; the final stage additionally records
// a winner, exactly once per progress record. A wrong answer changes nothing.
func (s *QuestService) SubmitAnswer(ctx context.Context, questID, input string) (SubmissionResult, error) {
	quest, err := s.GetQuest(ctx, questID)
	if err != nil {
		return SubmissionResult{}, err
	}
	if len(quest.Stages) == 0 {
		return SubmissionResult{}, domain.ErrNoStages
	}

	progress, ok, err := s.repo.GetProgress(ctx, questID)
	if err != nil {
		return SubmissionResult{}, err
	}
	if !ok {
		progress = domain.HackerProgress{
			QuestID:         questID,
			CurrentStage:    0,
			CompletedStages: []int{},
			StartedAt:       s.clock().UnixMilli(),
		}
	}
	if progress.Completed(len(quest.Stages)) {
		return SubmissionResult{}, domain.ErrQuestCompleted
	}

	stage := quest.Stages[progress.CurrentStage]
	if normalizeAnswer(input) != normalizeAnswer(stage.CorrectCode) {
		return SubmissionResult{
			Status:   StatusIncorrect,
			Feedback: feedbackIncorrect,
			Progress: progress,
		}, nil
	}

	progress.CompletedStages = append(progress.CompletedStages, progress.CurrentStage)
	progress.CurrentStage++
	if err := s.repo.SaveProgress(ctx, progress); err != nil {
		return SubmissionResult{}, err
	}

	if progress.CurrentStage == len(quest.Stages) {
		if err := s.repo.IncrementWinners(ctx, questID); err != nil {
			return SubmissionResult{}, err
		}
		return SubmissionResult{
			Status:   StatusCompleted,
			Feedback: feedbackCompleted,
			Progress: progress,
		}, nil
	}
	return SubmissionResult{
		Status:   StatusAdvanced,
		Feedback: feedbackAdvanced,
		Progress: progress,
	}, nil
}

func normalizeAnswer(answer string) string {
	return strings.ToUpper(strings.TrimSpace(answer))
}
