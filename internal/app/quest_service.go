package app

import (
	"context"
	"time"

	"web3-quest-service/internal/domain"
)

// QuestRepository abstracts how the quest catalog and progress records are
// stored (in-memory KV, Redis, etc). Lookups report absence explicitly;
// errors are reserved for the storage layer itself.
type QuestRepository interface {
	ListQuests(ctx context.Context) ([]domain.Quest, error)
	GetQuest(ctx context.Context, id string) (domain.Quest, bool, error)
	AddQuest(ctx context.Context, quest domain.Quest) error
	UpdateQuest(ctx context.Context, id string, update domain.QuestUpdate) error
	DeleteQuest(ctx context.Context, id string) error
	IncrementWinners(ctx context.Context, questID string) error
	GetProgress(ctx context.Context, questID string) (domain.HackerProgress, bool, error)
	SaveProgress(ctx context.Context, progress domain.HackerProgress) error
}

// QuestService contains the quest platform use cases: the catalog/admin
// surface and the stage progression engine.
type QuestService struct {
	repo  QuestRepository
	clock func() time.Time
}

func NewQuestService(repo QuestRepository) *QuestService {
	return &QuestService{repo: repo, clock: time.Now}
}

// NewQuestServiceWithClock is test-only for deterministic timestamps.
func NewQuestServiceWithClock(repo QuestRepository, clock func() time.Time) *QuestService {
	return &QuestService{repo: repo, clock: clock}
}

// ListQuests returns the full catalog, seeding it on first run.
func (s *QuestService) ListQuests(ctx context.Context) ([]domain.Quest, error) {
	return s.repo.ListQuests(ctx)
}

// ActiveQuests returns only the quests shown to participants.
func (s *QuestService) ActiveQuests(ctx context.Context) ([]domain.Quest, error) {
	quests, err := s.repo.ListQuests(ctx)
	if err != nil {
		return nil, err
	}
	active := make([]domain.Quest, 0, len(quests))
	for _, q := range quests {
		if q.IsActive {
			active = append(active, q)
		}
	}
	return active, nil
}

// GetQuest looks a quest up by id.
func (s *QuestService) GetQuest(ctx context.Context, id string) (domain.Quest, error) {
	quest, ok, err := s.repo.GetQuest(ctx, id)
	if err != nil {
		return domain.Quest{}, err
	}
	if !ok {
		return domain.Quest{}, domain.ErrQuestNotFound
	}
	return quest, nil
}

// CreateQuest adds a quest to the catalog, filling in an id and creation
// timestamp when the caller leaves them zero.
func (s *QuestService) CreateQuest(ctx context.Context, quest domain.Quest) (domain.Quest, error) {
	if quest.ID == "" {
		quest.ID = domain.NewQuestID(quest.Title)
	}
	if quest.CreatedAt == 0 {
		quest.CreatedAt = s.clock().UnixMilli()
	}
	if err := s.repo.AddQuest(ctx, quest); err != nil {
		return domain.Quest{}, err
	}
	return quest, nil
}

// CreateDraftQuest creates a quest with editor defaults, ready to be filled
// in stage by stage.
func (s *QuestService) CreateDraftQuest(ctx context.Context) (domain.Quest, error) {
	return s.CreateQuest(ctx, domain.Quest{
		CompanyName: "New Company",
		Title:       "New Quest",
		Description: "Quest description",
		PrizeAmount: 1000,
		MaxWinners:  10,
		IsActive:    true,
		Stages:      []domain.QuestStage{},
	})
}

// UpdateQuest applies a partial update and returns the resulting quest.
func (s *QuestService) UpdateQuest(ctx context.Context, id string, update domain.QuestUpdate) (domain.Quest, error) {
	if _, ok, err := s.repo.GetQuest(ctx, id); err != nil {
		return domain.Quest{}, err
	} else if !ok {
		return domain.Quest{}, domain.ErrQuestNotFound
	}
	if err := s.repo.UpdateQuest(ctx, id, update); err != nil {
		return domain.Quest{}, err
	}
	return s.GetQuest(ctx, id)
}

// DeleteQuest removes a quest; unknown ids are a no-op.
func (s *QuestService) DeleteQuest(ctx context.Context, id string) error {
	return s.repo.DeleteQuest(ctx, id)
}

// AddStage appends a stage to the quest, numbering it after the existing
// ones. Empty fields get editor defaults mirroring a fresh stage.
func (s *QuestService) AddStage(ctx context.Context, questID string, stage domain.QuestStage) (domain.Quest, error) {
	quest, err := s.GetQuest(ctx, questID)
	if err != nil {
		return domain.Quest{}, err
	}
	if stage.Title == "" {
		stage.Title = "New Stage"
	}
	if stage.Description == "" {
		stage.Description = "Stage description"
	}
	if !stage.ChallengeType.Valid() {
		stage.ChallengeType = domain.ChallengeFunction
	}
	if stage.Challenge.Prompt == "" {
		stage.Challenge.Prompt = "What is the result?"
	}
	if stage.ID == "" {
		stage.ID = domain.NewStageID(stage.Title)
	}
	// The stage's challenge tag always mirrors the embedded challenge.
	stage.Challenge.Type = stage.ChallengeType
	stage.StageNumber = len(quest.Stages) + 1

	stages := append(append([]domain.QuestStage{}, quest.Stages...), stage)
	return s.UpdateQuest(ctx, questID, domain.QuestUpdate{Stages: stages})
}

// UpdateStage applies a partial update to the stage at index (0-based).
func (s *QuestService) UpdateStage(ctx context.Context, questID string, index int, update domain.StageUpdate) (domain.Quest, error) {
	quest, err := s.GetQuest(ctx, questID)
	if err != nil {
		return domain.Quest{}, err
	}
	if index < 0 || index >= len(quest.Stages) {
		return domain.Quest{}, domain.ErrStageOutOfRange
	}
	stages := append([]domain.QuestStage{}, quest.Stages...)
	update.Apply(&stages[index])
	return s.UpdateQuest(ctx, questID, domain.QuestUpdate{Stages: stages})
}

// DeleteStage removes the stage at index and renumbers the remaining stages
// contiguously from 1.
func (s *QuestService) DeleteStage(ctx context.Context, questID string, index int) (domain.Quest, error) {
	quest, err := s.GetQuest(ctx, questID)
	if err != nil {
		return domain.Quest{}, err
	}
	if index < 0 || index >= len(quest.Stages) {
		return domain.Quest{}, domain.ErrStageOutOfRange
	}
	stages := make([]domain.QuestStage, 0, len(quest.Stages)-1)
	for i, stage := range quest.Stages {
		if i == index {
			continue
		}
		stage.StageNumber = len(stages) + 1
		stages = append(stages, stage)
	}
	return s.UpdateQuest(ctx, questID, domain.QuestUpdate{Stages: stages})
}
