package store

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"web3-quest-service/internal/domain"
	"web3-quest-service/internal/infra/memory"
)

const seedCreatedAt = int64(1700000000000)

func newTestRepository() (*Repository, *memory.KV) {
	kv := memory.NewKV()
	seed := memory.NewStaticCatalogLoader(domain.DefaultCatalog(seedCreatedAt))
	return NewRepository(kv, seed), kv
}

func TestListQuestsSeedsOnFirstRun(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepository()

	quests, err := repo.ListQuests(ctx)
	if err != nil {
		t.Fatalf("list quests: %v", err)
	}
	if len(quests) != 2 {
		t.Fatalf("expected 2 seed quests, got %d", len(quests))
	}
	if quests[0].ID != "quest-1" || quests[1].ID != "quest-2" {
		t.Fatalf("unexpected seed ids: %s, %s", quests[0].ID, quests[1].ID)
	}
	if quests[0].PrizeAmount != 5000 || quests[1].PrizeAmount != 8000 {
		t.Fatalf("unexpected seed prizes: %v, %v", quests[0].PrizeAmount, quests[1].PrizeAmount)
	}
	if len(quests[0].Stages) != 3 || len(quests[1].Stages) != 2 {
		t.Fatalf("unexpected seed stage counts: %d, %d", len(quests[0].Stages), len(quests[1].Stages))
	}
}

func TestListQuestsSeedsOnlyOnce(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewKV()
	loader := &countingLoader{inner: memory.NewStaticCatalogLoader(domain.DefaultCatalog(seedCreatedAt))}
	repo := NewRepository(kv, loader)

	if _, err := repo.ListQuests(ctx); err != nil {
		t.Fatalf("first list: %v", err)
	}
	if _, err := repo.ListQuests(ctx); err != nil {
		t.Fatalf("second list: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected one seed load, got %d", loader.calls)
	}
}

func TestAddAndGetQuest(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepository()

	quest := domain.Quest{
		ID:          "quest-3",
		CompanyName: "ZK Audits",
		Title:       "Circuit Breaker",
		Description: "Find the constraint bug",
		PrizeAmount: 2500,
		MaxWinners:  3,
		IsActive:    true,
		CreatedAt:   seedCreatedAt,
		Stages:      []domain.QuestStage{},
	}
	if err := repo.AddQuest(ctx, quest); err != nil {
		t.Fatalf("add quest: %v", err)
	}

	quests, err := repo.ListQuests(ctx)
	if err != nil {
		t.Fatalf("list quests: %v", err)
	}
	matches := 0
	for _, q := range quests {
		if q.ID == "quest-3" {
			matches++
			if !reflect.DeepEqual(q, quest) {
				t.Fatalf("stored quest differs: got %+v want %+v", q, quest)
			}
		}
	}
	if matches != 1 {
		t.Fatalf("expected exactly one quest-3, got %d", matches)
	}

	if _, ok, err := repo.GetQuest(ctx, "never-added"); err != nil || ok {
		t.Fatalf("expected absent without error, got ok=%v err=%v", ok, err)
	}
}

func TestUpdateQuestIsNonDestructive(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepository()

	before, _, err := repo.GetQuest(ctx, "quest-1")
	if err != nil {
		t.Fatalf("get quest: %v", err)
	}

	title := "Renamed Challenge"
	if err := repo.UpdateQuest(ctx, "quest-1", domain.QuestUpdate{Title: &title}); err != nil {
		t.Fatalf("update quest: %v", err)
	}

	after, _, err := repo.GetQuest(ctx, "quest-1")
	if err != nil {
		t.Fatalf("get quest: %v", err)
	}
	if after.Title != "Renamed Challenge" {
		t.Fatalf("title not updated: %s", after.Title)
	}
	after.Title = before.Title
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("update touched more than the title:\nbefore %+v\nafter  %+v", before, after)
	}
}

func TestUpdateQuestReplacesStagesWholesale(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepository()

	stages := []domain.QuestStage{{
		ID:            "stage-x",
		StageNumber:   1,
		Title:         "Only Stage",
		ChallengeType: domain.ChallengeLogic,
		Challenge:     domain.Challenge{Type: domain.ChallengeLogic, Prompt: "?"},
		CorrectCode:   "YES",
	}}
	if err := repo.UpdateQuest(ctx, "quest-1", domain.QuestUpdate{Stages: stages}); err != nil {
		t.Fatalf("update quest: %v", err)
	}

	quest, _, err := repo.GetQuest(ctx, "quest-1")
	if err != nil {
		t.Fatalf("get quest: %v", err)
	}
	if len(quest.Stages) != 1 || quest.Stages[0].ID != "stage-x" {
		t.Fatalf("stage list not replaced: %+v", quest.Stages)
	}
}

func TestUpdateQuestUnknownIDIsNoop(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepository()

	title := "ignored"
	if err := repo.UpdateQuest(ctx, "missing", domain.QuestUpdate{Title: &title}); err != nil {
		t.Fatalf("update quest: %v", err)
	}
	quests, err := repo.ListQuests(ctx)
	if err != nil {
		t.Fatalf("list quests: %v", err)
	}
	if len(quests) != 2 {
		t.Fatalf("catalog changed on no-op update: %d quests", len(quests))
	}
}

func TestDeleteQuest(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepository()

	if err := repo.DeleteQuest(ctx, "quest-1"); err != nil {
		t.Fatalf("delete quest: %v", err)
	}
	if _, ok, _ := repo.GetQuest(ctx, "quest-1"); ok {
		t.Fatalf("quest-1 still present after delete")
	}

	// Deleting an unknown id leaves the collection unchanged.
	if err := repo.DeleteQuest(ctx, "quest-1"); err != nil {
		t.Fatalf("repeat delete: %v", err)
	}
	quests, err := repo.ListQuests(ctx)
	if err != nil {
		t.Fatalf("list quests: %v", err)
	}
	if len(quests) != 1 || quests[0].ID != "quest-2" {
		t.Fatalf("unexpected catalog after deletes: %+v", quests)
	}
}

func TestIncrementWinners(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepository()

	if err := repo.IncrementWinners(ctx, "quest-1"); err != nil {
		t.Fatalf("increment winners: %v", err)
	}
	quest, _, err := repo.GetQuest(ctx, "quest-1")
	if err != nil {
		t.Fatalf("get quest: %v", err)
	}
	if quest.CurrentWinners != 4 {
		t.Fatalf("expected 4 winners, got %d", quest.CurrentWinners)
	}

	if err := repo.IncrementWinners(ctx, "missing"); err != nil {
		t.Fatalf("increment unknown quest: %v", err)
	}
}

func TestProgressRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepository()

	if _, ok, err := repo.GetProgress(ctx, "quest-1"); err != nil || ok {
		t.Fatalf("expected no progress yet, got ok=%v err=%v", ok, err)
	}

	progress := domain.HackerProgress{
		QuestID:         "quest-1",
		CurrentStage:    2,
		CompletedStages: []int{0, 1},
		StartedAt:       seedCreatedAt,
	}
	if err := repo.SaveProgress(ctx, progress); err != nil {
		t.Fatalf("save progress: %v", err)
	}

	loaded, ok, err := repo.GetProgress(ctx, "quest-1")
	if err != nil {
		t.Fatalf("get progress: %v", err)
	}
	if !ok {
		t.Fatalf("expected progress present")
	}
	if !reflect.DeepEqual(loaded, progress) {
		t.Fatalf("round trip mismatch: got %+v want %+v", loaded, progress)
	}
}

func TestMalformedCatalogPropagates(t *testing.T) {
	ctx := context.Background()
	repo, kv := newTestRepository()

	if err := kv.Set(ctx, catalogKey, []byte("{not json")); err != nil {
		t.Fatalf("corrupt catalog: %v", err)
	}
	if _, err := repo.ListQuests(ctx); err == nil || !strings.Contains(err.Error(), "decode quest catalog") {
		t.Fatalf("expected decode error, got %v", err)
	}

	if err := kv.Set(ctx, progressKey("quest-1"), []byte("{not json")); err != nil {
		t.Fatalf("corrupt progress: %v", err)
	}
	if _, _, err := repo.GetProgress(ctx, "quest-1"); err == nil {
		t.Fatalf("expected progress decode error")
	}
}

type countingLoader struct {
	inner CatalogLoader
	calls int
}

func (l *countingLoader) LoadCatalog(ctx context.Context) ([]domain.Quest, error) {
	l.calls++
	return l.inner.LoadCatalog(ctx)
}
