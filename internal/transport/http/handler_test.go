package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"web3-quest-service/internal/app"
	"web3-quest-service/internal/domain"
	"web3-quest-service/internal/infra/memory"
	"web3-quest-service/internal/store"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	kv := memory.NewKV()
	seed := memory.NewStaticCatalogLoader(domain.DefaultCatalog(time.Now().UnixMilli()))
	service := app.NewQuestService(store.NewRepository(kv, seed))

	mux := http.NewServeMux()
	NewHandler(service).Register(mux)
	mux.HandleFunc("/ws", NewWSHandler(service).ServeWS)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func doJSON(t *testing.T, method, url string, body any, out any) *http.Response {
	t.Helper()
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
	return resp
}

func TestListQuestsAndActiveFilter(t *testing.T) {
	server := newTestServer(t)

	var quests []domain.Quest
	resp := doJSON(t, http.MethodGet, server.URL+"/api/quests", nil, &quests)
	if resp.StatusCode != http.StatusOK || len(quests) != 2 {
		t.Fatalf("expected 2 quests, got status=%d len=%d", resp.StatusCode, len(quests))
	}

	var updated domain.Quest
	doJSON(t, http.MethodPatch, server.URL+"/api/quests/quest-1", map[string]any{"isActive": false}, &updated)
	if updated.IsActive {
		t.Fatalf("quest-1 still active after update")
	}

	var active []domain.Quest
	doJSON(t, http.MethodGet, server.URL+"/api/quests?active=true", nil, &active)
	if len(active) != 1 || active[0].ID != "quest-2" {
		t.Fatalf("unexpected active quests: %+v", active)
	}
}

func TestQuestLifecycle(t *testing.T) {
	server := newTestServer(t)

	// Empty body creates an editor draft.
	var draft domain.Quest
	resp := doJSON(t, http.MethodPost, server.URL+"/api/quests", nil, &draft)
	if resp.StatusCode != http.StatusCreated || draft.ID == "" {
		t.Fatalf("draft not created: status=%d quest=%+v", resp.StatusCode, draft)
	}

	var updated domain.Quest
	doJSON(t, http.MethodPatch, server.URL+"/api/quests/"+draft.ID, map[string]any{
		"title":       "Bridge Audit Gauntlet",
		"prizeAmount": 7500,
	}, &updated)
	if updated.Title != "Bridge Audit Gauntlet" || updated.PrizeAmount != 7500 {
		t.Fatalf("update not applied: %+v", updated)
	}
	if updated.CompanyName != draft.CompanyName {
		t.Fatalf("partial update touched company name: %+v", updated)
	}

	resp = doJSON(t, http.MethodDelete, server.URL+"/api/quests/"+draft.ID, nil, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}
	resp = doJSON(t, http.MethodGet, server.URL+"/api/quests/"+draft.ID, nil, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", resp.StatusCode)
	}
}

func TestStageEndpoints(t *testing.T) {
	server := newTestServer(t)

	var draft domain.Quest
	doJSON(t, http.MethodPost, server.URL+"/api/quests", nil, &draft)

	var quest domain.Quest
	doJSON(t, http.MethodPost, server.URL+"/api/quests/"+draft.ID+"/stages", nil, &quest)
	if len(quest.Stages) != 1 || quest.Stages[0].StageNumber != 1 {
		t.Fatalf("stage not added: %+v", quest.Stages)
	}

	doJSON(t, http.MethodPatch, server.URL+"/api/quests/"+draft.ID+"/stages/0", map[string]any{
		"challengeType": "cipher",
		"cipherText":    "KHOOR",
		"correctCode":   "HELLO",
	}, &quest)
	stage := quest.Stages[0]
	if stage.ChallengeType != domain.ChallengeCipher || stage.Challenge.Type != domain.ChallengeCipher {
		t.Fatalf("challenge type not retagged: %+v", stage)
	}

	resp := doJSON(t, http.MethodPatch, server.URL+"/api/quests/"+draft.ID+"/stages/0", map[string]any{
		"challengeType": "riddle",
	}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown challenge type, got %d", resp.StatusCode)
	}

	doJSON(t, http.MethodDelete, server.URL+"/api/quests/"+draft.ID+"/stages/0", nil, &quest)
	if len(quest.Stages) != 0 {
		t.Fatalf("stage not removed: %+v", quest.Stages)
	}
}

func TestProgressEndpoint(t *testing.T) {
	server := newTestServer(t)

	resp := doJSON(t, http.MethodGet, server.URL+"/api/quests/quest-1/progress", nil, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 before any progress, got %d", resp.StatusCode)
	}
}
