package http

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"web3-quest-service/internal/app"
	"web3-quest-service/internal/domain"
)

// Handler exposes the quest catalog and admin editor over REST. The admin
// surface returns full quest records, hidden answers included; the
// participant-facing websocket flow strips them.
type Handler struct {
	service *app.QuestService
}

func NewHandler(service *app.QuestService) *Handler {
	return &Handler{service: service}
}

// Register wires the REST routes into the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/quests", h.listQuests)
	mux.HandleFunc("POST /api/quests", h.createQuest)
	mux.HandleFunc("GET /api/quests/{id}", h.getQuest)
	mux.HandleFunc("PATCH /api/quests/{id}", h.updateQuest)
	mux.HandleFunc("DELETE /api/quests/{id}", h.deleteQuest)
	mux.HandleFunc("POST /api/quests/{id}/stages", h.addStage)
	mux.HandleFunc("PATCH /api/quests/{id}/stages/{index}", h.updateStage)
	mux.HandleFunc("DELETE /api/quests/{id}/stages/{index}", h.deleteStage)
	mux.HandleFunc("GET /api/quests/{id}/progress", h.getProgress)
}

func (h *Handler) listQuests(w http.ResponseWriter, r *http.Request) {
	var (
		quests []domain.Quest
		err    error
	)
	if r.URL.Query().Get("active") == "true" {
		quests, err = h.service.ActiveQuests(r.Context())
	} else {
		quests, err = h.service.ListQuests(r.Context())
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quests)
}

func (h *Handler) getQuest(w http.ResponseWriter, r *http.Request) {
	quest, err := h.service.GetQuest(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quest)
}

func (h *Handler) createQuest(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, err)
		return
	}

	var quest domain.Quest
	if len(body) > 0 {
		if err := json.Unmarshal(body, &quest); err != nil {
			http.Error(w, "invalid quest payload", http.StatusBadRequest)
			return
		}
		quest, err = h.service.CreateQuest(r.Context(), quest)
	} else {
		// An empty body creates an editor draft with defaults.
		quest, err = h.service.CreateDraftQuest(r.Context())
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, quest)
}

type questUpdateRequest struct {
	CompanyName    *string             `json:"companyName"`
	CompanyLogo    *string             `json:"companyLogo"`
	Title          *string             `json:"title"`
	Description    *string             `json:"description"`
	PrizeAmount    *float64            `json:"prizeAmount"`
	MaxWinners     *int                `json:"maxWinners"`
	CurrentWinners *int                `json:"currentWinners"`
	IsActive       *bool               `json:"isActive"`
	Stages         []domain.QuestStage `json:"stages"`
}

func (h *Handler) updateQuest(w http.ResponseWriter, r *http.Request) {
	var req questUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid update payload", http.StatusBadRequest)
		return
	}
	quest, err := h.service.UpdateQuest(r.Context(), r.PathValue("id"), domain.QuestUpdate{
		CompanyName:    req.CompanyName,
		CompanyLogo:    req.CompanyLogo,
		Title:          req.Title,
		Description:    req.Description,
		PrizeAmount:    req.PrizeAmount,
		MaxWinners:     req.MaxWinners,
		CurrentWinners: req.CurrentWinners,
		IsActive:       req.IsActive,
		Stages:         req.Stages,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quest)
}

func (h *Handler) deleteQuest(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteQuest(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) addStage(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, err)
		return
	}
	var stage domain.QuestStage
	if len(body) > 0 {
		if err := json.Unmarshal(body, &stage); err != nil {
			http.Error(w, "invalid stage payload", http.StatusBadRequest)
			return
		}
	}
	quest, err := h.service.AddStage(r.Context(), r.PathValue("id"), stage)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quest)
}

type stageUpdateRequest struct {
	Title         *string               `json:"title"`
	Description   *string               `json:"description"`
	ChallengeType *domain.ChallengeType `json:"challengeType"`
	Prompt        *string               `json:"prompt"`
	Hint          *string               `json:"hint"`
	FunctionCode  *string               `json:"functionCode"`
	CipherText    *string               `json:"cipherText"`
	LogicPuzzle   *string               `json:"logicPuzzle"`
	CorrectCode   *string               `json:"correctCode"`
}

func (h *Handler) updateStage(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		http.Error(w, "invalid stage index", http.StatusBadRequest)
		return
	}
	var req stageUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid stage payload", http.StatusBadRequest)
		return
	}
	if req.ChallengeType != nil && !req.ChallengeType.Valid() {
		http.Error(w, "unknown challenge type", http.StatusBadRequest)
		return
	}
	quest, err := h.service.UpdateStage(r.Context(), r.PathValue("id"), index, domain.StageUpdate{
		Title:         req.Title,
		Description:   req.Description,
		ChallengeType: req.ChallengeType,
		Prompt:        req.Prompt,
		Hint:          req.Hint,
		FunctionCode:  req.FunctionCode,
		CipherText:    req.CipherText,
		LogicPuzzle:   req.LogicPuzzle,
		CorrectCode:   req.CorrectCode,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quest)
}

func (h *Handler) deleteStage(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		http.Error(w, "invalid stage index", http.StatusBadRequest)
		return
	}
	quest, err := h.service.DeleteStage(r.Context(), r.PathValue("id"), index)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quest)
}

func (h *Handler) getProgress(w http.ResponseWriter, r *http.Request) {
	progress, ok, err := h.service.Progress(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if !ok {
		http.Error(w, "progress not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrQuestNotFound), errors.Is(err, domain.ErrStageOutOfRange):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrQuestInactive),
		errors.Is(err, domain.ErrQuestFull),
		errors.Is(err, domain.ErrQuestCompleted),
		errors.Is(err, domain.ErrNoStages):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		log.Printf("internal error: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
