package http

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"web3-quest-service/internal/app"
	"web3-quest-service/internal/domain"
)

// WSHandler runs the interactive quest-taking flow over a websocket. A
// connection is one participant working one quest; closing it is an implicit
// abort and the last persisted progress stands.
type WSHandler struct {
	service  *app.QuestService
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.QuestService) *WSHandler {
	return &WSHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type answerPayload struct {
	Code string `json:"code"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// stageView is the participant-facing projection of a stage; the hidden
// correct code never crosses this boundary.
type stageView struct {
	StageNumber   int                  `json:"stageNumber"`
	StageCount    int                  `json:"stageCount"`
	Title         string               `json:"title"`
	Description   string               `json:"description"`
	ChallengeType domain.ChallengeType `json:"challengeType"`
	Challenge     domain.Challenge     `json:"challenge"`
}

type statePayload struct {
	QuestID  string                `json:"questId"`
	Wallet   string                `json:"wallet"`
	Stage    stageView             `json:"stage"`
	Progress domain.HackerProgress `json:"progress"`
}

type feedbackPayload struct {
	Status   app.SubmissionStatus  `json:"status"`
	Feedback string                `json:"feedback"`
	Progress domain.HackerProgress `json:"progress"`
}

type completedPayload struct {
	QuestID     string  `json:"questId"`
	CompanyName string  `json:"companyName"`
	Title       string  `json:"title"`
	PrizeAmount float64 `json:"prizeAmount"`
	Wallet      string  `json:"wallet"`
	Feedback    string  `json:"feedback"`
}

// ServeWS upgrades the request and walks the participant through the quest's
// stages. The wallet parameter is the connected wallet's public key; it gates
// entry and is echoed back for display, nothing more.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	questID := r.URL.Query().Get("questId")
	wallet := r.URL.Query().Get("wallet")
	if questID == "" || wallet == "" {
		http.Error(w, "missing questId or wallet", http.StatusBadRequest)
		return
	}

	quest, progress, err := h.service.StartQuest(r.Context(), questID)
	if err != nil {
		writeError(w, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	if progress.Completed(len(quest.Stages)) {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: domain.ErrQuestCompleted.Error()}})
		return
	}

	_ = conn.WriteJSON(outboundMessage[statePayload]{
		Type: "state",
		Payload: statePayload{
			QuestID:  quest.ID,
			Wallet:   wallet,
			Stage:    viewStage(quest, progress.CurrentStage),
			Progress: progress,
		},
	})

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			return
		}
		switch inbound.Type {
		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: "invalid answer payload"}})
				continue
			}
			result, err := h.service.SubmitAnswer(r.Context(), questID, payload.Code)
			if err != nil {
				_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
				continue
			}
			_ = conn.WriteJSON(outboundMessage[feedbackPayload]{
				Type: "feedback",
				Payload: feedbackPayload{
					Status:   result.Status,
					Feedback: result.Feedback,
					Progress: result.Progress,
				},
			})
			switch result.Status {
			case app.StatusAdvanced:
				_ = conn.WriteJSON(outboundMessage[statePayload]{
					Type: "state",
					Payload: statePayload{
						QuestID:  quest.ID,
						Wallet:   wallet,
						Stage:    viewStage(quest, result.Progress.CurrentStage),
						Progress: result.Progress,
					},
				})
			case app.StatusCompleted:
				_ = conn.WriteJSON(outboundMessage[completedPayload]{
					Type: "completed",
					Payload: completedPayload{
						QuestID:     quest.ID,
						CompanyName: quest.CompanyName,
						Title:       quest.Title,
						PrizeAmount: quest.PrizeAmount,
						Wallet:      wallet,
						Feedback:    result.Feedback,
					},
				})
				return
			}
		default:
			_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: "unsupported message type"}})
		}
	}
}

func viewStage(quest domain.Quest, index int) stageView {
	stage := quest.Stages[index]
	return stageView{
		StageNumber:   stage.StageNumber,
		StageCount:    len(quest.Stages),
		Title:         stage.Title,
		Description:   stage.Description,
		ChallengeType: stage.ChallengeType,
		Challenge:     stage.Challenge,
	}
}
