package domain

// ChallengeType tags the kind of puzzle a stage carries.
type ChallengeType string

const (
	ChallengeFunction ChallengeType = "function"
	ChallengeCipher   ChallengeType = "cipher"
	ChallengeLogic    ChallengeType = "logic"
	ChallengeCrypto   ChallengeType = "crypto"
)

// Valid reports whether t is one of the known challenge types.
func (t ChallengeType) Valid() bool {
	switch t {
	case ChallengeFunction, ChallengeCipher, ChallengeLogic, ChallengeCrypto:
		return true
	}
	return false
}

// Challenge is the puzzle payload shown to a participant. Only the fields
// relevant to Type are populated; empty means "not shown".
type Challenge struct {
	Type         ChallengeType `json:"type"`
	Prompt       string        `json:"prompt"`
	Hint         string        `json:"hint,omitempty"`
	FunctionCode string        `json:"functionCode,omitempty"`
	CipherText   string        `json:"cipherText,omitempty"`
	LogicPuzzle  string        `json:"logicPuzzle,omitempty"`
}

// QuestStage is one ordered puzzle within a quest. StageNumber is 1-based and
// kept contiguous by the editor when stages are removed. CorrectCode is the
// hidden answer, compared case-insensitively after trimming.
type QuestStage struct {
	ID            string        `json:"id"`
	StageNumber   int           `json:"stageNumber"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	ChallengeType ChallengeType `json:"challengeType"`
	Challenge     Challenge     `json:"challenge"`
	CorrectCode   string        `json:"correctCode"`
}

// Quest is a company-sponsored multi-stage challenge with a prize and a
// winner cap. Stage order is the slice order.
type Quest struct {
	ID             string       `json:"id"`
	CompanyName    string       `json:"companyName"`
	CompanyLogo    string       `json:"companyLogo,omitempty"`
	Title          string       `json:"title"`
	Description    string       `json:"description"`
	PrizeAmount    float64      `json:"prizeAmount"`
	MaxWinners     int          `json:"maxWinners"`
	CurrentWinners int          `json:"currentWinners"`
	Stages         []QuestStage `json:"stages"`
	IsActive       bool         `json:"isActive"`
	CreatedAt      int64        `json:"createdAt"` // unix milliseconds
}

// IsFull reports whether the quest has reached its winner cap.
func (q Quest) IsFull() bool {
	return q.CurrentWinners >= q.MaxWinners
}

// HackerProgress records how far a participant has advanced in a quest.
// It is keyed by quest id only: every browser (process) has its own store,
// so there is one record per quest per store.
type HackerProgress struct {
	QuestID         string `json:"questId"`
	CurrentStage    int    `json:"currentStage"` // 0-based index into Quest.Stages
	CompletedStages []int  `json:"completedStages"`
	StartedAt       int64  `json:"startedAt"` // unix milliseconds
}

// Completed reports whether the progress has walked past the last stage.
func (p HackerProgress) Completed(stageCount int) bool {
	return stageCount > 0 && p.CurrentStage >= stageCount
}
