package domain

// QuestUpdate lists exactly the quest fields an administrator may change.
// Nil pointers leave the field untouched. Stages is a whole-replacement:
// when non-nil the stored stage list is swapped out, never merged.
type QuestUpdate struct {
	CompanyName    *string
	CompanyLogo    *string
	Title          *string
	Description    *string
	PrizeAmount    *float64
	MaxWinners     *int
	CurrentWinners *int
	IsActive       *bool
	Stages         []QuestStage
}

// Apply merges the update into q field by field.
func (u QuestUpdate) Apply(q *Quest) {
	if u.CompanyName != nil {
		q.CompanyName = *u.CompanyName
	}
	if u.CompanyLogo != nil {
		q.CompanyLogo = *u.CompanyLogo
	}
	if u.Title != nil {
		q.Title = *u.Title
	}
	if u.Description != nil {
		q.Description = *u.Description
	}
	if u.PrizeAmount != nil {
		q.PrizeAmount = *u.PrizeAmount
	}
	if u.MaxWinners != nil {
		q.MaxWinners = *u.MaxWinners
	}
	if u.CurrentWinners != nil {
		q.CurrentWinners = *u.CurrentWinners
	}
	if u.IsActive != nil {
		q.IsActive = *u.IsActive
	}
	if u.Stages != nil {
		q.Stages = u.Stages
	}
}

// StageUpdate lists the mutable fields of a single stage. Changing the
// challenge type through ChallengeType also retags the embedded challenge so
// the two stay in lockstep.
type StageUpdate struct {
	Title         *string
	Description   *string
	ChallengeType *ChallengeType
	Prompt        *string
	Hint          *string
	FunctionCode  *string
	CipherText    *string
	LogicPuzzle   *string
	CorrectCode   *string
}

// Apply merges the update into s.
func (u StageUpdate) Apply(s *QuestStage) {
	if u.Title != nil {
		s.Title = *u.Title
	}
	if u.Description != nil {
		s.Description = *u.Description
	}
	if u.ChallengeType != nil {
		s.ChallengeType = *u.ChallengeType
		s.Challenge.Type = *u.ChallengeType
	}
	if u.Prompt != nil {
		s.Challenge.Prompt = *u.Prompt
	}
	if u.Hint != nil {
		s.Challenge.Hint = *u.Hint
	}
	if u.FunctionCode != nil {
		s.Challenge.FunctionCode = *u.FunctionCode
	}
	if u.CipherText != nil {
		s.Challenge.CipherText = *u.CipherText
	}
	if u.LogicPuzzle != nil {
		s.Challenge.LogicPuzzle = *u.LogicPuzzle
	}
	if u.CorrectCode != nil {
		s.CorrectCode = *u.CorrectCode
	}
}
