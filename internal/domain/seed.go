package domain

// DefaultCatalog is the demo catalog materialized on first run when no quest
// collection exists yet. createdAt is stamped onto every quest.
func DefaultCatalog(createdAt int64) []Quest {
	return []Quest{
		{
			ID:             "quest-1",
			CompanyName:    "SecureChain Labs",
			Title:          "Smart Contract Auditor Challenge",
			Description:    "Prove your skills by solving security puzzles and logic challenges",
			PrizeAmount:    5000,
			MaxWinners:     10,
			CurrentWinners: 3,
			IsActive:       true,
			CreatedAt:      createdAt,
			Stages: []QuestStage{
				{
					ID:            "stage-1",
					StageNumber:   1,
					Title:         "Function Analysis",
					Description:   "Analyze this function and find the output",
					ChallengeType: ChallengeFunction,
					Challenge: Challenge{
						Type:   ChallengeFunction,
						Prompt: "What is the result of calling this function with input 42?",
						FunctionCode: "function mystery(x) {\n" +
							"  let result = x;\n" +
							"  for (let i = 0; i < 3; i++) {\n" +
							"    result = result * 2 + i;\n" +
							"  }\n" +
							"  return result;\n" +
							"}",
						Hint: "Follow the loop iterations carefully",
					},
					CorrectCode: "339",
				},
				{
					ID:            "stage-2",
					StageNumber:   2,
					Title:         "Cipher Decryption",
					Description:   "Decrypt the message to proceed",
					ChallengeType: ChallengeCipher,
					Challenge: Challenge{
						Type:       ChallengeCipher,
						Prompt:     "Decode this Caesar cipher (shift 3):",
						CipherText: "VHFXULWB",
						Hint:       "Each letter is shifted by 3 positions",
					},
					CorrectCode: "SECURITY",
				},
				{
					ID:            "stage-3",
					StageNumber:   3,
					Title:         "Logic Puzzle",
					Description:   "Solve the logical riddle",
					ChallengeType: ChallengeLogic,
					Challenge: Challenge{
						Type:   ChallengeLogic,
						Prompt: "If all Bloops are Razzies and all Razzies are Lazzies, then all Bloops are definitely Lazzies. What is the next number in sequence: 2, 6, 12, 20, 30, ?",
						Hint:   "Look at the differences between consecutive numbers",
					},
					CorrectCode: "42",
				},
			},
		},
		{
			ID:             "quest-2",
			CompanyName:    "DeFi Security Inc",
			Title:          "Protocol Security Expert",
			Description:    "Advanced cryptographic and security challenges",
			PrizeAmount:    8000,
			MaxWinners:     5,
			CurrentWinners: 1,
			IsActive:       true,
			CreatedAt:      createdAt,
			Stages: []QuestStage{
				{
					ID:            "stage-1",
					StageNumber:   1,
					Title:         "Hash Analysis",
					Description:   "Find the pattern in the hash",
					ChallengeType: ChallengeCrypto,
					Challenge: Challenge{
						Type:   ChallengeCrypto,
						Prompt: "What is the sum of all digits in this hex: 0x1A2B3C?",
						Hint:   "Convert hex to decimal first",
					},
					CorrectCode: "21",
				},
				{
					ID:            "stage-2",
					StageNumber:   2,
					Title:         "Smart Contract Logic",
					Description:   "Analyze the contract vulnerability",
					ChallengeType: ChallengeFunction,
					Challenge: Challenge{
						Type:   ChallengeFunction,
						Prompt: "What value causes overflow in this Solidity-like function?",
						FunctionCode: "function check(uint8 x) {\n" +
							"  return x + 200;\n" +
							"}",
						Hint: "uint8 max value is 255",
					},
					CorrectCode: "56",
				},
			},
		},
	}
}
