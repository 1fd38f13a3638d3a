package qa

import "papernotes/internal/providers"

const answerPrompt = `Answer the question using only the provided context from a scientific paper.

Rules:
    - Ground every claim in the context; do not use outside knowledge.
    - If the context does not contain enough information, say what is missing.
    - Propose follow-up questions only when the context suggests them.`

func answerToolSchema() providers.ToolSchema {
	return providers.ToolSchema{
		Name:        "formatAnswer",
		Description: "Formats the answer response",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"answer": map[string]any{
					"type":        "string",
					"description": "The grounded answer to the question",
				},
				"followupQuestions": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type":        "string",
						"description": "Follow-up questions the reader might ask next",
					},
				},
			},
			"required": []string{"answer"},
		},
	}
}
