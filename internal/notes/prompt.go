package notes

import "papernotes/internal/providers"

const notePrompt = `Take notes on the following scientific paper.
This is a technical/scientific paper.
The goal is to be able to create a complete understanding of the paper.

Rules:
    - Include scientific quotes and details inside your notes.
    - Respond with as many notes as it might take to cover the entire paper.
    - Go into as much detail as you can, while keeping each note on a very specific part of the paper.
    - Include notes about the results of any experiments the paper described.
    - Include notes about any steps to reproduce the results of the experiments.
    - DO NOT respond with notes like: "The author discusses how well XYZ works.", instead explain what XYZ is and how it works.

Respond with a JSON object with two keys: "note" and "pageNumbers".
"note" will be a specific note, and "pageNumbers" will be an array of the page numbers of the note.
Take a deep breath, and work your way through the paper step by step.`

func noteToolSchema() providers.ToolSchema {
	return providers.ToolSchema{
		Name:        "formatNotes",
		Description: "Formats the notes response",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"notes": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"note": map[string]any{
							"type":        "string",
							"description": "The notes",
						},
						"pageNumbers": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type":        "number",
								"description": "The page number(s) of the notes",
							},
						},
					},
				},
			},
			"required": []string{"notes"},
		},
	}
}
