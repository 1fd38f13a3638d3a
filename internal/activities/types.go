package activities

import "papernotes/internal/models"

type FetchPaperInput struct {
	PaperURL string `json:"paper_url"`
}

type FetchPaperOutput struct {
	Path string `json:"path"`
}

type RemovePagesInput struct {
	Path          string `json:"path"`
	PagesToDelete []int  `json:"pages_to_delete"`
}

type InspectPaperInput struct {
	Path     string `json:"path"`
	PaperURL string `json:"paper_url"`
	Name     string `json:"name"`
}

type InspectPaperOutput struct {
	Name string `json:"name"`
}

type ExtractSegmentsInput struct {
	Path     string `json:"path"`
	PaperURL string `json:"paper_url"`
}

type ExtractSegmentsOutput struct {
	Segments []models.Segment `json:"segments"`
}

type GenerateNotesInput struct {
	Segments []models.Segment `json:"segments"`
}

type GenerateNotesOutput struct {
	Notes []models.Note `json:"notes"`
}

type AddPaperInput struct {
	PaperURL string           `json:"paper_url"`
	Name     string           `json:"name"`
	Segments []models.Segment `json:"segments"`
	Notes    []models.Note    `json:"notes"`
}

type UpsertEmbeddingsInput struct {
	Segments []models.Segment `json:"segments"`
}

type CleanupScratchInput struct {
	Path string `json:"path"`
}
