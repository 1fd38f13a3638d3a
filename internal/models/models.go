package models

import "time"

// Segment is one unit of extracted paper text, scoped to a page when the
// extractor reports one. Segments are created by the extractor and never
// mutated afterwards.
type Segment struct {
	Text       string `json:"text"`
	PageNumber *int   `json:"page_number,omitempty"`
	SourceURL  string `json:"source_url,omitempty"`
}

// Note is one distilled, citable fact about a paper.
type Note struct {
	Note        string `json:"note"`
	PageNumbers []int  `json:"pageNumbers"`
}

type Paper struct {
	Paper     string    `json:"paper"`
	URL       string    `json:"url"`
	Name      string    `json:"name"`
	Notes     []Note    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

type QARecord struct {
	Question          string    `json:"question"`
	Answer            string    `json:"answer"`
	Context           string    `json:"context"`
	FollowupQuestions []string  `json:"followup_questions"`
	CreatedAt         time.Time `json:"created_at"`
}

// SegmentResult is one similarity-search hit over stored embeddings.
type SegmentResult struct {
	Text       string  `json:"text"`
	PageNumber *int    `json:"page_number,omitempty"`
	SourceURL  string  `json:"source_url"`
	Score      float64 `json:"score"`
}
