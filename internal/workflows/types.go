package workflows

type TakeNotesInput struct {
	PaperURL      string `json:"paper_url"`
	Name          string `json:"name"`
	PagesToDelete []int  `json:"pages_to_delete,omitempty"`
}

// TakeNotesStatus is served through the status query while an ingestion is
// running.
type TakeNotesStatus struct {
	PaperURL    string            `json:"paper_url"`
	CurrentStep string            `json:"current_step"`
	Status      string            `json:"status"`
	Steps       map[string]string `json:"steps"`
	NoteCount   int               `json:"note_count"`
}
