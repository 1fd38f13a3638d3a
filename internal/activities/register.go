package activities

import "go.temporal.io/sdk/worker"

func Register(w worker.Worker, a *Activities) {
	w.RegisterActivity(a.FetchPaperActivity)
	w.RegisterActivity(a.RemovePagesActivity)
	w.RegisterActivity(a.InspectPaperActivity)
	w.RegisterActivity(a.ExtractSegmentsActivity)
	w.RegisterActivity(a.GenerateNotesActivity)
	w.RegisterActivity(a.AddPaperActivity)
	w.RegisterActivity(a.UpsertEmbeddingsActivity)
	w.RegisterActivity(a.CleanupScratchActivity)
}
