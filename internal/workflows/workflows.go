package workflows

import (
	"fmt"
	"strings"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"papernotes/internal/activities"
	"papernotes/internal/models"
)

const QueryGetTakeNotesStatus = "GetTakeNotesStatus"

// TakeNotesWorkflow ingests one paper: fetch by URL, optionally drop pages,
// extract page-tagged segments, generate notes, then persist the paper
// record and the segment embeddings as two concurrent writes. Both writes
// must succeed; a failure of either fails the ingestion with no compensating
// rollback of the other.
func TakeNotesWorkflow(ctx workflow.Context, input TakeNotesInput) ([]models.Note, error) {
	status := TakeNotesStatus{
		PaperURL:    input.PaperURL,
		CurrentStep: "init",
		Status:      "processing",
		Steps:       map[string]string{},
	}
	if err := workflow.SetQueryHandler(ctx, QueryGetTakeNotesStatus, func() (TakeNotesStatus, error) {
		return status, nil
	}); err != nil {
		return nil, err
	}

	if !strings.HasSuffix(input.PaperURL, ".pdf") {
		return nil, fmt.Errorf("paper url must end in .pdf: %s", input.PaperURL)
	}

	ao := workflow.ActivityOptions{
		StartToCloseTimeout: 5 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2,
			MaximumInterval:    20 * time.Second,
			MaximumAttempts:    3,
			NonRetryableErrorTypes: []string{
				"InvalidInput",
				"InvalidPage",
				"MissingConfig",
				"MalformedResponse",
			},
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)

	scratchPath := ""
	fail := func(err error) ([]models.Note, error) {
		status.Status = "failed"
		status.Steps[status.CurrentStep] = "failed"
		if scratchPath != "" {
			_ = workflow.ExecuteActivity(ctx, "CleanupScratchActivity", activities.CleanupScratchInput{Path: scratchPath}).Get(ctx, nil)
		}
		return nil, err
	}

	status.CurrentStep = "fetch_paper"
	status.Steps[status.CurrentStep] = "processing"
	var fetched activities.FetchPaperOutput
	if err := workflow.ExecuteActivity(ctx, "FetchPaperActivity", activities.FetchPaperInput{PaperURL: input.PaperURL}).Get(ctx, &fetched); err != nil {
		return fail(err)
	}
	scratchPath = fetched.Path
	status.Steps[status.CurrentStep] = "done"

	if len(input.PagesToDelete) > 0 {
		status.CurrentStep = "remove_pages"
		status.Steps[status.CurrentStep] = "processing"
		if err := workflow.ExecuteActivity(ctx, "RemovePagesActivity", activities.RemovePagesInput{
			Path:          fetched.Path,
			PagesToDelete: input.PagesToDelete,
		}).Get(ctx, nil); err != nil {
			return fail(err)
		}
		status.Steps[status.CurrentStep] = "done"
	}

	status.CurrentStep = "inspect_paper"
	status.Steps[status.CurrentStep] = "processing"
	var inspected activities.InspectPaperOutput
	if err := workflow.ExecuteActivity(ctx, "InspectPaperActivity", activities.InspectPaperInput{
		Path:     fetched.Path,
		PaperURL: input.PaperURL,
		Name:     input.Name,
	}).Get(ctx, &inspected); err != nil {
		return fail(err)
	}
	status.Steps[status.CurrentStep] = "done"

	status.CurrentStep = "extract_segments"
	status.Steps[status.CurrentStep] = "processing"
	var extracted activities.ExtractSegmentsOutput
	if err := workflow.ExecuteActivity(ctx, "ExtractSegmentsActivity", activities.ExtractSegmentsInput{
		Path:     fetched.Path,
		PaperURL: input.PaperURL,
	}).Get(ctx, &extracted); err != nil {
		return fail(err)
	}
	status.Steps[status.CurrentStep] = "done"

	status.CurrentStep = "generate_notes"
	status.Steps[status.CurrentStep] = "processing"
	var generated activities.GenerateNotesOutput
	if err := workflow.ExecuteActivity(ctx, "GenerateNotesActivity", activities.GenerateNotesInput{
		Segments: extracted.Segments,
	}).Get(ctx, &generated); err != nil {
		return fail(err)
	}
	status.NoteCount = len(generated.Notes)
	status.Steps[status.CurrentStep] = "done"

	// Paper record and embedding batch are written concurrently; both must
	// land before the ingestion reports success.
	status.CurrentStep = "persist"
	status.Steps[status.CurrentStep] = "processing"
	paperFuture := workflow.ExecuteActivity(ctx, "AddPaperActivity", activities.AddPaperInput{
		PaperURL: input.PaperURL,
		Name:     inspected.Name,
		Segments: extracted.Segments,
		Notes:    generated.Notes,
	})
	embedFuture := workflow.ExecuteActivity(ctx, "UpsertEmbeddingsActivity", activities.UpsertEmbeddingsInput{
		Segments: extracted.Segments,
	})
	paperErr := paperFuture.Get(ctx, nil)
	embedErr := embedFuture.Get(ctx, nil)
	if paperErr != nil {
		return fail(paperErr)
	}
	if embedErr != nil {
		return fail(embedErr)
	}
	status.Steps[status.CurrentStep] = "done"

	_ = workflow.ExecuteActivity(ctx, "CleanupScratchActivity", activities.CleanupScratchInput{Path: scratchPath}).Get(ctx, nil)

	status.CurrentStep = "done"
	status.Status = "processed"
	return generated.Notes, nil
}
