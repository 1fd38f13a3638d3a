package workflows

import (
	"context"
	"errors"
	"testing"

	"papernotes/internal/activities"
	"papernotes/internal/models"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"
)

func registerActivityName[T any](env *testsuite.TestWorkflowEnvironment, name string, fn T) {
	env.RegisterActivityWithOptions(fn, activity.RegisterOptions{Name: name})
}

func registerTakeNotesActivities(env *testsuite.TestWorkflowEnvironment) {
	registerActivityName(env, "FetchPaperActivity", func(context.Context, activities.FetchPaperInput) (activities.FetchPaperOutput, error) {
		return activities.FetchPaperOutput{}, nil
	})
	registerActivityName(env, "RemovePagesActivity", func(context.Context, activities.RemovePagesInput) error { return nil })
	registerActivityName(env, "InspectPaperActivity", func(context.Context, activities.InspectPaperInput) (activities.InspectPaperOutput, error) {
		return activities.InspectPaperOutput{}, nil
	})
	registerActivityName(env, "ExtractSegmentsActivity", func(context.Context, activities.ExtractSegmentsInput) (activities.ExtractSegmentsOutput, error) {
		return activities.ExtractSegmentsOutput{}, nil
	})
	registerActivityName(env, "GenerateNotesActivity", func(context.Context, activities.GenerateNotesInput) (activities.GenerateNotesOutput, error) {
		return activities.GenerateNotesOutput{}, nil
	})
	registerActivityName(env, "AddPaperActivity", func(context.Context, activities.AddPaperInput) error { return nil })
	registerActivityName(env, "UpsertEmbeddingsActivity", func(context.Context, activities.UpsertEmbeddingsInput) error { return nil })
	registerActivityName(env, "CleanupScratchActivity", func(context.Context, activities.CleanupScratchInput) error { return nil })
}

func TestTakeNotesWorkflowSuccess(t *testing.T) {
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()
	env.RegisterWorkflow(TakeNotesWorkflow)
	registerTakeNotesActivities(env)

	page := 1
	segments := []models.Segment{{Text: "segment text", PageNumber: &page, SourceURL: "https://example.com/p.pdf"}}
	notes := []models.Note{{Note: "the paper proposes a method", PageNumbers: []int{1}}}

	env.OnActivity("FetchPaperActivity", mock.Anything, activities.FetchPaperInput{PaperURL: "https://example.com/p.pdf"}).Return(activities.FetchPaperOutput{Path: "/tmp/p.pdf"}, nil)
	env.OnActivity("RemovePagesActivity", mock.Anything, activities.RemovePagesInput{Path: "/tmp/p.pdf", PagesToDelete: []int{2, 5}}).Return(nil)
	env.OnActivity("InspectPaperActivity", mock.Anything, mock.Anything).Return(activities.InspectPaperOutput{Name: "Paper Title"}, nil)
	env.OnActivity("ExtractSegmentsActivity", mock.Anything, activities.ExtractSegmentsInput{Path: "/tmp/p.pdf", PaperURL: "https://example.com/p.pdf"}).Return(activities.ExtractSegmentsOutput{Segments: segments}, nil)
	env.OnActivity("GenerateNotesActivity", mock.Anything, activities.GenerateNotesInput{Segments: segments}).Return(activities.GenerateNotesOutput{Notes: notes}, nil)
	env.OnActivity("AddPaperActivity", mock.Anything, activities.AddPaperInput{
		PaperURL: "https://example.com/p.pdf",
		Name:     "Paper Title",
		Segments: segments,
		Notes:    notes,
	}).Return(nil)
	env.OnActivity("UpsertEmbeddingsActivity", mock.Anything, activities.UpsertEmbeddingsInput{Segments: segments}).Return(nil)
	env.OnActivity("CleanupScratchActivity", mock.Anything, activities.CleanupScratchInput{Path: "/tmp/p.pdf"}).Return(nil)

	env.ExecuteWorkflow(TakeNotesWorkflow, TakeNotesInput{
		PaperURL:      "https://example.com/p.pdf",
		PagesToDelete: []int{2, 5},
	})
	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var out []models.Note
	require.NoError(t, env.GetWorkflowResult(&out))
	require.Equal(t, notes, out)
	env.AssertExpectations(t)
}

func TestTakeNotesWorkflowSkipsRemovePagesWhenListEmpty(t *testing.T) {
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()
	env.RegisterWorkflow(TakeNotesWorkflow)
	registerTakeNotesActivities(env)

	env.OnActivity("FetchPaperActivity", mock.Anything, mock.Anything).Return(activities.FetchPaperOutput{Path: "/tmp/p.pdf"}, nil)
	env.OnActivity("InspectPaperActivity", mock.Anything, mock.Anything).Return(activities.InspectPaperOutput{Name: "n"}, nil)
	env.OnActivity("ExtractSegmentsActivity", mock.Anything, mock.Anything).Return(activities.ExtractSegmentsOutput{Segments: []models.Segment{{Text: "t"}}}, nil)
	env.OnActivity("GenerateNotesActivity", mock.Anything, mock.Anything).Return(activities.GenerateNotesOutput{Notes: []models.Note{{Note: "n"}}}, nil)
	env.OnActivity("AddPaperActivity", mock.Anything, mock.Anything).Return(nil)
	env.OnActivity("UpsertEmbeddingsActivity", mock.Anything, mock.Anything).Return(nil)
	env.OnActivity("CleanupScratchActivity", mock.Anything, mock.Anything).Return(nil)

	env.ExecuteWorkflow(TakeNotesWorkflow, TakeNotesInput{PaperURL: "https://example.com/p.pdf"})
	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())
	env.AssertNotCalled(t, "RemovePagesActivity", mock.Anything, mock.Anything)
}

func TestTakeNotesWorkflowPaperWriteFailureFailsIngestion(t *testing.T) {
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()
	env.RegisterWorkflow(TakeNotesWorkflow)
	registerTakeNotesActivities(env)

	env.OnActivity("FetchPaperActivity", mock.Anything, mock.Anything).Return(activities.FetchPaperOutput{Path: "/tmp/p.pdf"}, nil)
	env.OnActivity("InspectPaperActivity", mock.Anything, mock.Anything).Return(activities.InspectPaperOutput{Name: "n"}, nil)
	env.OnActivity("ExtractSegmentsActivity", mock.Anything, mock.Anything).Return(activities.ExtractSegmentsOutput{Segments: []models.Segment{{Text: "t"}}}, nil)
	env.OnActivity("GenerateNotesActivity", mock.Anything, mock.Anything).Return(activities.GenerateNotesOutput{Notes: []models.Note{{Note: "n"}}}, nil)
	env.OnActivity("AddPaperActivity", mock.Anything, mock.Anything).Return(errors.New("InvalidInput: paper row rejected"))
	env.OnActivity("UpsertEmbeddingsActivity", mock.Anything, mock.Anything).Return(nil)
	env.OnActivity("CleanupScratchActivity", mock.Anything, mock.Anything).Return(nil)

	env.ExecuteWorkflow(TakeNotesWorkflow, TakeNotesInput{PaperURL: "https://example.com/p.pdf"})
	require.True(t, env.IsWorkflowCompleted())
	require.Error(t, env.GetWorkflowError())
	// The embedding write still ran; ingestion fails without rolling it back.
	env.AssertCalled(t, "UpsertEmbeddingsActivity", mock.Anything, mock.Anything)
}

func TestTakeNotesWorkflowConfigErrorNotRetried(t *testing.T) {
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()
	env.RegisterWorkflow(TakeNotesWorkflow)

	extractCalls := 0
	registerActivityName(env, "FetchPaperActivity", func(context.Context, activities.FetchPaperInput) (activities.FetchPaperOutput, error) {
		return activities.FetchPaperOutput{Path: "/tmp/p.pdf"}, nil
	})
	registerActivityName(env, "InspectPaperActivity", func(context.Context, activities.InspectPaperInput) (activities.InspectPaperOutput, error) {
		return activities.InspectPaperOutput{Name: "n"}, nil
	})
	registerActivityName(env, "ExtractSegmentsActivity", func(context.Context, activities.ExtractSegmentsInput) (activities.ExtractSegmentsOutput, error) {
		extractCalls++
		return activities.ExtractSegmentsOutput{}, temporal.NewApplicationError("missing required configuration: UNSTRUCTURED_API_KEY not set", "MissingConfig")
	})
	registerActivityName(env, "CleanupScratchActivity", func(context.Context, activities.CleanupScratchInput) error { return nil })

	env.ExecuteWorkflow(TakeNotesWorkflow, TakeNotesInput{PaperURL: "https://example.com/p.pdf"})
	require.True(t, env.IsWorkflowCompleted())
	err := env.GetWorkflowError()
	require.Error(t, err)
	require.Equal(t, 1, extractCalls)

	var appErr *temporal.ApplicationError
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, "MissingConfig", appErr.Type())
}

func TestTakeNotesWorkflowRejectsNonPDFURL(t *testing.T) {
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()
	env.RegisterWorkflow(TakeNotesWorkflow)
	registerTakeNotesActivities(env)

	env.ExecuteWorkflow(TakeNotesWorkflow, TakeNotesInput{PaperURL: "https://example.com/p.PDF"})
	require.True(t, env.IsWorkflowCompleted())
	require.Error(t, env.GetWorkflowError())
	env.AssertNotCalled(t, "FetchPaperActivity", mock.Anything, mock.Anything)
}
