package activities

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"papernotes/internal/config"
	"papernotes/internal/extract"
	"papernotes/internal/models"
	"papernotes/internal/notes"
	"papernotes/internal/pageedit"
	"papernotes/internal/providers"
	"papernotes/internal/storage"
	"papernotes/internal/util"
)

type Activities struct {
	cfg           config.Config
	extractor     *extract.Client
	generator     *notes.Generator
	embedder      providers.Embedder
	paperRepo     *storage.PaperRepo
	embeddingRepo *storage.EmbeddingRepo
	client        *http.Client
}

func New(cfg config.Config, db *storage.DB) (*Activities, error) {
	pm, err := providers.NewManager(cfg)
	if err != nil {
		return nil, err
	}
	return &Activities{
		cfg:           cfg,
		extractor:     extract.NewClient(cfg),
		generator:     notes.NewGenerator(pm.FirstToolCaller(), cfg.NoteChunkSize, cfg.NoteChunkOverlap),
		embedder:      pm.FirstEmbedder(),
		paperRepo:     storage.NewPaperRepo(db),
		embeddingRepo: storage.NewEmbeddingRepo(db),
		client:        &http.Client{Timeout: 60 * time.Second},
	}, nil
}

// FetchPaperActivity downloads the PDF into the scratch dir and returns its
// path. Later activities on the same task queue read it back from disk.
func (a *Activities) FetchPaperActivity(ctx context.Context, in FetchPaperInput) (FetchPaperOutput, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, in.PaperURL, nil)
	if err != nil {
		return FetchPaperOutput{}, classify(fmt.Errorf("%w: %v", util.ErrInvalidInput, err))
	}
	resp, err := a.client.Do(req)
	if err != nil {
		return FetchPaperOutput{}, fmt.Errorf("fetch paper: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return FetchPaperOutput{}, fmt.Errorf("fetch paper: status %d", resp.StatusCode)
	}

	if err := util.EnsureDir(a.cfg.ScratchDir); err != nil {
		return FetchPaperOutput{}, err
	}
	path := filepath.Join(a.cfg.ScratchDir, uuid.NewString()+".pdf")
	f, err := os.Create(path)
	if err != nil {
		return FetchPaperOutput{}, fmt.Errorf("create scratch pdf: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, resp.Body); err != nil {
		os.Remove(path)
		return FetchPaperOutput{}, fmt.Errorf("write scratch pdf: %w", err)
	}
	return FetchPaperOutput{Path: path}, nil
}

// RemovePagesActivity edits the fetched PDF in place. A nil or empty page
// list leaves the file untouched.
func (a *Activities) RemovePagesActivity(ctx context.Context, in RemovePagesInput) error {
	_ = ctx
	if len(in.PagesToDelete) == 0 {
		return nil
	}
	pdf, err := os.ReadFile(in.Path)
	if err != nil {
		return fmt.Errorf("read scratch pdf: %w", err)
	}
	edited, err := pageedit.RemovePages(pdf, in.PagesToDelete)
	if err != nil {
		return classify(err)
	}
	if err := os.WriteFile(in.Path, edited, 0o644); err != nil {
		return fmt.Errorf("write edited pdf: %w", err)
	}
	return nil
}

// InspectPaperActivity settles the display name: the caller's name when
// given, else the first text line of the PDF, else the URL's base name.
func (a *Activities) InspectPaperActivity(ctx context.Context, in InspectPaperInput) (InspectPaperOutput, error) {
	_ = ctx
	if name := strings.TrimSpace(in.Name); name != "" {
		return InspectPaperOutput{Name: name}, nil
	}
	pdf, err := os.ReadFile(in.Path)
	if err != nil {
		return InspectPaperOutput{}, fmt.Errorf("read scratch pdf: %w", err)
	}
	if title := extract.TitleFromPDF(pdf); title != "" {
		return InspectPaperOutput{Name: title}, nil
	}
	return InspectPaperOutput{Name: filepath.Base(in.PaperURL)}, nil
}

func (a *Activities) ExtractSegmentsActivity(ctx context.Context, in ExtractSegmentsInput) (ExtractSegmentsOutput, error) {
	pdf, err := os.ReadFile(in.Path)
	if err != nil {
		return ExtractSegmentsOutput{}, fmt.Errorf("read scratch pdf: %w", err)
	}
	segments, err := a.extractor.Extract(ctx, pdf)
	if err != nil {
		return ExtractSegmentsOutput{}, classify(err)
	}
	for i := range segments {
		segments[i].SourceURL = in.PaperURL
	}
	return ExtractSegmentsOutput{Segments: segments}, nil
}

func (a *Activities) GenerateNotesActivity(ctx context.Context, in GenerateNotesInput) (GenerateNotesOutput, error) {
	generated, err := a.generator.GenerateNotes(ctx, in.Segments)
	if err != nil {
		return GenerateNotesOutput{}, classify(err)
	}
	return GenerateNotesOutput{Notes: generated}, nil
}

func (a *Activities) AddPaperActivity(ctx context.Context, in AddPaperInput) error {
	texts := make([]string, 0, len(in.Segments))
	for _, s := range in.Segments {
		texts = append(texts, s.Text)
	}
	return classify(a.paperRepo.AddPaper(ctx, models.Paper{
		Paper: strings.Join(texts, "\n\n"),
		URL:   in.PaperURL,
		Name:  in.Name,
		Notes: in.Notes,
	}))
}

func (a *Activities) UpsertEmbeddingsActivity(ctx context.Context, in UpsertEmbeddingsInput) error {
	inputs := make([]string, 0, len(in.Segments))
	for _, s := range in.Segments {
		inputs = append(inputs, s.Text)
	}
	vectors, _, err := a.embedder.Embed(ctx, providers.EmbedRequest{
		Operation: "segment_embed",
		Inputs:    inputs,
		Dimension: a.cfg.EmbedDim,
	})
	if err != nil {
		return classify(err)
	}
	return classify(a.embeddingRepo.UpsertEmbeddings(ctx, in.Segments, vectors))
}

func (a *Activities) CleanupScratchActivity(ctx context.Context, in CleanupScratchInput) error {
	_ = ctx
	if in.Path == "" {
		return nil
	}
	if err := os.Remove(in.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove scratch pdf: %w", err)
	}
	return nil
}
