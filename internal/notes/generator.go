package notes

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"papernotes/internal/models"
	"papernotes/internal/providers"
	"papernotes/internal/util"
)

// Generator derives structured, page-cited notes from extracted segments via
// a tool-constrained generation call.
type Generator struct {
	llm          providers.ToolCaller
	chunkSize    int
	chunkOverlap int
}

func NewGenerator(llm providers.ToolCaller, chunkSize, chunkOverlap int) *Generator {
	return &Generator{llm: llm, chunkSize: chunkSize, chunkOverlap: chunkOverlap}
}

// GenerateNotes concatenates the segment texts in input order and runs note
// generation over them. Text beyond the chunk budget fans out into one call
// per chunk; note sequences merge back in chunk order, so a text that fits
// one chunk behaves exactly like a single call.
func (g *Generator) GenerateNotes(ctx context.Context, segments []models.Segment) ([]models.Note, error) {
	texts := make([]string, 0, len(segments))
	for _, s := range segments {
		if s.Text == "" {
			continue
		}
		texts = append(texts, s.Text)
	}
	paper := strings.Join(texts, "\n\n")
	if strings.TrimSpace(paper) == "" {
		return nil, fmt.Errorf("%w: no segment text to take notes on", util.ErrInvalidInput)
	}

	chunks := util.ChunkText(paper, g.chunkSize, g.chunkOverlap)
	perChunk := make([][]models.Note, len(chunks))

	eg, egCtx := errgroup.WithContext(ctx)
	for i, chunk := range chunks {
		i, chunk := i, chunk
		eg.Go(func() error {
			resp, _, err := g.llm.GenerateToolCalls(egCtx, providers.GenerateRequest{
				Operation: "take_notes",
				System:    notePrompt,
				Prompt:    "Paper: " + chunk,
				Tool:      noteToolSchema(),
			})
			if err != nil {
				return err
			}
			notes, err := ParseToolCalls(resp.ToolCalls)
			if err != nil {
				return err
			}
			perChunk[i] = notes
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	out := make([]models.Note, 0)
	for _, notes := range perChunk {
		out = append(out, notes...)
	}
	return out, nil
}

// ParseToolCalls validates a tool-constrained response and flattens it into
// notes in emission order. A response without tool calls, or a call whose
// arguments lack the notes object, is a hard error rather than a skip.
func ParseToolCalls(calls []providers.ToolCall) ([]models.Note, error) {
	if len(calls) == 0 {
		return nil, fmt.Errorf("%w: no tool calls found", util.ErrMalformedResponse)
	}
	out := make([]models.Note, 0, len(calls))
	for i, call := range calls {
		var args struct {
			Notes *models.Note `json:"notes"`
		}
		if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
			return nil, fmt.Errorf("%w: decode tool call %d arguments: %v", util.ErrMalformedResponse, i, err)
		}
		if args.Notes == nil {
			return nil, fmt.Errorf("%w: tool call %d missing notes object", util.ErrMalformedResponse, i)
		}
		out = append(out, *args.Notes)
	}
	return out, nil
}
