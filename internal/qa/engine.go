package qa

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"papernotes/internal/models"
	"papernotes/internal/providers"
	"papernotes/internal/util"
	"papernotes/internal/vector"
)

// Retriever finds the stored segments most similar to a query vector.
type Retriever interface {
	SearchSegments(ctx context.Context, queryVec []float32, topK int, filters vector.SearchFilters) ([]models.SegmentResult, error)
}

// Saver persists one QA exchange. Write rejections propagate.
type Saver interface {
	SaveQA(ctx context.Context, rec models.QARecord) error
}

type Result struct {
	Answer            string   `json:"answer"`
	FollowupQuestions []string `json:"followup_questions"`
	Context           string   `json:"context"`
}

// Engine answers a free-form question about a previously ingested paper:
// retrieve top-k similar segments, assemble them into one context string,
// synthesize a grounded answer, persist the exchange. The first error at
// any stage aborts the invocation; a failed synthesis persists nothing.
type Engine struct {
	embedder  providers.Embedder
	llm       providers.ToolCaller
	retriever Retriever
	saver     Saver
	topK      int
}

func NewEngine(embedder providers.Embedder, llm providers.ToolCaller, retriever Retriever, saver Saver, topK int) *Engine {
	if topK <= 0 {
		topK = 8
	}
	return &Engine{embedder: embedder, llm: llm, retriever: retriever, saver: saver, topK: topK}
}

// Answer scopes retrieval to the given paper URL. Scoping is a deliberate
// tightening over global search; see DESIGN.md for the recall trade-off.
func (e *Engine) Answer(ctx context.Context, question, paperURL string) (Result, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return Result{}, fmt.Errorf("%w: question is required", util.ErrInvalidInput)
	}

	vectors, _, err := e.embedder.Embed(ctx, providers.EmbedRequest{
		Operation: "qa_query_embed",
		Inputs:    []string{question},
	})
	if err != nil {
		return Result{}, fmt.Errorf("embed question: %w", err)
	}
	if len(vectors) == 0 {
		return Result{}, fmt.Errorf("embedding provider returned no vectors")
	}

	hits, err := e.retriever.SearchSegments(ctx, vectors[0], e.topK, vector.SearchFilters{URL: paperURL})
	if err != nil {
		return Result{}, fmt.Errorf("retrieve segments: %w", err)
	}

	texts := make([]string, 0, len(hits))
	for _, h := range hits {
		texts = append(texts, h.Text)
	}
	contextText := strings.Join(texts, "\n\n")

	resp, _, err := e.llm.GenerateToolCalls(ctx, providers.GenerateRequest{
		Operation: "qa_answer",
		System:    answerPrompt,
		Prompt:    "Question: " + question + "\n\nContext:\n" + contextText,
		Tool:      answerToolSchema(),
	})
	if err != nil {
		return Result{}, fmt.Errorf("synthesize answer: %w", err)
	}
	answer, followups, err := parseAnswer(resp.ToolCalls)
	if err != nil {
		return Result{}, err
	}

	if err := e.saver.SaveQA(ctx, models.QARecord{
		Question:          question,
		Answer:            answer,
		Context:           contextText,
		FollowupQuestions: followups,
	}); err != nil {
		return Result{}, err
	}

	return Result{Answer: answer, FollowupQuestions: followups, Context: contextText}, nil
}

func parseAnswer(calls []providers.ToolCall) (string, []string, error) {
	if len(calls) == 0 {
		return "", nil, fmt.Errorf("%w: no tool calls found", util.ErrMalformedResponse)
	}
	var args struct {
		Answer            *string  `json:"answer"`
		FollowupQuestions []string `json:"followupQuestions"`
	}
	if err := json.Unmarshal([]byte(calls[0].Arguments), &args); err != nil {
		return "", nil, fmt.Errorf("%w: decode answer arguments: %v", util.ErrMalformedResponse, err)
	}
	if args.Answer == nil || strings.TrimSpace(*args.Answer) == "" {
		return "", nil, fmt.Errorf("%w: missing answer", util.ErrMalformedResponse)
	}
	followups := args.FollowupQuestions
	if followups == nil {
		followups = []string{}
	}
	return *args.Answer, followups, nil
}
