package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	enumspb "go.temporal.io/api/enums/v1"
	tclient "go.temporal.io/sdk/client"

	"papernotes/internal/config"
	"papernotes/internal/models"
	"papernotes/internal/providers"
	"papernotes/internal/qa"
	"papernotes/internal/storage"
	"papernotes/internal/vector"
	"papernotes/internal/workflows"
)

type Server struct {
	cfg       config.Config
	db        *storage.DB
	paperRepo *storage.PaperRepo
	qaEngine  *qa.Engine
	temporal  tclient.Client
}

func NewServer(cfg config.Config) *Server {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	db, err := storage.NewDB(ctx, cfg.PostgresURL)
	if err != nil {
		panic(err)
	}
	if err := db.EnsureSchema(ctx, cfg.EmbedDim); err != nil {
		panic(err)
	}
	pm, err := providers.NewManager(cfg)
	if err != nil {
		panic(err)
	}
	tc, err := tclient.Dial(tclient.Options{HostPort: cfg.TemporalAddress})
	if err != nil {
		panic(err)
	}
	return &Server{
		cfg:       cfg,
		db:        db,
		paperRepo: storage.NewPaperRepo(db),
		qaEngine: qa.NewEngine(
			pm.FirstEmbedder(),
			pm.FirstToolCaller(),
			vector.NewSearcher(db.Pool),
			storage.NewQARepo(db),
			cfg.RetrievalTopK,
		),
		temporal: tc,
	}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/take-notes", s.handleTakeNotes)
	mux.HandleFunc("/take-notes/status", s.handleTakeNotesStatus)
	mux.HandleFunc("/qa", s.handleQA)
	mux.HandleFunc("/papers", s.handlePapers)
	return withCORS(mux)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleTakeNotes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	var req struct {
		PaperURL      string `json:"paperUrl"`
		Name          string `json:"name"`
		PagesToDelete []int  `json:"pagesToDelete"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("invalid json: %w", err))
		return
	}
	req.PaperURL = strings.TrimSpace(req.PaperURL)
	if req.PaperURL == "" {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("paperUrl is required"))
		return
	}
	// The suffix check is case sensitive and happens before anything is
	// fetched.
	if !strings.HasSuffix(req.PaperURL, ".pdf") {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("paperUrl must end in .pdf"))
		return
	}

	// One workflow per paper URL at a time; a second ingest of the same URL
	// while one is running comes back as a conflict.
	wfID := "take-notes-" + uuid.NewSHA1(uuid.NameSpaceURL, []byte(req.PaperURL)).String()
	we, err := s.temporal.ExecuteWorkflow(r.Context(), tclient.StartWorkflowOptions{
		ID:                                       wfID,
		TaskQueue:                                s.cfg.TemporalTaskQueue,
		WorkflowIDReusePolicy:                    enumspb.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE,
		WorkflowExecutionErrorWhenAlreadyStarted: true,
	}, workflows.TakeNotesWorkflow, workflows.TakeNotesInput{
		PaperURL:      req.PaperURL,
		Name:          req.Name,
		PagesToDelete: req.PagesToDelete,
	})
	if err != nil {
		writeErr(w, statusForStartError(err), err)
		return
	}

	var generated []models.Note
	if err := we.Get(r.Context(), &generated); err != nil {
		writeErr(w, statusForError(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"notes": generated})
}

func (s *Server) handleTakeNotesStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	url := strings.TrimSpace(r.URL.Query().Get("url"))
	if url == "" {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("url query parameter is required"))
		return
	}
	wfID := "take-notes-" + uuid.NewSHA1(uuid.NameSpaceURL, []byte(url)).String()
	resp, err := s.temporal.QueryWorkflow(r.Context(), wfID, "", workflows.QueryGetTakeNotesStatus)
	if err != nil {
		writeErr(w, http.StatusNotFound, fmt.Errorf("no ingestion found for url: %w", err))
		return
	}
	var status workflows.TakeNotesStatus
	if err := resp.Get(&status); err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) handleQA(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	var req struct {
		Question string `json:"question"`
		PaperURL string `json:"paperUrl"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("invalid json: %w", err))
		return
	}
	req.Question = strings.TrimSpace(req.Question)
	req.PaperURL = strings.TrimSpace(req.PaperURL)
	if req.Question == "" || req.PaperURL == "" {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("question and paperUrl are required"))
		return
	}

	result, err := s.qaEngine.Answer(r.Context(), req.Question, req.PaperURL)
	if err != nil {
		writeErr(w, statusForError(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"answer":            result.Answer,
		"followupQuestions": result.FollowupQuestions,
		"context":           result.Context,
	})
}

func (s *Server) handlePapers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	url := strings.TrimSpace(r.URL.Query().Get("url"))
	if url == "" {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("url query parameter is required"))
		return
	}
	paper, found, err := s.paperRepo.GetPaper(r.Context(), url)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	if !found {
		writeErr(w, http.StatusNotFound, fmt.Errorf("paper not found"))
		return
	}
	writeJSON(w, http.StatusOK, paper)
}
