package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"papernotes/internal/config"
	"papernotes/internal/models"
	"papernotes/internal/util"
)

// Client talks to the Unstructured partition API. The PDF bytes are staged
// in a scratch file for the duration of one call and removed on every exit
// path, success or failure.
type Client struct {
	apiKey     string
	baseURL    string
	scratchDir string
	client     *http.Client
}

func NewClient(cfg config.Config) *Client {
	return &Client{
		apiKey:     cfg.UnstructuredKey,
		baseURL:    cfg.UnstructuredURL,
		scratchDir: cfg.ScratchDir,
		client:     &http.Client{Timeout: 120 * time.Second},
	}
}

// Extract converts PDF bytes into page-tagged segments, dropping segments
// whose text is empty. The extraction credential is checked before any I/O.
func (c *Client) Extract(ctx context.Context, pdf []byte) ([]models.Segment, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: UNSTRUCTURED_API_KEY not set", util.ErrMissingConfig)
	}

	if err := util.EnsureDir(c.scratchDir); err != nil {
		return nil, err
	}
	path := filepath.Join(c.scratchDir, uuid.NewString()+".pdf")
	if err := os.WriteFile(path, pdf, 0o644); err != nil {
		return nil, fmt.Errorf("write scratch pdf: %w", err)
	}
	defer os.Remove(path)

	segments, err := c.partition(ctx, path)
	if err != nil {
		return nil, err
	}

	out := make([]models.Segment, 0, len(segments))
	for _, s := range segments {
		if strings.TrimSpace(s.Text) == "" {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (c *Client) partition(ctx context.Context, path string) ([]models.Segment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scratch pdf: %w", err)
	}
	defer f.Close()

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	part, err := mw.CreateFormFile("files", filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("build multipart: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, fmt.Errorf("copy pdf into multipart: %w", err)
	}
	if err := mw.WriteField("strategy", "hi_res"); err != nil {
		return nil, fmt.Errorf("build multipart: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("build multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, body)
	if err != nil {
		return nil, fmt.Errorf("build partition request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("unstructured-api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrExtractionService, err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: status %d: %s", util.ErrExtractionService, resp.StatusCode, string(raw))
	}

	var elements []struct {
		Text     string `json:"text"`
		Metadata struct {
			PageNumber *int `json:"page_number"`
		} `json:"metadata"`
	}
	if err := json.Unmarshal(raw, &elements); err != nil {
		return nil, fmt.Errorf("%w: decode partition response: %v", util.ErrExtractionService, err)
	}

	out := make([]models.Segment, 0, len(elements))
	for _, el := range elements {
		out = append(out, models.Segment{
			Text:       util.SanitizeText(el.Text),
			PageNumber: el.Metadata.PageNumber,
		})
	}
	return out, nil
}
