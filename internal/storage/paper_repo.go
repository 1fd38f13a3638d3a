package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"papernotes/internal/models"
	"papernotes/internal/util"
)

// paperQuerier is the slice of the pgx pool the repo needs; tests supply a
// fake, the same way vector.Searcher takes its Queryer.
type paperQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PaperRepo struct {
	q paperQuerier
}

func NewPaperRepo(db *DB) *PaperRepo {
	return &PaperRepo{q: db.Pool}
}

// AddPaper appends one paper record. URL uniqueness is not enforced here;
// a repeated ingestion appends a new row and GetPaper keeps returning the
// first one.
func (r *PaperRepo) AddPaper(ctx context.Context, p models.Paper) error {
	notesJSON, err := json.Marshal(p.Notes)
	if err != nil {
		return fmt.Errorf("%w: encode notes: %v", util.ErrPersistence, err)
	}
	_, err = r.q.Exec(ctx, `
INSERT INTO papers (paper, url, name, notes)
VALUES ($1, $2, $3, $4)`,
		util.SanitizeText(p.Paper), p.URL, p.Name, notesJSON,
	)
	if err != nil {
		return fmt.Errorf("%w: insert paper: %v", util.ErrPersistence, err)
	}
	return nil
}

// GetPaper looks up the first paper record for a URL. The three outcomes are
// kept apart: (paper, true, nil) when found, (zero, false, nil) when absent,
// and (zero, false, err) when the read itself failed.
func (r *PaperRepo) GetPaper(ctx context.Context, url string) (models.Paper, bool, error) {
	var (
		p         models.Paper
		notesJSON []byte
	)
	err := r.q.QueryRow(ctx, `
SELECT paper, url, name, notes, created_at
FROM papers
WHERE url = $1
ORDER BY id
LIMIT 1`, url).Scan(&p.Paper, &p.URL, &p.Name, &notesJSON, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Paper{}, false, nil
	}
	if err != nil {
		return models.Paper{}, false, fmt.Errorf("%w: get paper: %v", util.ErrPersistence, err)
	}
	if len(notesJSON) > 0 {
		if err := json.Unmarshal(notesJSON, &p.Notes); err != nil {
			return models.Paper{}, false, fmt.Errorf("%w: decode notes: %v", util.ErrPersistence, err)
		}
	}
	return p, true, nil
}
