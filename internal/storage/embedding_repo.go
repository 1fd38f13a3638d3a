package storage

import (
	"context"
	"fmt"

	"papernotes/internal/models"
	"papernotes/internal/util"
	"papernotes/internal/vector"
)

type EmbeddingRepo struct {
	db *DB
}

func NewEmbeddingRepo(db *DB) *EmbeddingRepo {
	return &EmbeddingRepo{db: db}
}

// UpsertEmbeddings writes one vector row per segment, carrying the segment
// text and its url/page metadata. vectors[i] belongs to segments[i].
func (r *EmbeddingRepo) UpsertEmbeddings(ctx context.Context, segments []models.Segment, vectors [][]float32) error {
	if len(segments) != len(vectors) {
		return fmt.Errorf("%w: %d segments but %d vectors", util.ErrPersistence, len(segments), len(vectors))
	}
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: begin embeddings tx: %v", util.ErrPersistence, err)
	}
	defer tx.Rollback(ctx)

	for i, s := range segments {
		_, err := tx.Exec(ctx, `
INSERT INTO embeddings (content, url, page_number, embedding)
VALUES ($1, $2, $3, $4::vector)`,
			util.SanitizeText(s.Text), s.SourceURL, s.PageNumber, vector.ToLiteral(vectors[i]),
		)
		if err != nil {
			return fmt.Errorf("%w: insert embedding %d: %v", util.ErrPersistence, i, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: commit embeddings: %v", util.ErrPersistence, err)
	}
	return nil
}
