package vector

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"papernotes/internal/models"
)

// SearchFilters narrows a similarity search. A non-empty URL restricts
// retrieval to segments of one ingested paper; the zero value searches the
// whole corpus.
type SearchFilters struct {
	URL string
}

type Queryer interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type Searcher struct {
	q Queryer
}

func NewSearcher(q Queryer) *Searcher {
	return &Searcher{q: q}
}

func (s *Searcher) SearchSegments(ctx context.Context, queryVec []float32, topK int, filters SearchFilters) ([]models.SegmentResult, error) {
	if topK <= 0 {
		topK = 8
	}
	vecLiteral := ToLiteral(queryVec)
	args := []any{vecLiteral, topK}

	filterSQL := ""
	if strings.TrimSpace(filters.URL) != "" {
		filterSQL = " AND url = $3"
		args = append(args, filters.URL)
	}

	query := `
SELECT content,
       page_number,
       url,
       1 - (embedding <=> $1::vector) AS score
FROM embeddings
WHERE embedding IS NOT NULL` + filterSQL + `
ORDER BY embedding <=> $1::vector
LIMIT $2`

	rows, err := s.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query vector search: %w", err)
	}
	defer rows.Close()

	results := make([]models.SegmentResult, 0, topK)
	for rows.Next() {
		var r models.SegmentResult
		if err := rows.Scan(&r.Text, &r.PageNumber, &r.SourceURL, &r.Score); err != nil {
			return nil, fmt.Errorf("scan segment result: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate search rows: %w", err)
	}
	return results, nil
}

func ToLiteral(v []float32) string {
	parts := make([]string, 0, len(v))
	for _, x := range v {
		parts = append(parts, fmt.Sprintf("%f", x))
	}
	return "[" + strings.Join(parts, ",") + "]"
}
