package storage

import (
	"context"
	"fmt"
)

// EnsureSchema creates the three tables the service writes to, so a fresh
// database works without an operator running migrations by hand. The vector
// column width follows the configured embedding dimension; requires the
// pgvector extension to be installable by the connecting role.
func (d *DB) EnsureSchema(ctx context.Context, embedDim int) error {
	if _, err := d.Pool.Exec(ctx, schemaDDL(embedDim)); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

func schemaDDL(embedDim int) string {
	if embedDim <= 0 {
		embedDim = 1536
	}
	return fmt.Sprintf(`
CREATE EXTENSION IF NOT EXISTS vector;

CREATE TABLE IF NOT EXISTS papers (
  id BIGSERIAL PRIMARY KEY,
  paper TEXT NOT NULL,
  url TEXT NOT NULL,
  name TEXT NOT NULL,
  notes JSONB NOT NULL DEFAULT '[]'::jsonb,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_papers_url ON papers(url);

CREATE TABLE IF NOT EXISTS embeddings (
  id BIGSERIAL PRIMARY KEY,
  content TEXT NOT NULL,
  url TEXT NOT NULL,
  page_number INT,
  embedding vector(%d),
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_embeddings_url ON embeddings(url);

CREATE TABLE IF NOT EXISTS question_answering (
  id BIGSERIAL PRIMARY KEY,
  question TEXT NOT NULL,
  answer TEXT NOT NULL,
  context TEXT NOT NULL,
  followup_questions JSONB NOT NULL DEFAULT '[]'::jsonb,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`, embedDim)
}
