package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"papernotes/internal/models"
	"papernotes/internal/util"
)

type QARepo struct {
	db *DB
}

func NewQARepo(db *DB) *QARepo {
	return &QARepo{db: db}
}

// SaveQA appends one question/answer/context/follow-up exchange. Unlike
// paper reads, a rejected write here always surfaces to the caller.
func (r *QARepo) SaveQA(ctx context.Context, rec models.QARecord) error {
	followups := rec.FollowupQuestions
	if followups == nil {
		followups = []string{}
	}
	followupsJSON, err := json.Marshal(followups)
	if err != nil {
		return fmt.Errorf("%w: encode followup questions: %v", util.ErrPersistence, err)
	}
	_, err = r.db.Pool.Exec(ctx, `
INSERT INTO question_answering (question, answer, context, followup_questions)
VALUES ($1, $2, $3, $4)`,
		rec.Question, rec.Answer, util.SanitizeText(rec.Context), followupsJSON,
	)
	if err != nil {
		return fmt.Errorf("%w: insert qa record: %v", util.ErrPersistence, err)
	}
	return nil
}
