package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"papernotes/internal/models"
	"papernotes/internal/util"
)

type fakeRow struct {
	vals []any
	err  error
}

func (r *fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*string) = r.vals[0].(string)
	*dest[1].(*string) = r.vals[1].(string)
	*dest[2].(*string) = r.vals[2].(string)
	*dest[3].(*[]byte) = r.vals[3].([]byte)
	*dest[4].(*time.Time) = r.vals[4].(time.Time)
	return nil
}

type fakePaperStore struct {
	execErr    error
	insertArgs []any
	row        *fakeRow
}

func (f *fakePaperStore) Exec(_ context.Context, _ string, args ...any) (pgconn.CommandTag, error) {
	if f.execErr != nil {
		return pgconn.CommandTag{}, f.execErr
	}
	f.insertArgs = args
	return pgconn.CommandTag{}, nil
}

func (f *fakePaperStore) QueryRow(_ context.Context, _ string, _ ...any) pgx.Row {
	return f.row
}

func TestPaperRepoRoundTrip(t *testing.T) {
	store := &fakePaperStore{}
	repo := &PaperRepo{q: store}

	notes := []models.Note{
		{Note: "uses a transformer encoder", PageNumbers: []int{2, 3}},
		{Note: "evaluated on MNIST", PageNumbers: []int{7}},
	}
	err := repo.AddPaper(context.Background(), models.Paper{
		Paper: "full paper text",
		URL:   "https://arxiv.org/pdf/2401.00400.pdf",
		Name:  "Attention Study",
		Notes: notes,
	})
	require.NoError(t, err)
	require.Len(t, store.insertArgs, 4)

	now := time.Now()
	store.row = &fakeRow{vals: []any{
		store.insertArgs[0].(string),
		store.insertArgs[1].(string),
		store.insertArgs[2].(string),
		store.insertArgs[3].([]byte),
		now,
	}}
	got, found, err := repo.GetPaper(context.Background(), "https://arxiv.org/pdf/2401.00400.pdf")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "full paper text", got.Paper)
	require.Equal(t, "Attention Study", got.Name)
	require.Equal(t, notes, got.Notes)
	require.Equal(t, now, got.CreatedAt)
}

func TestPaperRepoGetPaperAbsent(t *testing.T) {
	repo := &PaperRepo{q: &fakePaperStore{row: &fakeRow{err: pgx.ErrNoRows}}}

	got, found, err := repo.GetPaper(context.Background(), "https://example.com/missing.pdf")
	require.NoError(t, err)
	require.False(t, found)
	require.Zero(t, got)
}

func TestPaperRepoGetPaperStoreError(t *testing.T) {
	repo := &PaperRepo{q: &fakePaperStore{row: &fakeRow{err: errors.New("connection reset")}}}

	_, found, err := repo.GetPaper(context.Background(), "https://example.com/p.pdf")
	require.ErrorIs(t, err, util.ErrPersistence)
	require.False(t, found)
}

func TestPaperRepoAddPaperWriteRejected(t *testing.T) {
	repo := &PaperRepo{q: &fakePaperStore{execErr: errors.New("value too long")}}

	err := repo.AddPaper(context.Background(), models.Paper{Paper: "p", URL: "u", Name: "n"})
	require.ErrorIs(t, err, util.ErrPersistence)
	require.Contains(t, err.Error(), "value too long")
}
