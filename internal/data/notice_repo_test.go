package data

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srl-logistica/rotaportal/internal/domain/model"
	"github.com/srl-logistica/rotaportal/internal/testutil"
)

func TestNoticeRepo_Create_List_Update_Delete(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		clock := NewFixedTimeProvider(testutil.TestTime())
		repo := NewNoticeRepoWithTimeProvider(db, clock)

		first, err := repo.Create(ctx, testutil.NewNoticeRequest().
			WithTitle("Manutencao programada").
			WithType(model.NoticeTypeWarning).
			Build())
		require.NoError(t, err)
		require.NotEmpty(t, first.ID)
		assert.Equal(t, model.NoticeTypeWarning, first.Type)

		clock.AddTime(time.Minute)
		second, err := repo.Create(ctx, testutil.NewNoticeRequest().
			WithTitle("Nova rota disponivel").
			Build())
		require.NoError(t, err)
		assert.Equal(t, model.NoticeTypeInfo, second.Type)

		// most recent first
		list, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, second.ID, list[0].ID)
		assert.Equal(t, first.ID, list[1].ID)

		clock.AddTime(time.Minute)
		alert := model.NoticeTypeAlert
		updated, err := repo.Update(ctx, first.ID, model.UpdateNoticeRequest{Type: &alert})
		require.NoError(t, err)
		assert.Equal(t, model.NoticeTypeAlert, updated.Type)
		assert.Equal(t, first.Message, updated.Message)
		assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))

		removed, err := repo.Delete(ctx, first.ID)
		require.NoError(t, err)
		assert.True(t, removed)

		removed, err = repo.Delete(ctx, first.ID)
		require.NoError(t, err)
		assert.False(t, removed)
	})
}

func TestNoticeRepo_Update_UnknownIDReturnsNotFound(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		repo := NewNoticeRepo(db)

		title := "qualquer"
		_, err := repo.Update(context.Background(), "missing-id", model.UpdateNoticeRequest{Title: &title})
		require.ErrorIs(t, err, ErrNoticeNotFound)
	})
}
