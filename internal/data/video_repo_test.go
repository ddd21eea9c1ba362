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

func TestVideoRepo_Create_Get_List_Update_Delete(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		clock := NewFixedTimeProvider(testutil.TestTime())
		repo := NewVideoRepoWithTimeProvider(db, clock)

		created, err := repo.Create(ctx, testutil.NewVideoRequest().
			WithTitle("Percurso da ferrovia").
			WithCategory(model.VideoCategoryFerrovia).
			Build())
		require.NoError(t, err)
		require.NotEmpty(t, created.ID)
		assert.Equal(t, "Percurso da ferrovia", created.Title)
		assert.Equal(t, model.VideoCategoryFerrovia, created.CategoryID)
		assert.True(t, created.CreatedAt.Equal(testutil.TestTime()))
		assert.True(t, created.UpdatedAt.Equal(created.CreatedAt))

		got, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.Title, got.Title)

		// second entry lists after the first, oldest first
		clock.AddTime(time.Minute)
		second, err := repo.Create(ctx, testutil.NewVideoRequest().
			WithTitle("Perfil pesado").
			WithCategory(model.VideoCategoryPerfil).
			Build())
		require.NoError(t, err)

		list, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, created.ID, list[0].ID)
		assert.Equal(t, second.ID, list[1].ID)

		// partial update touches only the named fields and bumps updated_at
		clock.AddTime(time.Minute)
		newTitle := "Percurso atualizado"
		updated, err := repo.Update(ctx, created.ID, model.UpdateVideoRequest{Title: &newTitle})
		require.NoError(t, err)
		assert.Equal(t, newTitle, updated.Title)
		assert.Equal(t, created.Description, updated.Description)
		assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))

		removed, err := repo.Delete(ctx, created.ID)
		require.NoError(t, err)
		assert.True(t, removed)

		removed, err = repo.Delete(ctx, created.ID)
		require.NoError(t, err)
		assert.False(t, removed)

		_, err = repo.GetByID(ctx, created.ID)
		require.ErrorIs(t, err, ErrVideoNotFound)
	})
}

func TestVideoRepo_Create_RejectsUnknownCategory(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		repo := NewVideoRepo(db)

		_, err := repo.Create(context.Background(), testutil.NewVideoRequest().
			WithCategory("rodovia").
			Build())
		require.Error(t, err)
	})
}

func TestVideoRepo_Update_UnknownIDReturnsNotFound(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		repo := NewVideoRepo(db)

		title := "qualquer"
		_, err := repo.Update(context.Background(), "missing-id", model.UpdateVideoRequest{Title: &title})
		require.ErrorIs(t, err, ErrVideoNotFound)
	})
}
