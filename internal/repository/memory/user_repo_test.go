package memory

import (
	"context"
	"fmt"
	"testing"

	"userhub/internal/models"
	"userhub/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, r *UserRepo, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		_, err := r.Create(context.Background(), models.NewUser{
			FirstName: fmt.Sprintf("user%02d", i),
			Email:     fmt.Sprintf("user%02d@example.com", i),
		})
		require.NoError(t, err)
	}
}

func TestList_PagesAreDisjointAndBounded(t *testing.T) {
	r := NewUserRepo()
	seed(t, r, 7)
	ctx := context.Background()

	seen := map[string]bool{}
	for page := 1; page <= 3; page++ {
		got, err := r.List(ctx, repository.UserFilter{Sort: "first_name", Page: page, Size: 3})
		require.NoError(t, err)
		assert.LessOrEqual(t, len(got), 3)
		for _, u := range got {
			assert.False(t, seen[u.ID], "user on two pages")
			seen[u.ID] = true
		}
	}
	assert.Len(t, seen, 7)

	n, err := r.Count(ctx, repository.UserFilter{Page: 2, Size: 3})
	require.NoError(t, err)
	assert.Equal(t, 7, n)
}

func TestList_FilterAndDescSort(t *testing.T) {
	r := NewUserRepo()
	seed(t, r, 12)

	got, err := r.List(context.Background(), repository.UserFilter{Q: "USER1", Sort: "-email", Page: 1, Size: 10})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "user11@example.com", got[0].Email)
	assert.Equal(t, "user10@example.com", got[1].Email)
}

func TestBulkCreate_AllOrNothing(t *testing.T) {
	r := NewUserRepo()
	seed(t, r, 1)

	_, err := r.BulkCreate(context.Background(), []models.NewUser{
		{FirstName: "a", Email: "new@example.com"},
		{FirstName: "b", Email: "user00@example.com"},
	})
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
	assert.Equal(t, 1, r.Len())
}

func TestList_QueryMatchesLiterally(t *testing.T) {
	r := NewUserRepo()
	ctx := context.Background()
	for _, email := range []string{"a_b@example.com", "axb@example.com", "100%@example.com"} {
		_, err := r.Create(ctx, models.NewUser{FirstName: "x", Email: email})
		require.NoError(t, err)
	}

	got, err := r.List(ctx, repository.UserFilter{Q: "a_b", Page: 1, Size: 10})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a_b@example.com", got[0].Email)

	n, err := r.Count(ctx, repository.UserFilter{Q: "%"})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
