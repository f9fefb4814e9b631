package service

import (
	"context"
	"testing"

	"secquest_backend/internal/model"
	"secquest_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeaderboardService_TiesShareRank(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewLeaderboardService(f.users)

	points := map[string]int{"a@example.com": 100, "b@example.com": 100, "c@example.com": 50}
	ids := map[string]uint{}
	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		u := f.newUser(t, email)
		require.NoError(t, f.db.Model(&model.User{}).Where("id = ?", u.ID).UpdateColumn("points", points[email]).Error)
		ids[email] = u.ID
	}

	for email, want := range map[string]int{"a@example.com": 1, "b@example.com": 1, "c@example.com": 3} {
		rank, err := svc.GetRank(ctx, ids[email])
		require.NoError(t, err)
		assert.Equal(t, want, rank, email)
	}

	board, err := svc.GetLeaderboard(ctx, 0)
	require.NoError(t, err)
	require.Len(t, board, 3)
	assert.Equal(t, []int{1, 1, 3}, []int{board[0].Rank, board[1].Rank, board[2].Rank})
	assert.Equal(t, ids["a@example.com"], board[0].UserID)

	top, err := svc.GetLeaderboard(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, top, 1)

	_, err = svc.GetRank(ctx, 4242)
	assert.Equal(t, util.KindNotFound, util.KindOf(err))
}

func TestRankUsers(t *testing.T) {
	users := []model.User{{Points: 300}, {Points: 200}, {Points: 200}, {Points: 200}, {Points: 10}}
	entries := rankUsers(users)

	ranks := make([]int, len(entries))
	for i, e := range entries {
		ranks[i] = e.Rank
	}
	assert.Equal(t, []int{1, 2, 2, 2, 5}, ranks)
}
