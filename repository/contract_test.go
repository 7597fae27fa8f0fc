package repository

import (
	"context"
	"testing"

	"lotto/domain/entities"
	"lotto/domain/interfaces"
	"lotto/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testTicketRepository exercises the behaviour every backend shares. Each
// subtest gets a fresh, empty repository.
func testTicketRepository(t *testing.T, newRepo func(t *testing.T) interfaces.TicketRepository) {
	ctx := context.Background()

	t.Run("empty history", func(t *testing.T) {
		repo := newRepo(t)

		tickets, err := repo.GetAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, tickets)

		ticket, err := repo.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Nil(t, ticket)
	})

	t.Run("append keeps insertion order", func(t *testing.T) {
		repo := newRepo(t)

		// IDs deliberately out of order: history order is insertion order
		require.NoError(t, repo.Append(ctx, testutil.CreateTestTicket(300)))
		require.NoError(t, repo.Append(ctx, testutil.CreateTestGameSet(100)))
		require.NoError(t, repo.Append(ctx, testutil.CreateTestTicket(200, 1, 2, 3, 4, 5, 6)))

		tickets, err := repo.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, tickets, 3)
		assert.Equal(t, int64(300), tickets[0].ID)
		assert.Equal(t, int64(100), tickets[1].ID)
		assert.Equal(t, int64(200), tickets[2].ID)

		set := tickets[1]
		assert.Equal(t, entities.TicketTypeSet, set.Type)
		require.Len(t, set.GameSet, entities.GameSetSize)
		assert.Equal(t, "C", set.GameSet[2].Letter)
		assert.Equal(t, []int{7, 14, 24, 34, 38, 45}, set.GameSet[2].Numbers)
		assert.NoError(t, set.Validate())

		single := tickets[2]
		assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, single.Numbers)
		assert.Equal(t, []int{1}, single.UserNumbers)
		assert.NoError(t, single.Validate())
	})

	t.Run("update records results", func(t *testing.T) {
		repo := newRepo(t)

		require.NoError(t, repo.Append(ctx, testutil.CreateTestTicket(1)))
		require.NoError(t, repo.Append(ctx, testutil.CreateTestGameSet(2)))

		single, err := repo.GetByID(ctx, 1)
		require.NoError(t, err)
		require.NoError(t, single.Complete(entities.Outcome{Rank: entities.RankFifth, Amount: 5000}))
		require.NoError(t, repo.Update(ctx, single))

		set, err := repo.GetByID(ctx, 2)
		require.NoError(t, err)
		results := map[string]entities.Outcome{}
		for _, l := range entities.GameLetters {
			results[l] = entities.Outcome{Rank: entities.RankLose}
		}
		results["E"] = entities.Outcome{Rank: entities.RankFourth, Amount: 50000}
		require.NoError(t, set.CompleteSet(results))
		require.NoError(t, repo.Update(ctx, set))

		single, err = repo.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, entities.TicketStatusCompleted, single.Status)
		assert.Equal(t, entities.RankFifth, single.Result)
		assert.Equal(t, int64(5000), single.Amount)

		set, err = repo.GetByID(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, entities.TicketStatusCompleted, set.Status)
		assert.Equal(t, int64(50000), set.TotalAmount)
		assert.Equal(t, entities.RankFourth, set.Results["E"].Rank)
		assert.NoError(t, set.Validate())
	})

	t.Run("update unknown ticket", func(t *testing.T) {
		repo := newRepo(t)

		err := repo.Update(ctx, testutil.CreateTestTicket(42))
		assert.ErrorIs(t, err, entities.ErrTicketNotFound)
	})

	t.Run("replace all and delete all", func(t *testing.T) {
		repo := newRepo(t)

		require.NoError(t, repo.Append(ctx, testutil.CreateTestTicket(1)))

		replacement := []*entities.Ticket{testutil.CreateTestTicket(10), testutil.CreateTestGameSet(11)}
		require.NoError(t, repo.ReplaceAll(ctx, replacement))

		tickets, err := repo.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, tickets, 2)
		assert.Equal(t, int64(10), tickets[0].ID)
		assert.Equal(t, int64(11), tickets[1].ID)

		removed, err := repo.DeleteAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, removed)

		tickets, err = repo.GetAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, tickets)
	})

	t.Run("returned tickets are copies", func(t *testing.T) {
		repo := newRepo(t)

		ticket := testutil.CreateTestTicket(5)
		require.NoError(t, repo.Append(ctx, ticket))
		ticket.Numbers[0] = 44

		stored, err := repo.GetByID(ctx, 5)
		require.NoError(t, err)
		assert.Equal(t, 3, stored.Numbers[0])
	})
}
