package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"lotto/domain/entities"
	"lotto/domain/interfaces"
	"lotto/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileTicketRepository(t *testing.T) {
	t.Parallel()

	testTicketRepository(t, func(t *testing.T) interfaces.TicketRepository {
		return NewFileTicketRepository(filepath.Join(t.TempDir(), "history.json"))
	})
}

func TestFileTicketRepository_PersistsAcrossInstances(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "history.json")

	first := NewFileTicketRepository(path)
	require.NoError(t, first.Append(ctx, testutil.CreateTestTicket(1)))

	second := NewFileTicketRepository(path)
	tickets, err := second.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, tickets, 1)
	assert.Equal(t, int64(1), tickets[0].ID)
}

func TestFileTicketRepository_ReadsBrowserHistory(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.json")

	// an old single-game record without type and cost, and a set with localized ranks
	legacy := `[
		{"id": 1700000000000, "round": 1090, "numbers": [4, 8, 15, 16, 23, 42], "userNumbers": [4],
		 "result": "꽝", "amount": 0, "date": "2023. 11. 14.", "status": "completed"},
		{"id": 1700000000001, "round": 1091, "type": "set", "userNumbers": [7], "cost": 5000,
		 "gameSet": [
			{"game": "A", "numbers": [7, 12, 22, 32, 38, 45], "userNumbers": [7]},
			{"game": "B", "numbers": [7, 13, 23, 33, 38, 45], "userNumbers": [7]},
			{"game": "C", "numbers": [7, 14, 24, 34, 38, 45], "userNumbers": [7]},
			{"game": "D", "numbers": [7, 15, 25, 35, 38, 45], "userNumbers": [7]},
			{"game": "E", "numbers": [7, 16, 26, 36, 38, 45], "userNumbers": [7]}
		 ],
		 "results": {
			"A": {"result": "5등", "amount": 5000}, "B": {"result": "꽝", "amount": 0},
			"C": {"result": "꽝", "amount": 0}, "D": {"result": "꽝", "amount": 0},
			"E": {"result": "꽝", "amount": 0}
		 },
		 "totalAmount": 5000, "status": "completed", "date": "2023. 11. 21."}
	]`
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o600))

	tickets, err := NewFileTicketRepository(path).GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, tickets, 2)

	assert.Equal(t, entities.TicketTypeSingle, tickets[0].Type)
	assert.Equal(t, entities.SingleGameCost, tickets[0].Cost)
	assert.Equal(t, entities.RankLose, tickets[0].Result)
	assert.Equal(t, entities.RankFifth, tickets[1].Results["A"].Rank)
	for _, ticket := range tickets {
		assert.NoError(t, ticket.Validate())
	}
}

func TestFileTicketRepository_CorruptFile(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	repo := NewFileTicketRepository(path)

	_, err := repo.GetAll(ctx)
	assert.Error(t, err)

	// a failed write must leave the file untouched
	assert.Error(t, repo.Append(ctx, testutil.CreateTestTicket(1)))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(data))
}

func TestFileTicketRepository_DuplicateID(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewFileTicketRepository(filepath.Join(t.TempDir(), "history.json"))

	require.NoError(t, repo.Append(ctx, testutil.CreateTestTicket(1)))
	assert.Error(t, repo.Append(ctx, testutil.CreateTestTicket(1)))
}

func TestRedisTicketRepository(t *testing.T) {
	t.Parallel()
	testRedis := testutil.SetupTestRedis(t)

	testTicketRepository(t, func(t *testing.T) interfaces.TicketRepository {
		return NewRedisTicketRepository(testRedis.Client, "lotto:test:"+t.Name())
	})
}
