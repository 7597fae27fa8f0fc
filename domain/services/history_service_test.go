package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"lotto/domain/entities"
	"lotto/domain/testhelpers"
	"lotto/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC)

func setupHistoryService(opts ...HistoryOption) (*historyService, *testhelpers.MockTicketRepository, *testhelpers.MockEventPublisher) {
	repo := new(testhelpers.MockTicketRepository)
	publisher := new(testhelpers.MockEventPublisher)
	opts = append([]HistoryOption{WithClock(func() time.Time { return fixedNow })}, opts...)
	service := NewHistoryService(repo, publisher, opts...).(*historyService)
	return service, repo, publisher
}

func TestHistoryService_SaveSingle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, repo, publisher := setupHistoryService()

	repo.On("GetAll", ctx).Return([]*entities.Ticket{}, nil)
	repo.On("Append", ctx, mock.MatchedBy(func(t *entities.Ticket) bool {
		return t.ID == fixedNow.UnixMilli() && t.Round == 1110
	})).Return(nil)
	publisher.On("Publish", mock.MatchedBy(func(e events.Event) bool {
		saved, ok := e.(events.TicketSavedEvent)
		return ok && saved.Round == 1110 && saved.Cost == entities.SingleGameCost
	})).Return(nil)

	ticket, err := service.SaveSingle(ctx, 1110, []int{40, 3, 7, 12, 19, 33}, []int{7, 3})
	require.NoError(t, err)

	assert.Equal(t, []int{3, 7, 12, 19, 33, 40}, ticket.Numbers)
	assert.Equal(t, []int{3, 7}, ticket.UserNumbers)
	assert.Equal(t, entities.TicketTypeSingle, ticket.Type)
	assert.Equal(t, entities.TicketStatusPending, ticket.Status)
	assert.Equal(t, "2024-03-02", ticket.Date)
	assert.Equal(t, "2024-03-02", ticket.PurchaseDate)

	repo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestHistoryService_SaveSingle_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		round       int
		numbers     []int
		userNumbers []int
	}{
		{name: "missing round", round: 0, numbers: []int{1, 2, 3, 4, 5, 6}},
		{name: "short game", round: 1, numbers: []int{1, 2, 3}},
		{name: "picks outside the game", round: 1, numbers: []int{1, 2, 3, 4, 5, 6}, userNumbers: []int{9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			service, repo, publisher := setupHistoryService()

			_, err := service.SaveSingle(context.Background(), tt.round, tt.numbers, tt.userNumbers)
			assert.True(t, entities.IsValidationError(err))
			repo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
			publisher.AssertNotCalled(t, "Publish", mock.Anything)
		})
	}
}

func TestHistoryService_SaveGameSet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, repo, publisher := setupHistoryService(WithSingleGameCost(2000))

	// the stored history already holds an ID from the future
	existing := testhelpers.SingleTicket(fixedNow.UnixMilli()+50, 1100, []int{1, 2, 3, 4, 5, 6}, nil)
	repo.On("GetAll", ctx).Return([]*entities.Ticket{existing}, nil)
	repo.On("Append", ctx, mock.AnythingOfType("*entities.Ticket")).Return(nil)
	publisher.On("Publish", mock.AnythingOfType("events.TicketSavedEvent")).Return(nil)

	games := make([]entities.Game, 0, entities.GameSetSize)
	for i, numbers := range sampleGameSet() {
		games = append(games, entities.Game{Letter: entities.GameLetters[i], Numbers: numbers, UserNumbers: []int{1}})
	}

	ticket, err := service.SaveGameSet(ctx, 1111, games, []int{1})
	require.NoError(t, err)

	assert.Equal(t, existing.ID+1, ticket.ID)
	assert.Equal(t, entities.TicketTypeSet, ticket.Type)
	assert.Equal(t, int64(10000), ticket.Cost)
	assert.Len(t, ticket.GameSet, entities.GameSetSize)
	repo.AssertExpectations(t)
}

func TestHistoryService_SaveGameSet_Invalid(t *testing.T) {
	t.Parallel()

	fullSet := func(userNumbers func(i int) []int) []entities.Game {
		games := make([]entities.Game, 0, entities.GameSetSize)
		for i, numbers := range sampleGameSet() {
			games = append(games, entities.Game{Letter: entities.GameLetters[i], Numbers: numbers, UserNumbers: userNumbers(i)})
		}
		return games
	}

	tests := []struct {
		name        string
		games       []entities.Game
		userNumbers []int
	}{
		{
			name:  "one game",
			games: []entities.Game{{Letter: "A", Numbers: []int{1, 2, 3, 4, 5, 6}}},
		},
		{
			name:        "no selected numbers",
			games:       fullSet(func(int) []int { return nil }),
			userNumbers: nil,
		},
		{
			name: "game selection differs from the ticket",
			games: fullSet(func(i int) []int {
				if i == 0 {
					return []int{1, 2}
				}
				return []int{1}
			}),
			userNumbers: []int{1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			service, repo, _ := setupHistoryService()

			_, err := service.SaveGameSet(context.Background(), 1, tt.games, tt.userNumbers)
			assert.True(t, entities.IsValidationError(err), "got %v", err)
			repo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
		})
	}
}

func TestHistoryService_Save_StoreFailure(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, repo, publisher := setupHistoryService()

	repo.On("GetAll", ctx).Return([]*entities.Ticket{}, nil)
	repo.On("Append", ctx, mock.Anything).Return(errors.New("disk full"))

	_, err := service.SaveSingle(ctx, 1, []int{1, 2, 3, 4, 5, 6}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save ticket")
	publisher.AssertNotCalled(t, "Publish", mock.Anything)
}

func TestHistoryService_RecordResult(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("completes a pending ticket", func(t *testing.T) {
		t.Parallel()

		service, repo, publisher := setupHistoryService()
		ticket := testhelpers.SingleTicket(5, 1100, []int{1, 2, 3, 4, 5, 6}, nil)

		repo.On("GetByID", ctx, int64(5)).Return(ticket, nil)
		repo.On("Update", ctx, ticket).Return(nil)
		publisher.On("Publish", events.ResultRecordedEvent{TicketID: 5, Round: 1100, Amount: 5000, WinCount: 1}).Return(nil)

		updated, err := service.RecordResult(ctx, 5, entities.Outcome{Rank: entities.RankFifth, Amount: 5000})
		require.NoError(t, err)
		assert.Equal(t, entities.TicketStatusCompleted, updated.Status)
		assert.Equal(t, entities.RankFifth, updated.Result)

		repo.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})

	t.Run("second result is rejected", func(t *testing.T) {
		t.Parallel()

		service, repo, _ := setupHistoryService()
		ticket := testhelpers.Completed(testhelpers.SingleTicket(5, 1100, []int{1, 2, 3, 4, 5, 6}, nil), entities.RankLose, 0)

		repo.On("GetByID", ctx, int64(5)).Return(ticket, nil)

		_, err := service.RecordResult(ctx, 5, entities.Outcome{Rank: entities.RankFirst, Amount: 1})
		assert.ErrorIs(t, err, entities.ErrTicketAlreadyCompleted)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("unknown ticket", func(t *testing.T) {
		t.Parallel()

		service, repo, _ := setupHistoryService()
		repo.On("GetByID", ctx, int64(99)).Return(nil, nil)

		_, err := service.RecordResult(ctx, 99, entities.Outcome{Rank: entities.RankLose})
		assert.ErrorIs(t, err, entities.ErrTicketNotFound)
	})

	t.Run("store failure", func(t *testing.T) {
		t.Parallel()

		service, repo, _ := setupHistoryService()
		repo.On("GetByID", ctx, int64(1)).Return(nil, errors.New("connection reset"))

		_, err := service.RecordResult(ctx, 1, entities.Outcome{Rank: entities.RankLose})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get ticket")
	})
}

func TestHistoryService_RecordGameSetResults(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, repo, publisher := setupHistoryService()
	ticket := testhelpers.SetTicket(8, 1105, sampleGameSet(), []int{1})

	repo.On("GetByID", ctx, int64(8)).Return(ticket, nil)
	repo.On("Update", ctx, ticket).Return(nil)
	publisher.On("Publish", events.ResultRecordedEvent{TicketID: 8, Round: 1105, Amount: 1505000, WinCount: 2}).Return(nil)

	results := map[string]entities.Outcome{
		"A": {Rank: entities.RankThird, Amount: 1500000},
		"B": {Rank: entities.RankLose},
		"C": {Rank: entities.RankFifth, Amount: 5000},
		"D": {Rank: entities.RankLose},
		"E": {Rank: entities.RankLose},
	}
	updated, err := service.RecordGameSetResults(ctx, 8, results)
	require.NoError(t, err)
	assert.Equal(t, int64(1505000), updated.TotalAmount)

	publisher.AssertExpectations(t)
}

func TestHistoryService_Clear(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, repo, publisher := setupHistoryService()

	repo.On("DeleteAll", ctx).Return(4, nil)
	publisher.On("Publish", events.HistoryClearedEvent{RemovedCount: 4}).Return(nil)

	removed, err := service.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, removed)
	publisher.AssertExpectations(t)
}

func TestHistoryService_PublishFailureIsNotReturned(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, repo, publisher := setupHistoryService()

	repo.On("DeleteAll", ctx).Return(0, nil)
	publisher.On("Publish", mock.Anything).Return(errors.New("bus closed"))

	_, err := service.Clear(ctx)
	assert.NoError(t, err)
}

func TestHistoryService_NilPublisher(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := new(testhelpers.MockTicketRepository)
	service := NewHistoryService(repo, nil)

	repo.On("DeleteAll", ctx).Return(2, nil)

	removed, err := service.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
}

func TestHistoryService_ExportImport(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, repo, publisher := setupHistoryService()

	history := threePickHistory()
	repo.On("GetAll", ctx).Return(history, nil)

	backup, err := service.Export(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-02T10:00:00Z", backup.ExportDate)
	require.Len(t, backup.GameHistory, 3)

	repo.On("ReplaceAll", ctx, backup.GameHistory).Return(nil)
	publisher.On("Publish", events.HistoryImportedEvent{TicketCount: 3}).Return(nil)

	imported, err := service.Import(ctx, backup)
	require.NoError(t, err)
	assert.Equal(t, 3, imported)

	repo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestHistoryService_ImportRejectsInvalidBackup(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, repo, _ := setupHistoryService()

	_, err := service.Import(ctx, &entities.Backup{})
	assert.ErrorIs(t, err, entities.ErrInvalidBackup)

	broken := &entities.Backup{GameHistory: []*entities.Ticket{{ID: 1, Round: 1, Numbers: []int{1, 2}}}}
	_, err = service.Import(ctx, broken)
	assert.True(t, entities.IsValidationError(err))

	repo.AssertNotCalled(t, "ReplaceAll", mock.Anything, mock.Anything)
}

func TestHistoryService_GetTicket(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, repo, _ := setupHistoryService()
	ticket := testhelpers.SingleTicket(3, 1, []int{1, 2, 3, 4, 5, 6}, nil)

	repo.On("GetByID", ctx, int64(3)).Return(ticket, nil)
	repo.On("GetByID", ctx, int64(4)).Return(nil, nil)

	got, err := service.GetTicket(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, ticket, got)

	_, err = service.GetTicket(ctx, 4)
	assert.ErrorIs(t, err, entities.ErrTicketNotFound)
}

func TestNextTicketID(t *testing.T) {
	t.Parallel()

	now := time.UnixMilli(1000)
	assert.Equal(t, int64(1000), nextTicketID(nil, now))
	assert.Equal(t, int64(1000), nextTicketID([]*entities.Ticket{{ID: 999}}, now))
	assert.Equal(t, int64(1001), nextTicketID([]*entities.Ticket{{ID: 1000}}, now))
	assert.Equal(t, int64(2001), nextTicketID([]*entities.Ticket{{ID: 2000}, nil, {ID: 5}}, now))
}
