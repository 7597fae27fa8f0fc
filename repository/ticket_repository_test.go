package repository

import (
	"context"
	"testing"

	"lotto/domain/interfaces"
	"lotto/repository/testutil"

	"github.com/stretchr/testify/require"
)

func TestTicketRepository(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	testTicketRepository(t, func(t *testing.T) interfaces.TicketRepository {
		repo := NewTicketRepository(testDB.DB)
		_, err := repo.DeleteAll(context.Background())
		require.NoError(t, err)
		return repo
	})
}
