package test

import (
	"context"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"

	"github.com/2beens/gymlog/internal/auth"
)

type testOwner struct {
	ID    int
	Token string
}

// newOwner creates a user and a session for it, the way the login service
// would.
func (s *IntegrationTestSuite) newOwner(ctx context.Context) testOwner {
	var ownerID int
	err := s.DB.QueryRowContext(ctx,
		`INSERT INTO app_user (email, name) VALUES ($1, $2) RETURNING id`,
		gofakeit.Email(), gofakeit.Name(),
	).Scan(&ownerID)
	require.NoError(s.T(), err)

	token := gofakeit.UUID()
	err = s.redisClient.Set(ctx,
		auth.SessionKey(token),
		auth.SessionValue(ownerID, time.Now()),
		auth.DefaultTTL,
	).Err()
	require.NoError(s.T(), err)

	return testOwner{ID: ownerID, Token: token}
}
