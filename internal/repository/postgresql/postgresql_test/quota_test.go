package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/kita-hr/leave-backend-go/internal/domain/quota"
	"github.com/kita-hr/leave-backend-go/internal/domain/user"
	"github.com/kita-hr/leave-backend-go/internal/pkg/database"
	"github.com/kita-hr/leave-backend-go/internal/repository/postgresql"
)

var testDB *database.DB

// testInit connects once; tests are skipped entirely when no test database
// is configured.
func testInit(t *testing.T) {
	t.Helper()

	if testDB != nil {
		return
	}
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	var err error
	testDB, err = database.NewPostgreSQLDB(dsn)
	require.NoError(t, err, "connect to test database")
}

func createTestUser(t *testing.T, ctx context.Context) string {
	t.Helper()

	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	email := fmt.Sprintf("quota-%d@example.com", time.Now().UnixNano())

	u, err := postgresql.NewUserRepository(testDB).Create(ctx, user.User{
		Email:        email,
		Name:         "Quota Test User",
		Role:         user.RoleEmployee,
		PasswordHash: string(hash),
		SickBalance:  user.DefaultSickBalance,
	})
	require.NoError(t, err)
	return u.ID
}

func TestQuotaRepository_GetOrCreateDefaults(t *testing.T) {
	testInit(t)
	ctx := context.Background()
	userID := createTestUser(t, ctx)
	repo := postgresql.NewQuotaRepository(testDB)

	q, err := repo.GetOrCreate(ctx, userID, 2026)
	require.NoError(t, err)
	assert.Equal(t, quota.DefaultLeaveTotal, q.LeaveTotal)
	assert.Equal(t, 0, q.LeaveUsed)

	// Second call returns the same row.
	again, err := repo.GetOrCreate(ctx, userID, 2026)
	require.NoError(t, err)
	assert.Equal(t, q.ID, again.ID)
}

func TestQuotaRepository_ApplyDeltaGuard(t *testing.T) {
	testInit(t)
	ctx := context.Background()
	userID := createTestUser(t, ctx)
	repo := postgresql.NewQuotaRepository(testDB)

	_, err := repo.GetOrCreate(ctx, userID, 2026)
	require.NoError(t, err)

	q, err := repo.ApplyDelta(ctx, userID, 2026, quota.Delta{LeaveUsed: 5})
	require.NoError(t, err)
	assert.Equal(t, 5, q.LeaveUsed)

	// Overdrawing matches no row.
	_, err = repo.ApplyDelta(ctx, userID, 2026, quota.Delta{LeaveUsed: 8})
	assert.ErrorIs(t, err, quota.ErrInvalidDelta)

	// The failed update changed nothing.
	q, err = repo.Get(ctx, userID, 2026)
	require.NoError(t, err)
	assert.Equal(t, 5, q.LeaveUsed)
}

func TestQuotaRepository_MarkJobRunMonthGuard(t *testing.T) {
	testInit(t)
	ctx := context.Background()
	repo := postgresql.NewQuotaRepository(testDB)

	jobName := fmt.Sprintf("test-job-%d", time.Now().UnixNano())
	now := time.Now().UTC()

	won, err := repo.MarkJobRun(ctx, jobName, now)
	require.NoError(t, err)
	assert.True(t, won)

	// Same month loses.
	won, err = repo.MarkJobRun(ctx, jobName, now.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, won)

	// Next month wins again.
	won, err = repo.MarkJobRun(ctx, jobName, now.AddDate(0, 1, 0))
	require.NoError(t, err)
	assert.True(t, won)
}
