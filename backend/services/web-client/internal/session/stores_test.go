package session

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStoreRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	ctx := context.Background()
	store := NewRedisStore(client, time.Hour)

	_, err := store.Load(ctx, "s1")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Save(ctx, "s1", "abc123"))
	assert.True(t, mr.Exists("webclient:session:s1"))
	assert.Equal(t, time.Hour, mr.TTL("webclient:session:s1"))

	token, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	require.NoError(t, store.Delete(ctx, "s1"))
	assert.False(t, mr.Exists("webclient:session:s1"))
}

func TestRedisStoreWithoutTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	require.NoError(t, NewRedisStore(client, 0).Save(context.Background(), "s1", "abc123"))
	assert.Equal(t, time.Duration(0), mr.TTL("webclient:session:s1"))
}

func TestPostgresStore(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	ctx := context.Background()
	store := NewPostgresStore(conn)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS web_sessions")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()
	require.NoError(t, store.EnsureSchema(ctx))

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO web_sessions")).
		WithArgs("s1", "abc123").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, store.Save(ctx, "s1", "abc123"))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT token")).
		WithArgs("s1").
		WillReturnRows(sqlmock.NewRows([]string{"token"}).AddRow("abc123"))
	token, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT token")).
		WithArgs("s2").
		WillReturnRows(sqlmock.NewRows([]string{"token"}))
	_, err = store.Load(ctx, "s2")
	assert.ErrorIs(t, err, ErrNotFound)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM web_sessions")).
		WithArgs("s1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, store.Delete(ctx, "s1"))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSealedStore(t *testing.T) {
	ctx := context.Background()
	sealer, err := NewSealer("correct horse battery staple")
	require.NoError(t, err)

	inner := NewMemoryStore()
	store := NewSealedStore(inner, sealer)

	require.NoError(t, store.Save(ctx, "s1", "abc123"))
	raw, err := inner.Load(ctx, "s1")
	require.NoError(t, err)
	assert.NotContains(t, raw, "abc123")

	token, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	// a sealed value moved under another id must not open
	require.NoError(t, inner.Save(ctx, "s2", raw))
	_, err = store.Load(ctx, "s2")
	assert.ErrorIs(t, err, ErrNotFound)

	other, err := NewSealer("another secret")
	require.NoError(t, err)
	_, err = NewSealedStore(inner, other).Load(ctx, "s1")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Delete(ctx, "s1"))
	_, err = inner.Load(ctx, "s1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNewSealerRequiresSecret(t *testing.T) {
	_, err := NewSealer("")
	assert.Error(t, err)
}
