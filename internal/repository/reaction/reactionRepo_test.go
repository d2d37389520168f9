package reactionRepo

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/ghaniswara/people-swipe/internal/entity"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReactionRow(t *testing.T) {
	row, err := newReactionRow(7, "device-1", entity.PolarityLike)
	require.NoError(t, err)
	assert.Equal(t, &entity.Like{PersonID: 7, DeviceID: "device-1"}, row)

	row, err = newReactionRow(7, "device-1", entity.PolarityDislike)
	require.NoError(t, err)
	assert.Equal(t, &entity.Dislike{PersonID: 7, DeviceID: "device-1"}, row)

	_, err = newReactionRow(7, "device-1", entity.Polarity(9))
	assert.True(t, errors.Is(err, entity.ErrInvalidArgument))
}

func TestIsForeignKeyViolation(t *testing.T) {
	fk := &pgconn.PgError{Code: "23503"}
	unique := &pgconn.PgError{Code: "23505"}

	assert.True(t, isForeignKeyViolation(fk))
	assert.True(t, isForeignKeyViolation(fmt.Errorf("insert: %w", fk)))
	assert.False(t, isForeignKeyViolation(unique))
	assert.False(t, isForeignKeyViolation(errors.New("boom")))
}

func TestRecordRejectsEmptyDevice(t *testing.T) {
	repo := NewReactionRepo(nil, nil)

	_, err := repo.RecordLike(context.Background(), 1, "")
	assert.True(t, errors.Is(err, entity.ErrInvalidArgument))

	_, err = repo.RecordDislike(context.Background(), 1, "")
	assert.True(t, errors.Is(err, entity.ErrInvalidArgument))

	_, err = repo.LikedPersonIDs(context.Background(), "")
	assert.True(t, errors.Is(err, entity.ErrInvalidArgument))
}

func TestLikedCacheKey(t *testing.T) {
	assert.Equal(t, ":device:abc:likes:people", likedCacheKey("abc"))
}

func TestLikedVersionKey(t *testing.T) {
	assert.Equal(t, ":device:abc:likes:version", likedVersionKey("abc"))
	assert.NotEqual(t, likedCacheKey("abc"), likedVersionKey("abc"))
}
