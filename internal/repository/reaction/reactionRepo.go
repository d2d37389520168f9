package reactionRepo

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/ghaniswara/people-swipe/internal/entity"
	"github.com/go-redis/redis"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	likedCacheTTL = 10 * time.Minute

	pgForeignKeyViolation = "23503"
)

type IReactionRepo interface {
	// Record stores polarity for (personID, deviceID) unless it already
	// exists. It reports whether the reaction is now stored.
	Record(ctx context.Context, personID uint, deviceID entity.DeviceID, polarity entity.Polarity) (bool, error)
	RecordLike(ctx context.Context, personID uint, deviceID entity.DeviceID) (bool, error)
	RecordDislike(ctx context.Context, personID uint, deviceID entity.DeviceID) (bool, error)

	LikedPersonIDs(ctx context.Context, deviceID entity.DeviceID) ([]uint, error)
}

type ReactionRepo struct {
	db  *gorm.DB
	rdb *redis.Client
}

// NewReactionRepo builds the ledger. rdb may be nil, in which case liked ids
// are always read from the database.
func NewReactionRepo(db *gorm.DB, rdb *redis.Client) IReactionRepo {
	return &ReactionRepo{
		db:  db,
		rdb: rdb,
	}
}

func (r *ReactionRepo) RecordLike(ctx context.Context, personID uint, deviceID entity.DeviceID) (bool, error) {
	return r.Record(ctx, personID, deviceID, entity.PolarityLike)
}

func (r *ReactionRepo) RecordDislike(ctx context.Context, personID uint, deviceID entity.DeviceID) (bool, error) {
	return r.Record(ctx, personID, deviceID, entity.PolarityDislike)
}

func (r *ReactionRepo) Record(ctx context.Context, personID uint, deviceID entity.DeviceID, polarity entity.Polarity) (bool, error) {
	if deviceID == "" {
		return false, fmt.Errorf("device id is required: %w", entity.ErrInvalidArgument)
	}

	row, err := newReactionRow(personID, deviceID, polarity)
	if err != nil {
		return false, err
	}

	// The unique (person_id, device_id) constraint turns a duplicate into a
	// no-op, including for concurrent requests.
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "person_id"}, {Name: "device_id"}},
			DoNothing: true,
		}).
		Create(row)

	if res.Error != nil {
		if isForeignKeyViolation(res.Error) {
			return false, fmt.Errorf("person %d: %w", personID, entity.ErrNotFound)
		}
		return false, fmt.Errorf("record %s for person %d: %w", polarity, personID, res.Error)
	}

	// Every like invalidates, not only new rows, so retrying a like whose
	// invalidation failed still clears the cache.
	if polarity == entity.PolarityLike {
		if err := r.invalidateLikedCache(deviceID); err != nil {
			return false, err
		}
	}

	return true, nil
}

func (r *ReactionRepo) LikedPersonIDs(ctx context.Context, deviceID entity.DeviceID) ([]uint, error) {
	if deviceID == "" {
		return nil, fmt.Errorf("device id is required: %w", entity.ErrInvalidArgument)
	}

	if r.rdb == nil {
		return r.queryLikedPersonIDs(ctx, deviceID)
	}

	if ids, ok := r.cachedLikedPersonIDs(deviceID); ok {
		return ids, nil
	}

	var (
		ids      []uint
		queried  bool
		queryErr error
	)

	// The fill only commits if no like bumped the version after WATCH, so a
	// snapshot taken before a concurrent like is never cached.
	err := r.rdb.Watch(func(tx *redis.Tx) error {
		ids, queryErr = r.queryLikedPersonIDs(ctx, deviceID)
		queried = true
		if queryErr != nil {
			return queryErr
		}
		return fillLikedCache(tx, deviceID, ids)
	}, likedVersionKey(deviceID))

	if queryErr != nil {
		return nil, queryErr
	}

	if err != nil && err != redis.TxFailedErr {
		log.Println("error writing liked people cache", err)
	}

	if !queried {
		return r.queryLikedPersonIDs(ctx, deviceID)
	}

	return ids, nil
}

func (r *ReactionRepo) queryLikedPersonIDs(ctx context.Context, deviceID entity.DeviceID) ([]uint, error) {
	ids := []uint{}

	res := r.db.WithContext(ctx).
		Model(&entity.Like{}).
		Where("device_id = ?", deviceID).
		Pluck("person_id", &ids)

	if res.Error != nil {
		return nil, fmt.Errorf("list liked people: %w", res.Error)
	}

	return ids, nil
}

func newReactionRow(personID uint, deviceID entity.DeviceID, polarity entity.Polarity) (interface{}, error) {
	switch polarity {
	case entity.PolarityLike:
		return &entity.Like{PersonID: personID, DeviceID: deviceID}, nil
	case entity.PolarityDislike:
		return &entity.Dislike{PersonID: personID, DeviceID: deviceID}, nil
	default:
		return nil, fmt.Errorf("polarity %d: %w", polarity, entity.ErrInvalidArgument)
	}
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}

// Cache

func likedCacheKey(deviceID entity.DeviceID) string {
	return ":device:" + deviceID.String() + ":likes:people"
}

func likedVersionKey(deviceID entity.DeviceID) string {
	return ":device:" + deviceID.String() + ":likes:version"
}

func (r *ReactionRepo) cachedLikedPersonIDs(deviceID entity.DeviceID) ([]uint, bool) {
	if r.rdb == nil {
		return nil, false
	}

	key := likedCacheKey(deviceID)

	exists, err := r.rdb.Exists(key).Result()
	if err != nil {
		log.Println("error reading liked people cache", err)
		return nil, false
	}

	if exists == 0 {
		return nil, false
	}

	members, err := r.rdb.SMembers(key).Result()
	if err != nil {
		log.Println("error reading liked people cache", err)
		return nil, false
	}

	ids := make([]uint, 0, len(members))
	for _, member := range members {
		id, err := strconv.ParseUint(member, 10, 64)
		if err != nil {
			log.Println("dropping malformed liked people cache", key, err)
			if err := r.invalidateLikedCache(deviceID); err != nil {
				log.Println(err)
			}
			return nil, false
		}
		ids = append(ids, uint(id))
	}

	return ids, true
}

func fillLikedCache(tx *redis.Tx, deviceID entity.DeviceID, ids []uint) error {
	key := likedCacheKey(deviceID)

	members := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		members = append(members, strconv.FormatUint(uint64(id), 10))
	}

	_, err := tx.Pipelined(func(pipe redis.Pipeliner) error {
		pipe.Del(key)
		// redis has no empty sets; an empty result is simply not cached
		if len(members) > 0 {
			pipe.SAdd(key, members...)
			pipe.Expire(key, likedCacheTTL)
		}
		return nil
	})

	return err
}

// invalidateLikedCache bumps the device's version before dropping the set so
// that a fill running concurrently aborts.
func (r *ReactionRepo) invalidateLikedCache(deviceID entity.DeviceID) error {
	if r.rdb == nil {
		return nil
	}

	pipe := r.rdb.TxPipeline()
	pipe.Incr(likedVersionKey(deviceID))
	pipe.Expire(likedVersionKey(deviceID), likedCacheTTL)
	pipe.Del(likedCacheKey(deviceID))

	if _, err := pipe.Exec(); err != nil {
		return fmt.Errorf("invalidate liked people cache: %w", err)
	}

	return nil
}
