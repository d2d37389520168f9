package reaction

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/ghaniswara/people-swipe/internal/entity"
	peopleRepo "github.com/ghaniswara/people-swipe/internal/repository/people"
	reactionRepo "github.com/ghaniswara/people-swipe/internal/repository/reaction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePeopleRepo struct {
	peopleRepo.IPeopleRepo

	people map[uint]entity.Person
}

func (f *fakePeopleRepo) ListByIDs(_ context.Context, ids []uint) ([]entity.Person, error) {
	people := []entity.Person{}
	for _, id := range ids {
		if p, ok := f.people[id]; ok {
			people = append(people, p)
		}
	}
	return people, nil
}

type reactionKey struct {
	personID uint
	deviceID entity.DeviceID
	polarity entity.Polarity
}

// fakeReactionRepo keeps one row per key, like the unique index does.
type fakeReactionRepo struct {
	reactionRepo.IReactionRepo

	mu     sync.Mutex
	people map[uint]entity.Person
	rows   map[reactionKey]int
	order  []uint
}

func newFakeReactionRepo(people map[uint]entity.Person) *fakeReactionRepo {
	return &fakeReactionRepo{people: people, rows: map[reactionKey]int{}}
}

func (f *fakeReactionRepo) record(personID uint, deviceID entity.DeviceID, polarity entity.Polarity) (bool, error) {
	if deviceID == "" {
		return false, entity.ErrInvalidArgument
	}
	if _, ok := f.people[personID]; !ok {
		return false, entity.ErrNotFound
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	key := reactionKey{personID, deviceID, polarity}
	if _, ok := f.rows[key]; !ok {
		f.rows[key] = 1
		if polarity == entity.PolarityLike {
			f.order = append(f.order, personID)
		}
	}
	return true, nil
}

func (f *fakeReactionRepo) RecordLike(_ context.Context, personID uint, deviceID entity.DeviceID) (bool, error) {
	return f.record(personID, deviceID, entity.PolarityLike)
}

func (f *fakeReactionRepo) RecordDislike(_ context.Context, personID uint, deviceID entity.DeviceID) (bool, error) {
	return f.record(personID, deviceID, entity.PolarityDislike)
}

func (f *fakeReactionRepo) LikedPersonIDs(_ context.Context, deviceID entity.DeviceID) ([]uint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	ids := []uint{}
	for _, id := range f.order {
		if _, ok := f.rows[reactionKey{id, deviceID, entity.PolarityLike}]; ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func people() map[uint]entity.Person {
	return map[uint]entity.Person{
		1: {ID: 1, Name: "Irene 1", Age: 25},
		2: {ID: 2, Name: "Jisoo 2", Age: 26},
		3: {ID: 3, Name: "Nayeon 3", Age: 27},
	}
}

func newUseCase() (IReactionUseCase, *fakeReactionRepo) {
	p := people()
	reactions := newFakeReactionRepo(p)
	return NewReactionUseCase(&fakePeopleRepo{people: p}, reactions), reactions
}

func TestLikeIsIdempotent(t *testing.T) {
	uc, reactions := newUseCase()
	ctx := context.Background()

	var wg sync.WaitGroup
	responses := make([]entity.LikeResponse, 8)
	for i := range responses {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp, err := uc.Like(ctx, 2, "device-a")
			assert.NoError(t, err)
			responses[i] = resp
		}(i)
	}
	wg.Wait()

	for _, resp := range responses {
		assert.Equal(t, entity.LikeResponse{Liked: true, PersonID: 2}, resp)
	}
	assert.Len(t, reactions.rows, 1)
}

func TestLikeAndDislikeAreIndependent(t *testing.T) {
	uc, reactions := newUseCase()
	ctx := context.Background()

	_, err := uc.Like(ctx, 1, "device-a")
	require.NoError(t, err)

	resp, err := uc.Dislike(ctx, 1, "device-a")
	require.NoError(t, err)
	assert.Equal(t, entity.DislikeResponse{Disliked: true, PersonID: 1}, resp)

	assert.Contains(t, reactions.rows, reactionKey{1, "device-a", entity.PolarityLike})
	assert.Contains(t, reactions.rows, reactionKey{1, "device-a", entity.PolarityDislike})

	liked, err := uc.LikedPeople(ctx, "device-a")
	require.NoError(t, err)
	require.Len(t, liked.Items, 1)
	assert.Equal(t, "1", liked.Items[0].ID)
}

func TestLikeUnknownPerson(t *testing.T) {
	uc, reactions := newUseCase()

	_, err := uc.Like(context.Background(), 999999, "device-a")
	assert.True(t, errors.Is(err, entity.ErrNotFound))
	assert.Empty(t, reactions.rows)
}

func TestLikedPeopleOrderedByIdentityDescending(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()

	for _, id := range []uint{2, 1, 3} {
		_, err := uc.Like(ctx, id, "device-a")
		require.NoError(t, err)
	}
	_, err := uc.Like(ctx, 2, "device-b")
	require.NoError(t, err)

	liked, err := uc.LikedPeople(ctx, "device-a")
	require.NoError(t, err)

	ids := make([]string, 0, len(liked.Items))
	for _, item := range liked.Items {
		ids = append(ids, item.ID)
		assert.Nil(t, item.Location.DistanceKm)
	}
	assert.Equal(t, []string{"3", "2", "1"}, ids)
}

func TestLikedPeopleEmpty(t *testing.T) {
	uc, _ := newUseCase()

	liked, err := uc.LikedPeople(context.Background(), "device-without-likes")
	require.NoError(t, err)
	assert.NotNil(t, liked.Items)
	assert.Empty(t, liked.Items)
}
