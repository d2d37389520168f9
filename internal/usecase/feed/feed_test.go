package feed

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/ghaniswara/people-swipe/internal/entity"
	peopleRepo "github.com/ghaniswara/people-swipe/internal/repository/people"
	"github.com/ghaniswara/people-swipe/pkg/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

// fakePeopleRepo ranks in memory the way the SQL orderings do.
type fakePeopleRepo struct {
	peopleRepo.IPeopleRepo

	people []entity.Person
	err    error

	gotPage, gotSize int
	gotOrdering      peopleRepo.Ordering
}

func (f *fakePeopleRepo) ListPage(_ context.Context, page, size int, ordering peopleRepo.Ordering) ([]entity.Person, int64, error) {
	f.gotPage, f.gotSize, f.gotOrdering = page, size, ordering

	if f.err != nil {
		return nil, 0, f.err
	}

	ranked := append([]entity.Person(nil), f.people...)
	sort.SliceStable(ranked, func(i, j int) bool {
		di, dj := ordering.DistanceKm(ranked[i]), ordering.DistanceKm(ranked[j])
		if di != nil && dj != nil && *di != *dj {
			return *di < *dj
		}
		if (di == nil) != (dj == nil) {
			return di != nil
		}
		return ranked[i].ID > ranked[j].ID
	})

	start := page * size
	if start >= len(ranked) {
		return []entity.Person{}, int64(len(ranked)), nil
	}
	end := min(start+size, len(ranked))

	return ranked[start:end], int64(len(ranked)), nil
}

func seedPeople() []entity.Person {
	return []entity.Person{
		{ID: 1, Name: "Esther 1", Age: 21, Lat: ptr(-6.25), Lng: ptr(106.85), City: ptr("Jakarta")},
		{ID: 2, Name: "Mina 2", Age: 22, Lat: ptr(-6.201), Lng: ptr(106.801), City: ptr("Jakarta"),
			Pictures: []entity.Picture{{URL: "https://picsum.photos/seed/2/900/1200.jpg"}}},
		{ID: 3, Name: "Yuna 3", Age: 23},
	}
}

func TestGetPeoplePageDefaultOrdering(t *testing.T) {
	repo := &fakePeopleRepo{people: seedPeople()}
	uc := NewFeedUseCase(repo)

	page, err := uc.GetPeoplePage(context.Background(), entity.FeedRequest{Page: 0, Size: 2})
	require.NoError(t, err)

	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, 0, page.Page)
	assert.Equal(t, 2, page.Size)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "3", page.Items[0].ID)
	assert.Equal(t, "2", page.Items[1].ID)

	for _, item := range page.Items {
		assert.Nil(t, item.Location.DistanceKm)
	}
}

func TestGetPeoplePageDefaults(t *testing.T) {
	repo := &fakePeopleRepo{people: seedPeople()}
	uc := NewFeedUseCase(repo)

	page, err := uc.GetPeoplePage(context.Background(), entity.FeedRequest{Page: -1})
	require.NoError(t, err)

	assert.Equal(t, 0, repo.gotPage)
	assert.Equal(t, entity.DefaultPageSize, repo.gotSize)
	assert.Equal(t, entity.DefaultPageSize, page.Size)
	assert.Len(t, page.Items, 3)
}

func TestGetPeoplePageBeyondLastPage(t *testing.T) {
	uc := NewFeedUseCase(&fakePeopleRepo{people: seedPeople()})

	page, err := uc.GetPeoplePage(context.Background(), entity.FeedRequest{Page: 5, Size: 2})
	require.NoError(t, err)

	assert.Empty(t, page.Items)
	assert.NotNil(t, page.Items)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, 5, page.Page)
}

func TestGetPeoplePageEmptyStore(t *testing.T) {
	uc := NewFeedUseCase(&fakePeopleRepo{})

	page, err := uc.GetPeoplePage(context.Background(), entity.FeedRequest{})
	require.NoError(t, err)

	assert.Empty(t, page.Items)
	assert.Equal(t, int64(0), page.Total)
}

func TestGetPeoplePageRankedByDistance(t *testing.T) {
	repo := &fakePeopleRepo{people: seedPeople()}
	uc := NewFeedUseCase(repo)

	origin := &entity.Origin{Lat: -6.2, Lng: 106.8}
	page, err := uc.GetPeoplePage(context.Background(), entity.FeedRequest{Size: 10, Origin: origin})
	require.NoError(t, err)

	require.Len(t, page.Items, 3)
	assert.Equal(t, "2", page.Items[0].ID)
	assert.Equal(t, "1", page.Items[1].ID)
	assert.Equal(t, "3", page.Items[2].ID)

	require.NotNil(t, page.Items[0].Location.DistanceKm)
	assert.Equal(t, geo.Round(geo.HaversineKm(-6.2, 106.8, -6.201, 106.801), 1), *page.Items[0].Location.DistanceKm)
	require.NotNil(t, page.Items[1].Location.DistanceKm)
	assert.Equal(t, 7.8, *page.Items[1].Location.DistanceKm)
	assert.Nil(t, page.Items[2].Location.DistanceKm)

	assert.Equal(t, []entity.PictureView{{URL: "https://picsum.photos/seed/2/900/1200.jpg"}}, page.Items[0].Pictures)
}

func TestGetPeoplePageRepositoryError(t *testing.T) {
	boom := errors.New("connection refused")
	uc := NewFeedUseCase(&fakePeopleRepo{err: boom})

	_, err := uc.GetPeoplePage(context.Background(), entity.FeedRequest{})
	assert.ErrorIs(t, err, boom)
}
