package seed

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/ghaniswara/people-swipe/internal/entity"
	peopleRepo "github.com/ghaniswara/people-swipe/internal/repository/people"
	"github.com/go-faker/faker/v4"
)

const (
	DefaultCount = 60

	centerLat = -6.2
	centerLng = 106.8
	city      = "Jakarta"
)

// People creates count demo profiles scattered within ~0.05 degrees of
// central Jakarta, each with a single picture.
func People(ctx context.Context, repo peopleRepo.IPeopleRepo, count int, rng *rand.Rand) ([]entity.Person, error) {
	people := make([]entity.Person, 0, count)

	for i := 0; i < count; i++ {
		person := NewPerson(i+1, rng)

		if err := repo.Create(ctx, &person); err != nil {
			return people, fmt.Errorf("seed person %d: %w", i+1, err)
		}

		people = append(people, person)
	}

	return people, nil
}

// NewPerson builds the n-th demo profile without storing it.
func NewPerson(n int, rng *rand.Rand) entity.Person {
	lat := centerLat + float64(rng.IntN(101)-50)/1000
	lng := centerLng + float64(rng.IntN(101)-50)/1000
	cityName := city

	return entity.Person{
		Name: fmt.Sprintf("%s %d", faker.FirstNameFemale(), n),
		Age:  20 + rng.IntN(16),
		Lat:  &lat,
		Lng:  &lng,
		City: &cityName,
		Pictures: []entity.Picture{
			{URL: fmt.Sprintf("https://picsum.photos/seed/%d/900/1200.jpg", n), SortOrder: 0},
		},
	}
}
