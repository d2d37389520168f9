package feed

import (
	"context"

	"github.com/ghaniswara/people-swipe/internal/entity"
	peopleRepo "github.com/ghaniswara/people-swipe/internal/repository/people"
)

type IFeedUseCase interface {
	GetPeoplePage(ctx context.Context, request entity.FeedRequest) (entity.PeoplePageResponse, error)
}

type feedUseCase struct {
	peopleRepo peopleRepo.IPeopleRepo
}

func NewFeedUseCase(peopleRepo peopleRepo.IPeopleRepo) IFeedUseCase {
	return &feedUseCase{
		peopleRepo: peopleRepo,
	}
}

func (f *feedUseCase) GetPeoplePage(ctx context.Context, request entity.FeedRequest) (entity.PeoplePageResponse, error) {
	request = request.Normalize()

	ordering := peopleRepo.OrderingFor(request.Origin)

	people, total, err := f.peopleRepo.ListPage(ctx, request.Page, request.Size, ordering)

	if err != nil {
		return entity.PeoplePageResponse{}, err
	}

	items := make([]entity.PersonView, 0, len(people))
	for _, person := range people {
		items = append(items, entity.NewPersonView(person, ordering.DistanceKm(person)))
	}

	return entity.PeoplePageResponse{
		Items: items,
		Page:  request.Page,
		Size:  request.Size,
		Total: total,
	}, nil
}
