package reaction

import (
	"context"
	"slices"

	"github.com/ghaniswara/people-swipe/internal/entity"
	peopleRepo "github.com/ghaniswara/people-swipe/internal/repository/people"
	reactionRepo "github.com/ghaniswara/people-swipe/internal/repository/reaction"
)

type IReactionUseCase interface {
	Like(ctx context.Context, personID uint, deviceID entity.DeviceID) (entity.LikeResponse, error)
	Dislike(ctx context.Context, personID uint, deviceID entity.DeviceID) (entity.DislikeResponse, error)
	LikedPeople(ctx context.Context, deviceID entity.DeviceID) (entity.LikedPeopleResponse, error)
}

type reactionUseCase struct {
	peopleRepo   peopleRepo.IPeopleRepo
	reactionRepo reactionRepo.IReactionRepo
}

func NewReactionUseCase(peopleRepo peopleRepo.IPeopleRepo, reactionRepo reactionRepo.IReactionRepo) IReactionUseCase {
	return &reactionUseCase{
		peopleRepo:   peopleRepo,
		reactionRepo: reactionRepo,
	}
}

// Like and Dislike are independent: disliking does not retract a like.
func (r *reactionUseCase) Like(ctx context.Context, personID uint, deviceID entity.DeviceID) (entity.LikeResponse, error) {
	liked, err := r.reactionRepo.RecordLike(ctx, personID, deviceID)

	if err != nil {
		return entity.LikeResponse{}, err
	}

	return entity.LikeResponse{Liked: liked, PersonID: personID}, nil
}

func (r *reactionUseCase) Dislike(ctx context.Context, personID uint, deviceID entity.DeviceID) (entity.DislikeResponse, error) {
	disliked, err := r.reactionRepo.RecordDislike(ctx, personID, deviceID)

	if err != nil {
		return entity.DislikeResponse{}, err
	}

	return entity.DislikeResponse{Disliked: disliked, PersonID: personID}, nil
}

func (r *reactionUseCase) LikedPeople(ctx context.Context, deviceID entity.DeviceID) (entity.LikedPeopleResponse, error) {
	ids, err := r.reactionRepo.LikedPersonIDs(ctx, deviceID)

	if err != nil {
		return entity.LikedPeopleResponse{}, err
	}

	people, err := r.peopleRepo.ListByIDs(ctx, ids)

	if err != nil {
		return entity.LikedPeopleResponse{}, err
	}

	slices.SortFunc(people, func(a, b entity.Person) int {
		switch {
		case a.ID > b.ID:
			return -1
		case a.ID < b.ID:
			return 1
		default:
			return 0
		}
	})

	items := make([]entity.PersonView, 0, len(people))
	for _, person := range people {
		items = append(items, entity.NewPersonView(person, nil))
	}

	return entity.LikedPeopleResponse{Items: items}, nil
}
