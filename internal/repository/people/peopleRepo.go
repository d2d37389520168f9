package peopleRepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/ghaniswara/people-swipe/internal/entity"
	"gorm.io/gorm"
)

type IPeopleRepo interface {
	// ListPage returns one 0-based page of people ranked by ordering, plus the
	// total number of people.
	ListPage(ctx context.Context, page, size int, ordering Ordering) ([]entity.Person, int64, error)
	FindByID(ctx context.Context, id uint) (*entity.Person, error)
	// ListByIDs returns the people with the given ids in no particular order.
	ListByIDs(ctx context.Context, ids []uint) ([]entity.Person, error)
	// PopularPeople returns people with at least threshold likes, most liked
	// first.
	PopularPeople(ctx context.Context, threshold int) ([]entity.PopularPerson, error)
	Create(ctx context.Context, person *entity.Person) error
}

type PeopleRepo struct {
	db *gorm.DB
}

func New(db *gorm.DB) IPeopleRepo {
	return &PeopleRepo{
		db: db,
	}
}

func (r *PeopleRepo) ListPage(ctx context.Context, page, size int, ordering Ordering) ([]entity.Person, int64, error) {
	var total int64

	res := r.db.WithContext(ctx).
		Model(&entity.Person{}).
		Count(&total)

	if res.Error != nil {
		return nil, 0, fmt.Errorf("count people: %w", res.Error)
	}

	people := []entity.Person{}

	offset, ok := pageOffset(page, size, total)
	if !ok {
		return people, total, nil
	}

	query := r.db.WithContext(ctx).
		Model(&entity.Person{}).
		Preload("Pictures", orderedPictures)

	res = ordering.Apply(query).
		Offset(offset).
		Limit(size).
		Find(&people)

	if res.Error != nil {
		return nil, 0, fmt.Errorf("list people page %d: %w", page, res.Error)
	}

	return people, total, nil
}

func (r *PeopleRepo) FindByID(ctx context.Context, id uint) (*entity.Person, error) {
	var person entity.Person

	res := r.db.WithContext(ctx).
		Preload("Pictures", orderedPictures).
		Where("id = ?", id).
		First(&person)

	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("person %d: %w", id, entity.ErrNotFound)
		}
		return nil, fmt.Errorf("find person %d: %w", id, res.Error)
	}

	return &person, nil
}

func (r *PeopleRepo) ListByIDs(ctx context.Context, ids []uint) ([]entity.Person, error) {
	people := []entity.Person{}

	if len(ids) == 0 {
		return people, nil
	}

	res := r.db.WithContext(ctx).
		Preload("Pictures", orderedPictures).
		Where("id IN ?", ids).
		Find(&people)

	if res.Error != nil {
		return nil, fmt.Errorf("list people by ids: %w", res.Error)
	}

	return people, nil
}

func (r *PeopleRepo) PopularPeople(ctx context.Context, threshold int) ([]entity.PopularPerson, error) {
	var popular []entity.PopularPerson

	res := r.db.WithContext(ctx).
		Model(&entity.Person{}).
		Select("people.id, people.name, COUNT(likes.id) AS likes_count").
		Joins("JOIN likes ON likes.person_id = people.id").
		Group("people.id, people.name").
		Having("COUNT(likes.id) >= ?", threshold).
		Order("likes_count DESC, people.id ASC").
		Scan(&popular)

	if res.Error != nil {
		return nil, fmt.Errorf("list popular people: %w", res.Error)
	}

	return popular, nil
}

// Create stores a person together with its pictures.
func (r *PeopleRepo) Create(ctx context.Context, person *entity.Person) error {
	if err := r.db.WithContext(ctx).Create(person).Error; err != nil {
		return fmt.Errorf("create person %s: %w", person.Name, err)
	}
	return nil
}

// pageOffset returns the rows skipped before page, or false when the page
// starts at or past total. page*size is never formed unless it is below total.
func pageOffset(page, size int, total int64) (int, bool) {
	if page < 0 || size <= 0 || total == 0 {
		return 0, false
	}

	if int64(page) > (total-1)/int64(size) {
		return 0, false
	}

	return page * size, true
}

func orderedPictures(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order ASC, id ASC")
}
