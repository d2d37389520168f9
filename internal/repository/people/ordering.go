package peopleRepo

import (
	"github.com/ghaniswara/people-swipe/internal/entity"
	"github.com/ghaniswara/people-swipe/pkg/geo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Ordering decides how a feed page is ranked and which distance, if any, is
// reported for each person on it.
type Ordering interface {
	Apply(query *gorm.DB) *gorm.DB
	DistanceKm(person entity.Person) *float64
}

// OrderingFor picks distance ranking when an origin is known and identity
// ranking otherwise.
func OrderingFor(origin *entity.Origin) Ordering {
	if origin == nil {
		return ByIdentity()
	}
	return ByDistance(*origin)
}

type identityOrdering struct{}

// ByIdentity ranks the most recently created people first.
func ByIdentity() Ordering {
	return identityOrdering{}
}

func (identityOrdering) Apply(query *gorm.DB) *gorm.DB {
	return query.Order(clause.OrderByColumn{Column: clause.Column{Table: "people", Name: "id"}, Desc: true})
}

func (identityOrdering) DistanceKm(entity.Person) *float64 {
	return nil
}

type distanceOrdering struct {
	origin entity.Origin
}

// ByDistance ranks people nearest to origin first. People without a location
// go last, newest first.
func ByDistance(origin entity.Origin) Ordering {
	return distanceOrdering{origin: origin}
}

// haversineSQL mirrors geo.HaversineKm; LEAST guards ASIN against rounding
// above 1.
const haversineSQL = "(6371 * 2 * ASIN(LEAST(1, SQRT(" +
	"POWER(SIN(RADIANS(people.lat - ?) / 2), 2) + " +
	"COS(RADIANS(?)) * COS(RADIANS(people.lat)) * POWER(SIN(RADIANS(people.lng - ?) / 2), 2)" +
	"))))"

func (o distanceOrdering) Apply(query *gorm.DB) *gorm.DB {
	return query.Order(clause.OrderBy{Expression: clause.Expr{
		SQL:  haversineSQL + " ASC NULLS LAST, people.id DESC",
		Vars: []interface{}{o.origin.Lat, o.origin.Lat, o.origin.Lng},
	}})
}

func (o distanceOrdering) DistanceKm(person entity.Person) *float64 {
	if !person.HasLocation() {
		return nil
	}

	distance := geo.Round(geo.HaversineKm(o.origin.Lat, o.origin.Lng, *person.Lat, *person.Lng), 1)
	return &distance
}
