package entity

import "time"

type Person struct {
	ID        uint      `gorm:"primaryKey;column:id"`
	Name      string    `gorm:"not null;column:name"`
	Age       int       `gorm:"not null;column:age"`
	Lat       *float64  `gorm:"column:lat"`
	Lng       *float64  `gorm:"column:lng"`
	City      *string   `gorm:"column:city"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`

	Pictures []Picture `gorm:"foreignKey:PersonID;constraint:OnDelete:CASCADE"`
}

func (Person) TableName() string {
	return "people"
}

// HasLocation reports whether both coordinates are known.
func (p Person) HasLocation() bool {
	return p.Lat != nil && p.Lng != nil
}

type Picture struct {
	ID        uint      `gorm:"primaryKey;column:id"`
	PersonID  uint      `gorm:"not null;index;column:person_id"`
	URL       string    `gorm:"not null;column:url"`
	SortOrder int       `gorm:"not null;default:0;column:sort_order"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Picture) TableName() string {
	return "pictures"
}

// Like and Dislike rows are unique per (person_id, device_id); the unique
// index is what makes repeated reactions a no-op.
type Like struct {
	ID        uint      `gorm:"primaryKey;column:id"`
	PersonID  uint      `gorm:"not null;index;uniqueIndex:likes_person_id_device_id_unique;column:person_id"`
	DeviceID  DeviceID  `gorm:"not null;size:64;uniqueIndex:likes_person_id_device_id_unique;column:device_id"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Like) TableName() string {
	return "likes"
}

type Dislike struct {
	ID        uint      `gorm:"primaryKey;column:id"`
	PersonID  uint      `gorm:"not null;index;uniqueIndex:dislikes_person_id_device_id_unique;column:person_id"`
	DeviceID  DeviceID  `gorm:"not null;size:64;uniqueIndex:dislikes_person_id_device_id_unique;column:device_id"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Dislike) TableName() string {
	return "dislikes"
}

type Polarity uint

const (
	PolarityLike Polarity = iota + 1
	PolarityDislike
)

func (p Polarity) String() string {
	switch p {
	case PolarityLike:
		return "Like"
	case PolarityDislike:
		return "Dislike"
	default:
		return "Unknown"
	}
}

// PopularPerson is a person together with the number of likes received.
type PopularPerson struct {
	ID         uint   `gorm:"column:id"`
	Name       string `gorm:"column:name"`
	LikesCount int64  `gorm:"column:likes_count"`
}
