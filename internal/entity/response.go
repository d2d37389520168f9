package entity

import "strconv"

type PictureView struct {
	URL string `json:"url"`
}

type LocationView struct {
	Lat        *float64 `json:"lat"`
	Lng        *float64 `json:"lng"`
	City       *string  `json:"city"`
	DistanceKm *float64 `json:"distanceKm,omitempty"`
}

type PersonView struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Age      int           `json:"age"`
	Location LocationView  `json:"location"`
	Pictures []PictureView `json:"pictures"`
}

// NewPersonView reshapes a stored person into its public form. Pictures are
// expected to already be in display order.
func NewPersonView(p Person, distanceKm *float64) PersonView {
	pictures := make([]PictureView, 0, len(p.Pictures))
	for _, pic := range p.Pictures {
		pictures = append(pictures, PictureView{URL: pic.URL})
	}

	return PersonView{
		ID:   strconv.FormatUint(uint64(p.ID), 10),
		Name: p.Name,
		Age:  p.Age,
		Location: LocationView{
			Lat:        p.Lat,
			Lng:        p.Lng,
			City:       p.City,
			DistanceKm: distanceKm,
		},
		Pictures: pictures,
	}
}

type PeoplePageResponse struct {
	Items []PersonView `json:"items"`
	Page  int          `json:"page"`
	Size  int          `json:"size"`
	Total int64        `json:"total"`
}

type LikedPeopleResponse struct {
	Items []PersonView `json:"items"`
}

type LikeResponse struct {
	Liked    bool `json:"liked"`
	PersonID uint `json:"person_id"`
}

type DislikeResponse struct {
	Disliked bool `json:"disliked"`
	PersonID uint `json:"person_id"`
}
