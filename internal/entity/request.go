package entity

import (
	"context"
	"strings"

	"github.com/ghaniswara/people-swipe/pkg/geo"
)

const (
	DefaultPage     = 0
	DefaultPageSize = 20
)

// Origin is the point a feed is ranked from.
type Origin struct {
	Lat float64
	Lng float64
}

// NewOrigin returns nil unless both coordinates are present and in range.
// Zero is a legitimate coordinate (equator, prime meridian).
func NewOrigin(lat, lng *float64) *Origin {
	if lat == nil || lng == nil {
		return nil
	}

	if !geo.ValidLatLng(*lat, *lng) {
		return nil
	}

	return &Origin{Lat: *lat, Lng: *lng}
}

// FeedRequest is a page request against the public feed. Page is 0-based.
type FeedRequest struct {
	Page   int
	Size   int
	Origin *Origin
}

// Normalize applies defaults: size 20 when absent or not positive, page 0
// when negative.
func (r FeedRequest) Normalize() FeedRequest {
	if r.Size <= 0 {
		r.Size = DefaultPageSize
	}

	if r.Page < 0 {
		r.Page = DefaultPage
	}

	return r
}

type DeviceIdentityRequest struct {
	DeviceID string `json:"device_id" form:"device_id" query:"device_id"`
}

func (r *DeviceIdentityRequest) Validate(ctx context.Context) (problems map[string][]string) {
	problems = make(map[string][]string)

	deviceID := strings.TrimSpace(r.DeviceID)

	if deviceID == "" {
		problems["device_id"] = append(problems["device_id"], "X-Device-Id required")
	}

	if len(deviceID) > MaxDeviceIDLength {
		problems["device_id"] = append(problems["device_id"], "X-Device-Id is too long")
	}

	return problems
}
