package entity

import (
	"fmt"
	"strings"
)

// MaxDeviceIDLength matches the width of the device_id columns.
const MaxDeviceIDLength = 64

// DeviceID is the anonymous, client generated identifier a reaction is
// recorded under. It is never authenticated.
type DeviceID string

func NewDeviceID(raw string) (DeviceID, error) {
	raw = strings.TrimSpace(raw)

	if raw == "" {
		return "", fmt.Errorf("device id is required: %w", ErrInvalidArgument)
	}

	if len(raw) > MaxDeviceIDLength {
		return "", fmt.Errorf("device id exceeds %d bytes: %w", MaxDeviceIDLength, ErrInvalidArgument)
	}

	return DeviceID(raw), nil
}

func (d DeviceID) String() string {
	return string(d)
}
