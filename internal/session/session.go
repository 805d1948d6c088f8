// Package session manages the per-user lookup mode: the transient "which
// lookup type is this user about to run" state between a button press and the
// next text message.
package session

import (
	"errors"
	"time"
)

// Mode is the currently selected lookup type awaiting input.
type Mode string

const (
	ModeNone    Mode = ""
	ModeMobile  Mode = "mobile"
	ModeGST     Mode = "gst"
	ModeIFSC    Mode = "ifsc"
	ModePincode Mode = "pincode"
	ModeVehicle Mode = "vehicle"
	ModeIMEI    Mode = "imei"
)

// Valid reports whether m names a known lookup type.
func (m Mode) Valid() bool {
	switch m {
	case ModeMobile, ModeGST, ModeIFSC, ModePincode, ModeVehicle, ModeIMEI:
		return true
	}
	return false
}

// Record captures the stored mode for a user.
type Record struct {
	UserID    int64     `json:"user_id"`
	Mode      Mode      `json:"mode"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ErrNotFound indicates that no mode is stored for the user.
var ErrNotFound = errors.New("session not found")
