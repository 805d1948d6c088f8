// Package lookup validates user input per lookup type and dispatches a
// single HTTP call to the matching external API.
package lookup

import (
	"regexp"
	"strings"

	"github.com/AbdulBotz/nagi-osint-bot/internal/apperr"
	"github.com/AbdulBotz/nagi-osint-bot/internal/session"
)

// Type identifies one of the supported lookup kinds.
type Type string

const (
	TypeMobile  Type = "mobile"
	TypeGST     Type = "gst"
	TypeIFSC    Type = "ifsc"
	TypePincode Type = "pincode"
	TypeVehicle Type = "vehicle"
	TypeIMEI    Type = "imei"
)

// TypeForMode maps a session mode to its lookup type.
func TypeForMode(mode session.Mode) (Type, bool) {
	switch mode {
	case session.ModeMobile:
		return TypeMobile, true
	case session.ModeGST:
		return TypeGST, true
	case session.ModeIFSC:
		return TypeIFSC, true
	case session.ModePincode:
		return TypePincode, true
	case session.ModeVehicle:
		return TypeVehicle, true
	case session.ModeIMEI:
		return TypeIMEI, true
	}
	return "", false
}

// Format rules are checked per type; this is format validation only, not a
// semantic check against any registry.
var patterns = map[Type]*regexp.Regexp{
	TypeMobile:  regexp.MustCompile(`^[0-9]{10}$`),
	TypeGST:     regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`),
	TypeIFSC:    regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`),
	TypePincode: regexp.MustCompile(`^[0-9]{6}$`),
	TypeVehicle: regexp.MustCompile(`^[A-Z]{2}[0-9]{1,2}[A-Z]{1,3}[0-9]{1,4}$`),
	TypeIMEI:    regexp.MustCompile(`^[0-9]{15}$`),
}

// Types whose patterns are written in upper case; input is normalized before
// matching so "icic0001206" passes the IFSC rule.
var uppercased = map[Type]bool{
	TypeGST:     true,
	TypeIFSC:    true,
	TypeVehicle: true,
}

// Validate normalizes raw input and checks it against the type's pattern.
// It is a pure function: the same (type, text) pair always yields the same
// outcome.
func Validate(t Type, raw string) (string, error) {
	normalized := strings.TrimSpace(raw)
	if uppercased[t] {
		normalized = strings.ToUpper(normalized)
	}

	pattern, ok := patterns[t]
	if !ok || !pattern.MatchString(normalized) {
		return "", apperr.InvalidFormat(string(t))
	}

	return normalized, nil
}
