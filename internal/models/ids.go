package models

import "math/rand"

var travelIDPrefixes = map[string]string{
	TravelTypeFlight: "FL",
	TravelTypeTrain:  "TR",
	TravelTypeBus:    "BU",
}

// GenerateTravelID produces a candidate travel identifier: a two-letter type
// prefix followed by six random digits. Collisions are statistically rare but
// possible; uniqueness is enforced by the DB unique index together with the
// caller's insert-retry loop.
func GenerateTravelID(travelType string) string {
	prefix, ok := travelIDPrefixes[travelType]
	if !ok {
		prefix = "XX"
	}
	return prefix + randomDigits(6)
}

// GenerateBookingID produces a candidate booking identifier: "TKT" followed
// by seven random digits. Same uniqueness contract as GenerateTravelID.
func GenerateBookingID() string {
	return "TKT" + randomDigits(7)
}

func randomDigits(n int) string {
	digits := make([]byte, n)
	for i := range digits {
		digits[i] = byte('0' + rand.Intn(10))
	}
	return string(digits)
}
