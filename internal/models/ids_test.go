package models

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateTravelID(t *testing.T) {
	tests := []struct {
		travelType string
		pattern    string
	}{
		{TravelTypeFlight, `^FL\d{6}$`},
		{TravelTypeTrain, `^TR\d{6}$`},
		{TravelTypeBus, `^BU\d{6}$`},
		{"HOVERCRAFT", `^XX\d{6}$`},
	}

	for _, tt := range tests {
		t.Run(tt.travelType, func(t *testing.T) {
			re := regexp.MustCompile(tt.pattern)
			for i := 0; i < 100; i++ {
				id := GenerateTravelID(tt.travelType)
				assert.Regexp(t, re, id)
			}
		})
	}
}

func TestGenerateBookingID(t *testing.T) {
	re := regexp.MustCompile(`^TKT\d{7}$`)
	for i := 0; i < 100; i++ {
		assert.Regexp(t, re, GenerateBookingID())
	}
}
