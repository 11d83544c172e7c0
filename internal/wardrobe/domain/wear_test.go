package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWearLevel_Boundaries(t *testing.T) {
	tests := []struct {
		count int
		want  string
	}{
		{0, "🌱 New Arrival"},
		{1, "👟 Lightly Worn"},
		{5, "👟 Lightly Worn"},
		{6, "🔁 In Rotation"},
		{15, "🔁 In Rotation"},
		{16, "🧢 Well Worn"},
		{30, "🧢 Well Worn"},
		{31, "🧵 Long-Term Use"},
		{50, "🧵 Long-Term Use"},
		{51, "🏅 Wardrobe MVP"},
		{75, "🏅 Wardrobe MVP"},
		{76, "🏆 Legacy Item"},
		{200, "🏆 Legacy Item"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, WearLevel(tt.count), "WearLevel(%d)", tt.count)
	}
}
