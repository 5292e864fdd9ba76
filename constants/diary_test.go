package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalWeather(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"sunny", "Sunny/Dry", true},
		{"  Rain ", "Rainy", true},
		{"overcast", "Cloudy", true},
		{"cloudy", "Cloudy", true},
		{"SUNNY/DRY", "Sunny/Dry", true},
		{"hailstorm with frogs", "hailstorm with frogs", false},
		{"", DefaultWeather, false},
	}
	for _, tt := range tests {
		got, ok := CanonicalWeather(tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
	}
}

func TestMapExtToFormat(t *testing.T) {
	assert.Equal(t, PDF, MapExtToFormat(".PDF"))
	assert.Equal(t, PDF, MapExtToFormat("pdf"))
	assert.Equal(t, IMAGE, MapExtToFormat(".png"))
	assert.Equal(t, "", MapExtToFormat(".docx"))
}

func TestAllowedExtensions(t *testing.T) {
	_, ok := AllowedExtensions[NormalizeExt(".pdf")]
	assert.True(t, ok)
	_, ok = AllowedExtensions[NormalizeExt(".png")]
	assert.False(t, ok)
}
