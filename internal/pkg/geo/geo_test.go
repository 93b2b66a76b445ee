package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance_SamePoint(t *testing.T) {
	t.Parallel()
	p := Point{Latitude: -0.2316, Longitude: 100.6328}
	assert.Equal(t, 0.0, Distance(p, p))
}

func TestDistance_KnownDistance(t *testing.T) {
	t.Parallel()
	// One degree of latitude is roughly 111.2 km.
	a := Point{Latitude: 0, Longitude: 100}
	b := Point{Latitude: 1, Longitude: 100}
	d := Distance(a, b)
	assert.InDelta(t, 111195, d, 100)
}

func TestGeofence_Contains(t *testing.T) {
	t.Parallel()
	fence := NewGeofence(-0.2316, 100.6328, 500)

	assert.True(t, fence.Contains(Point{Latitude: -0.2316, Longitude: 100.6328}))
	// ~0.001 degree latitude is ~111 m, well inside 500 m.
	assert.True(t, fence.Contains(Point{Latitude: -0.2326, Longitude: 100.6328}))
	// ~0.01 degree latitude is ~1.1 km, outside.
	assert.False(t, fence.Contains(Point{Latitude: -0.2416, Longitude: 100.6328}))
}

func TestFormatAndParse(t *testing.T) {
	t.Parallel()
	p := Point{Latitude: -0.231645, Longitude: 100.632801}
	s := Format(p)
	assert.Equal(t, "-0.231645,100.632801", s)

	parsed, err := Parse(s)
	assert.NoError(t, err)
	assert.InDelta(t, p.Latitude, parsed.Latitude, 1e-9)
	assert.InDelta(t, p.Longitude, parsed.Longitude, 1e-9)
}

func TestParse_Invalid(t *testing.T) {
	t.Parallel()
	_, err := Parse("not-a-location")
	assert.Error(t, err)

	_, err = Parse("1.0,abc")
	assert.Error(t, err)
}
