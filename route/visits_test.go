package route

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theoremus-urban-solutions/runroute/geo"
)

func TestPathVisits_OutAndBack(t *testing.T) {
	s := geo.GeoPoint{Latitude: 1.300, Longitude: 103.800}
	a := geo.GeoPoint{Latitude: 1.301, Longitude: 103.800}
	b := geo.GeoPoint{Latitude: 1.302, Longitude: 103.801}

	visits := PathVisits(geo.Polyline{s, a, b, a, s})
	require.Len(t, visits, 4)

	expected := []SegmentVisit{
		{Index: 0, Count: 2, Direction: Forward},
		{Index: 1, Count: 2, Direction: Forward},
		{Index: 2, Count: 2, Direction: Reverse},
		{Index: 3, Count: 2, Direction: Reverse},
	}
	assert.Equal(t, expected, visits)
}

func TestPathVisits_SinglePass(t *testing.T) {
	visits := PathVisits(northLine())
	require.Len(t, visits, 2)
	for _, v := range visits {
		assert.False(t, v.Repeated())
		assert.Equal(t, Forward, v.Direction)
	}
	assert.Nil(t, PathVisits(geo.Polyline{{Latitude: 1, Longitude: 1}}))
}

func TestArrows(t *testing.T) {
	idx, err := Build(northLine())
	require.NoError(t, err)

	arrows := idx.Arrows(50)
	require.Len(t, arrows, 4)
	for i, a := range arrows {
		assert.InDelta(t, float64(i+1)*50, geo.Distance(idx.Start(), a.Point), 0.5)
		assert.InDelta(t, 0, a.Bearing, 0.01)
		assert.False(t, a.Repeated)
	}
	assert.Nil(t, idx.Arrows(0))
}
