package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveCity(t *testing.T) {
	resolver := Default()

	tests := []struct {
		name     string
		zip      string
		wantCity string
		wantOK   bool
	}{
		{name: "san francisco 94107", zip: "94107", wantCity: "San Francisco", wantOK: true},
		{name: "san francisco 94102", zip: "94102", wantCity: "San Francisco", wantOK: true},
		{name: "new york", zip: "10001", wantCity: "New York", wantOK: true},
		{name: "los angeles", zip: "90012", wantCity: "Los Angeles", wantOK: true},
		{name: "unknown prefix", zip: "99999", wantCity: "", wantOK: false},
		{name: "empty input", zip: "", wantCity: "", wantOK: false},
		{name: "too short", zip: "94", wantCity: "", wantOK: false},
		{name: "exactly three digits", zip: "941", wantCity: "San Francisco", wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			city, ok := resolver.ResolveCity(tt.zip)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantCity, city)
		})
	}
}

func TestResolveCity_Deterministic(t *testing.T) {
	resolver := Default()
	first, ok1 := resolver.ResolveCity("94107")
	second, ok2 := resolver.ResolveCity("94107")
	assert.True(t, ok1)
	assert.True(t, ok2)
	assert.Equal(t, first, second)
}

func TestNewResolver_IgnoresBadPrefixes(t *testing.T) {
	resolver := NewResolver(map[string]string{
		"941":  "San Francisco",
		"94":   "Too Short",
		"9410": "Too Long",
	})

	city, ok := resolver.ResolveCity("94107")
	assert.True(t, ok)
	assert.Equal(t, "San Francisco", city)

	_, ok = resolver.ResolveCity("94")
	assert.False(t, ok)
}

func TestSameCity(t *testing.T) {
	resolver := Default()

	assert.True(t, resolver.SameCity("94107", "94102"))
	assert.False(t, resolver.SameCity("94107", "10001"))
	assert.False(t, resolver.SameCity("94107", "99999"), "unresolvable zip never matches")
	assert.False(t, resolver.SameCity("", ""))
}
