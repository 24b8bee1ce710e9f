// Package geo maps postal codes to coarse metro labels using a static
// three-digit prefix table. No geocoding, no fuzzy matching, no I/O.
package geo

// defaultPrefixes covers the major US metros the product launched in.
// Keys are the first three digits of a five-digit ZIP.
var defaultPrefixes = map[string]string{
	"940": "San Francisco",
	"941": "San Francisco",
	"944": "San Francisco",
	"945": "Oakland",
	"946": "Oakland",
	"950": "San Jose",
	"951": "San Jose",
	"900": "Los Angeles",
	"902": "Los Angeles",
	"906": "Los Angeles",
	"921": "San Diego",
	"922": "San Diego",
	"100": "New York",
	"101": "New York",
	"102": "New York",
	"103": "New York",
	"112": "Brooklyn",
	"606": "Chicago",
	"607": "Chicago",
	"981": "Seattle",
	"980": "Seattle",
	"021": "Boston",
	"022": "Boston",
	"787": "Austin",
	"750": "Dallas",
	"752": "Dallas",
	"770": "Houston",
	"802": "Denver",
	"803": "Denver",
	"331": "Miami",
	"332": "Miami",
	"303": "Atlanta",
	"891": "Las Vegas",
	"850": "Phoenix",
	"972": "Portland",
	"200": "Washington DC",
	"191": "Philadelphia",
	"371": "Nashville",
	"601": "Chicago",
	"480": "Detroit",
	"841": "Salt Lake City",
	"968": "Honolulu",
}

// Resolver resolves ZIP codes against a prefix table.
type Resolver struct {
	prefixes map[string]string
}

// NewResolver builds a resolver over the given prefix table. Entries with a
// key shorter than three characters are ignored.
func NewResolver(prefixes map[string]string) *Resolver {
	table := make(map[string]string, len(prefixes))
	for prefix, city := range prefixes {
		if len(prefix) == 3 {
			table[prefix] = city
		}
	}
	return &Resolver{prefixes: table}
}

// Default returns a resolver over the built-in metro table.
func Default() *Resolver {
	return NewResolver(defaultPrefixes)
}

// ResolveCity maps a postal code to its metro label. Unknown prefixes,
// empty input, and codes shorter than three characters resolve to nothing.
// Never errors.
func (r *Resolver) ResolveCity(zip string) (string, bool) {
	if len(zip) < 3 {
		return "", false
	}
	city, ok := r.prefixes[zip[:3]]
	return city, ok
}

// SameCity reports whether two postal codes resolve to the same metro.
// Returns false unless both resolve.
func (r *Resolver) SameCity(a, b string) bool {
	cityA, okA := r.ResolveCity(a)
	cityB, okB := r.ResolveCity(b)
	return okA && okB && cityA == cityB
}
