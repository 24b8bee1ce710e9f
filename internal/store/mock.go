package store

// MockStore is an in-memory HeuristicStore for tests.
type MockStore struct {
	AnchorKeywords []string
	CityPrefixes   map[string]string

	AnchorKeywordsError error
	CityPrefixesError   error
}

// LoadAnchorKeywords returns the configured keywords or error.
func (m *MockStore) LoadAnchorKeywords() ([]string, error) {
	if m.AnchorKeywordsError != nil {
		return nil, m.AnchorKeywordsError
	}
	return append([]string{}, m.AnchorKeywords...), nil
}

// LoadCityPrefixes returns the configured prefix table or error.
func (m *MockStore) LoadCityPrefixes() (map[string]string, error) {
	if m.CityPrefixesError != nil {
		return nil, m.CityPrefixesError
	}
	out := make(map[string]string, len(m.CityPrefixes))
	for k, v := range m.CityPrefixes {
		out[k] = v
	}
	return out, nil
}
