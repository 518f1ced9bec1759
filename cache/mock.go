package cache

// Mock is a test double for the Cache interface. It records calls so tests
// can verify when the Handler consulted or populated the cache, and it never
// expires or evicts anything.
type Mock struct {
	// Data holds the cached entries.
	Data map[string]map[string]any

	// Recorded calls, in order.
	ContainsCalls []string
	GetCalls      []string
	SetCalls      []string
}

// NewMock creates an empty mock cache.
func NewMock() *Mock {
	return &Mock{
		Data: make(map[string]map[string]any),
	}
}

// Contains implements Cache.
func (m *Mock) Contains(key string) bool {
	m.ContainsCalls = append(m.ContainsCalls, key)
	_, ok := m.Data[key]
	return ok
}

// Get implements Cache.
func (m *Mock) Get(key string) (map[string]any, bool) {
	m.GetCalls = append(m.GetCalls, key)
	value, ok := m.Data[key]
	return value, ok
}

// Set implements Cache.
func (m *Mock) Set(key string, value map[string]any) {
	m.SetCalls = append(m.SetCalls, key)
	m.Data[key] = value
}
