package ipmeta

import "testing"

// TestKey tests the self/address key distinction and the cache key mapping.
func TestKey(t *testing.T) {
	tests := []struct {
		name             string
		key              Key
		expectedSelf     bool
		expectedCacheKey string
		expectedString   string
	}{
		{
			name:             "self",
			key:              Self(),
			expectedSelf:     true,
			expectedCacheKey: "",
			expectedString:   "self",
		},
		{
			name:             "address",
			key:              Address("8.8.8.8"),
			expectedSelf:     false,
			expectedCacheKey: "8.8.8.8",
			expectedString:   "8.8.8.8",
		},
		{
			name:             "empty address is self",
			key:              Address(""),
			expectedSelf:     true,
			expectedCacheKey: "",
			expectedString:   "self",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.key.IsSelf() != tt.expectedSelf {
				t.Errorf("expected IsSelf %v, got %v", tt.expectedSelf, tt.key.IsSelf())
			}
			if tt.key.cacheKey() != tt.expectedCacheKey {
				t.Errorf("expected cache key %q, got %q", tt.expectedCacheKey, tt.key.cacheKey())
			}
			if tt.key.String() != tt.expectedString {
				t.Errorf("expected string %q, got %q", tt.expectedString, tt.key.String())
			}
		})
	}
}
