package ipmeta

// Key identifies a lookup target. The zero value means "the caller's own
// address" (the API resolves it from the connecting IP). Use Address to look
// up a specific IP.
//
// Keys are used verbatim as cache keys: the self key maps to the empty
// string, which can never collide with a literal IP address, so looking up
// "8.8.8.8" never touches the cached self entry.
type Key struct {
	addr string
}

// Self returns the key for the caller's own address.
func Self() Key {
	return Key{}
}

// Address returns the key for a specific IP address. An empty address is
// equivalent to Self.
func Address(ip string) Key {
	return Key{addr: ip}
}

// IsSelf reports whether the key targets the caller's own address.
func (k Key) IsSelf() bool {
	return k.addr == ""
}

// IP returns the target address, or the empty string for the self key.
func (k Key) IP() string {
	return k.addr
}

// String returns a human-readable form for logs.
func (k Key) String() string {
	if k.IsSelf() {
		return "self"
	}
	return k.addr
}

// cacheKey returns the string used to index the cache.
func (k Key) cacheKey() string {
	return k.addr
}
