package badger

// Key prefixes for different data types
const (
	valuePrefix = "kv"
)

// makeValueKey generates the badger key for a store key.
// Format: prefix:key
func makeValueKey(key string) []byte {
	return []byte(valuePrefix + ":" + key)
}
