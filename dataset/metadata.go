package dataset

import "sync"

// MetadataFunc parses a dataset-level metadata table (a global CSV of
// titles, instruments, singers and the like) found under the given
// root. Implementations fail with an error wrapping fs.ErrNotExist
// when the table file is not on disk.
type MetadataFunc func(root string) (any, error)

// metadataCache memoizes parsed metadata per root. Each Dataset owns
// one, so two datasets pointed at different roots can never stomp on
// each other's entries. One mutex serializes read-check-populate; the
// data volume never justifies more machinery than that.
type metadataCache struct {
	mu      sync.Mutex
	entries map[string]metadataEntry
}

type metadataEntry struct {
	val any
	err error
}

func newMetadataCache() *metadataCache {
	return &metadataCache{entries: make(map[string]metadataEntry)}
}

// get returns the metadata for root, invoking parse at most once per
// root for the life of the cache. The outcome is memoized either way:
// asking again with the same root never re-parses, a different root
// parses under its own key.
func (c *metadataCache) get(root string, parse MetadataFunc) (any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[root]; ok {
		return e.val, e.err
	}
	val, err := parse(root)
	c.entries[root] = metadataEntry{val: val, err: err}
	return val, err
}
