package validate

import (
	"sync"

	"github.com/tchap/go-patricia/v2/patricia"
	"github.com/vmihailenco/msgpack/v5"
)

// Cache holds already-validated WordEntry results keyed by word, checked
// before every outbound HTTP call so a repeated candidate never re-probes
// the external service. It's backed by a radix trie rather than a plain map
// because cached words cluster around the same dictionary fragments across
// requests, so prefix compression pays for itself even though lookups are
// keyed by the whole word rather than a prefix.
type Cache struct {
	mu       sync.RWMutex
	trie     *patricia.Trie
	capacity int
	order    []string // insertion order, for simple FIFO eviction
}

// NewCache builds an empty cache bounded to capacity entries (0 means
// unbounded).
func NewCache(capacity int) *Cache {
	return &Cache{
		trie:     patricia.NewTrie(),
		capacity: capacity,
	}
}

// Get returns the cached entry for word, if present.
func (c *Cache) Get(word string) (WordEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	item := c.trie.Get(patricia.Prefix(word))
	if item == nil {
		return WordEntry{}, false
	}
	return item.(WordEntry), true
}

// Put records word's validated entry, evicting the oldest entry first if the
// cache is at capacity.
func (c *Cache) Put(word string, entry WordEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.trie.Get(patricia.Prefix(word)) != nil {
		c.trie.Set(patricia.Prefix(word), entry)
		return
	}
	if c.capacity > 0 && len(c.order) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		c.trie.Delete(patricia.Prefix(oldest))
	}
	c.trie.Set(patricia.Prefix(word), entry)
	c.order = append(c.order, word)
}

// snapshotRecord is the msgpack-encoded form of one cache entry.
type snapshotRecord struct {
	Word  string    `msgpack:"word"`
	Entry WordEntry `msgpack:"entry"`
}

// Snapshot serializes the cache's current contents to msgpack bytes, for a
// warm restart of the validation cache across process restarts. This is
// explicitly not a persistence of solve results: the cache only ever holds
// already-validated words, never a request's candidate list.
func (c *Cache) Snapshot() ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	records := make([]snapshotRecord, 0, len(c.order))
	for _, w := range c.order {
		item := c.trie.Get(patricia.Prefix(w))
		if item == nil {
			continue
		}
		records = append(records, snapshotRecord{Word: w, Entry: item.(WordEntry)})
	}
	return msgpack.Marshal(records)
}

// LoadSnapshot replaces the cache's contents with the records encoded by a
// prior Snapshot call.
func (c *Cache) LoadSnapshot(data []byte) error {
	var records []snapshotRecord
	if err := msgpack.Unmarshal(data, &records); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.trie = patricia.NewTrie()
	c.order = c.order[:0]
	for _, r := range records {
		c.trie.Set(patricia.Prefix(r.Word), r.Entry)
		c.order = append(c.order, r.Word)
	}
	return nil
}
