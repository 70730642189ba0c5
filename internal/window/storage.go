package window

// Storage is a map-backed, insertion-ordered storage area. It backs
// both localStorage and sessionStorage; neither persists anywhere.
type Storage struct {
	items map[string]string
	keys  []string
}

// NewStorage creates an empty storage area.
func NewStorage() *Storage {
	return &Storage{items: make(map[string]string)}
}

// Get returns the value stored under key.
func (s *Storage) Get(key string) (string, bool) {
	v, ok := s.items[key]
	return v, ok
}

// Set stores value under key, keeping first-insertion order.
func (s *Storage) Set(key, value string) {
	if _, ok := s.items[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.items[key] = value
}

// Remove deletes key from the area.
func (s *Storage) Remove(key string) {
	if _, ok := s.items[key]; !ok {
		return
	}
	delete(s.items, key)
	for i, k := range s.keys {
		if k == key {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			break
		}
	}
}

// Key returns the key at index i, or "" and false past the end.
func (s *Storage) Key(i int) (string, bool) {
	if i < 0 || i >= len(s.keys) {
		return "", false
	}
	return s.keys[i], true
}

// Len returns the number of stored keys.
func (s *Storage) Len() int {
	return len(s.keys)
}

// Clear removes every key.
func (s *Storage) Clear() {
	s.items = make(map[string]string)
	s.keys = nil
}

// Navigator is the inert navigator facade.
type Navigator struct {
	UserAgent string
	Language  string
	Platform  string
	Online    bool
}

// History is a list-backed session history.
type History struct {
	entries []string
	pos     int
}

// Length returns the number of history entries.
func (h *History) Length() int {
	return len(h.entries)
}

// Push appends an entry and moves the position to it, dropping any
// forward entries.
func (h *History) Push(address string) {
	if len(h.entries) > 0 {
		h.entries = h.entries[:h.pos+1]
	}
	h.entries = append(h.entries, address)
	h.pos = len(h.entries) - 1
}

// Current returns the entry at the current position, or "".
func (h *History) Current() string {
	if len(h.entries) == 0 {
		return ""
	}
	return h.entries[h.pos]
}

// Back moves one entry backward and reports whether it moved.
func (h *History) Back() bool {
	if h.pos == 0 || len(h.entries) == 0 {
		return false
	}
	h.pos--
	return true
}

// Forward moves one entry forward and reports whether it moved.
func (h *History) Forward() bool {
	if h.pos >= len(h.entries)-1 {
		return false
	}
	h.pos++
	return true
}
