package notify

import "sync"

// maxStored caps the notification history. Inserting beyond the cap evicts
// the oldest records; insertion itself never fails.
const maxStored = 100

// Store is the in-memory notification history, newest first. It is written
// by the monitor and read by the HTTP layer, so every operation takes the
// lock and readers get copied snapshots, never the live slice.
type Store struct {
	mu    sync.RWMutex
	items []*Notification
}

func NewStore() *Store {
	return &Store{}
}

// Insert prepends the record and evicts the oldest entries beyond the cap.
func (s *Store) Insert(n *Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = append([]*Notification{n}, s.items...)
	if len(s.items) > maxStored {
		s.items = s.items[:maxStored]
	}
}

// Replace swaps in a loaded history wholesale, applying the same cap.
func (s *Store) Replace(items []*Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(items) > maxStored {
		items = items[:maxStored]
	}
	s.items = append([]*Notification(nil), items...)
}

// MarkRead flags one record read. Unknown IDs are a no-op.
func (s *Store) MarkRead(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, n := range s.items {
		if n.ID == id {
			n.IsRead = true
			return
		}
	}
}

func (s *Store) MarkAllRead() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, n := range s.items {
		n.IsRead = true
	}
}

// Archive retires a record from category listings while keeping it in
// history. Unknown IDs are a no-op.
func (s *Store) Archive(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, n := range s.items {
		if n.ID == id {
			n.IsArchived = true
			return
		}
	}
}

// Delete removes a record entirely. Unknown IDs are a no-op.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.items {
		if n.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// All returns a snapshot of the full history, newest first.
func (s *Store) All() []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot(func(*Notification) bool { return true })
}

// ByCategory returns unarchived records of one category.
func (s *Store) ByCategory(c Category) []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot(func(n *Notification) bool {
		return n.Category == c && !n.IsArchived
	})
}

// Unread returns records not yet read.
func (s *Store) Unread() []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot(func(n *Notification) bool { return !n.IsRead })
}

// Critical returns unread records of critical priority.
func (s *Store) Critical() []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot(func(n *Notification) bool {
		return n.Priority == PriorityCritical && !n.IsRead
	})
}

func (s *Store) UnreadCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, n := range s.items {
		if !n.IsRead {
			count++
		}
	}
	return count
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// snapshot copies matching records so callers never see live mutations.
// Callers must hold at least the read lock.
func (s *Store) snapshot(match func(*Notification) bool) []Notification {
	out := make([]Notification, 0, len(s.items))
	for _, n := range s.items {
		if match(n) {
			out = append(out, *n)
		}
	}
	return out
}
