package document

import "github.com/mlakar/inventar/internal/model"

// Update runs fn inside the store's exclusive mutation slot: the document
// is loaded fresh from disk, fn mutates it in place, and the result is
// persisted before the slot is released. Queued callers run one at a time
// in a starvation-free order.
//
// If the load, fn, or the save fails, nothing is persisted and the error
// is returned unchanged, so fn's sentinel errors survive for errors.Is.
// A mutation runs to completion once started; there is no cancellation
// path, so a caller abandoning its request never abandons the write.
func (s *Store) Update(fn func(*model.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.Load()
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	return s.Save(doc)
}
