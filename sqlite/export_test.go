package sqlite

import "time"

// SetNow overrides the clock used to stamp last_updated.
func (s *DocumentService) SetNow(now func() time.Time) {
	s.now = now
}
