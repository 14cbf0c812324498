package models

import (
	"time"
)

const (
	// DateLayout renders dates the way the blog front end displays them, e.g. "Oct 18, 2026".
	DateLayout = "Jan 2, 2006"

	// UpdatedPrefix marks the date of a post that has been edited.
	UpdatedPrefix = "Updated: "
)

// FormatDate renders t as a medium-length date.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Validate checks that the post satisfies the storage invariants.
func (p *Post) Validate() error {
	return validate.Struct(p)
}

// Stamp sets the creation date of the post.
func (p *Post) Stamp(now time.Time) {
	p.Date = FormatDate(now)
}

// StampUpdated sets the date of an edited post.
func (p *Post) StampUpdated(now time.Time) {
	p.Date = UpdatedPrefix + FormatDate(now)
}
