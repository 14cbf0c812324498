package models

import (
	"time"
)

// Validate checks that the comment satisfies the storage invariants.
func (c *Comment) Validate() error {
	return validate.Struct(c)
}

// Stamp sets the creation date of the comment.
func (c *Comment) Stamp(now time.Time) {
	c.Date = FormatDate(now)
}

// URL returns the canonical path of the comment.
func (c *Comment) URL() string {
	return "/blog/comment/" + c.ID
}
