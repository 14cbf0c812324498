package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"inkpost/app/auth"
	"inkpost/app/models"
)

// Option configures a service.
type Option func(*options)

type options struct {
	now           func() time.Time
	scopeComments bool
}

// WithClock overrides the time source used to stamp dates.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithScopedComments makes post listings return only the comments of the
// listed posts instead of every comment in the store.
func WithScopedComments(scoped bool) Option {
	return func(o *options) {
		o.scopeComments = scoped
	}
}

func newOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// authorize checks token with verifier. The returned error always wraps
// auth.ErrUnauthorized.
func authorize(verifier auth.Verifier, op, token string) error {
	err := verifier.Verify(token)
	if err == nil {
		return nil
	}
	log.Printf("[AUTH_FAILURE] op=%s error=%v", op, err)
	if !errors.Is(err, auth.ErrUnauthorized) {
		err = fmt.Errorf("%w: %v", auth.ErrUnauthorized, err)
	}
	return err
}

// Listing is a set of posts together with comments.
type Listing struct {
	Posts    []*models.Post
	Comments []*models.Comment
}

// Detail is a single post with its comments.
type Detail struct {
	Post     *models.Post
	Comments []*models.Comment
}
