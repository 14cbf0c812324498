package models

// Post represents a blog entry with its publish state.
type Post struct {
	ID        string `json:"id" validate:"-"`
	Name      string `json:"name" validate:"required"`
	Title     string `json:"title" validate:"required"`
	Text      string `json:"text" validate:"required"`
	Date      string `json:"date" validate:"required"`
	Published bool   `json:"published"`
}

// Comment represents a reply attached to exactly one post.
type Comment struct {
	ID   string `json:"id" validate:"-"`
	Name string `json:"name" validate:"required"`
	Text string `json:"text" validate:"required"`
	Date string `json:"date" validate:"required"`
	Post string `json:"post" validate:"required"`
}
