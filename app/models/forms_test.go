package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscape(t *testing.T) {
	assert.Equal(t, "&lt;b&gt;hi&lt;&#x2F;b&gt;", Escape("<b>hi</b>"))
	assert.Equal(t, "Tom &amp; Jerry&#x27;s &quot;show&quot;", Escape(`Tom & Jerry's "show"`))
	assert.Equal(t, "a&#x5C;b&#96;c", Escape("a\\b`c"))
	assert.Equal(t, "&amp;lt;", Escape("&lt;"))
	assert.Equal(t, "plain", Escape("plain"))
}

func TestPostFormValidate(t *testing.T) {
	t.Run("valid form is trimmed and escaped", func(t *testing.T) {
		form := NewPostForm(map[string]string{
			"name":      "  Alice ",
			"title":     "<Hi>",
			"text":      "World\n",
			"published": "on",
		})

		errs := form.Validate()
		assert.Empty(t, errs)
		assert.Equal(t, "Alice", form.Name)
		assert.Equal(t, "&lt;Hi&gt;", form.Title)
		assert.Equal(t, "World", form.Text)
		assert.True(t, form.IsPublished())
	})

	t.Run("every empty field is reported in order", func(t *testing.T) {
		form := NewPostForm(map[string]string{"name": "   ", "title": "", "text": "\t"})

		errs := form.Validate()
		require.Len(t, errs, 3)
		assert.Equal(t, FieldError{Field: "name", Message: "Please type a name"}, errs[0])
		assert.Equal(t, FieldError{Field: "title", Message: "Please type a title"}, errs[1])
		assert.Equal(t, FieldError{Field: "text", Message: "Please type a message to send"}, errs[2])
	})

	t.Run("published is not required", func(t *testing.T) {
		form := NewPostForm(map[string]string{"name": "a", "title": "b", "text": "c"})
		assert.Empty(t, form.Validate())
		assert.False(t, form.IsPublished())
	})
}

func TestPostFormPublished(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"on", true},
		{"On", false},
		{"true", false},
		{"on ", false},
		{"", false},
		{"1", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			form := NewPostForm(map[string]string{"name": "a", "title": "b", "text": "c", "published": tt.value})
			form.Validate()
			assert.Equal(t, tt.want, form.Post().Published)
		})
	}
}

func TestCommentFormValidate(t *testing.T) {
	form := NewCommentForm(map[string]string{"name": "", "text": "hello"})

	errs := form.Validate()
	require.Len(t, errs, 1)
	assert.Equal(t, "name", errs[0].Field)
	assert.Equal(t, "Name must not be empty.", errs[0].Message)

	comment := NewCommentForm(map[string]string{"name": "Bob", "text": "it's fine"})
	assert.Empty(t, comment.Validate())
	c := comment.Comment("p1")
	assert.Equal(t, "it&#x27;s fine", c.Text)
	assert.Equal(t, "p1", c.Post)
}

func TestValidationError(t *testing.T) {
	err := error(&ValidationError{Fields: []FieldError{{Field: "name"}, {Field: "text"}}})
	assert.True(t, IsValidationError(err))
	assert.EqualError(t, err, "validation failed: name, text")
	assert.False(t, IsValidationError(assert.AnError))
}
