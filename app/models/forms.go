package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their wire names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		}
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

var escaper = strings.NewReplacer(
	"&", "&amp;",
	`"`, "&quot;",
	"'", "&#x27;",
	"<", "&lt;",
	">", "&gt;",
	"/", "&#x2F;",
	`\`, "&#x5C;",
	"`", "&#96;",
)

// Escape replaces markup-significant characters with HTML entities.
func Escape(s string) string {
	return escaper.Replace(s)
}

// FieldError describes a single rejected form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned when a submitted form has empty required fields.
// Post carries the unsaved post built from the rejected form, if any.
type ValidationError struct {
	Fields []FieldError
	Post   *Post
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}
	return "validation failed: " + strings.Join(names, ", ")
}

// IsValidationError reports whether err is or wraps a *ValidationError.
func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

// PostForm holds the raw fields of a post submission.
type PostForm struct {
	Name      string `form:"name" validate:"required"`
	Title     string `form:"title" validate:"required"`
	Text      string `form:"text" validate:"required"`
	Published string `form:"published"`
}

var postMessages = map[string]string{
	"name":  "Please type a name",
	"title": "Please type a title",
	"text":  "Please type a message to send",
}

// NewPostForm builds a PostForm from submitted values.
func NewPostForm(values map[string]string) *PostForm {
	return &PostForm{
		Name:      values["name"],
		Title:     values["title"],
		Text:      values["text"],
		Published: values["published"],
	}
}

// Validate trims and checks the required fields, then escapes every field
// in place. All failures are collected.
func (f *PostForm) Validate() []FieldError {
	f.Name = strings.TrimSpace(f.Name)
	f.Title = strings.TrimSpace(f.Title)
	f.Text = strings.TrimSpace(f.Text)

	errs := collect(f, postMessages)

	f.Name = Escape(f.Name)
	f.Title = Escape(f.Title)
	f.Text = Escape(f.Text)
	f.Published = Escape(f.Published)
	return errs
}

// IsPublished reports whether the published checkbox was ticked.
func (f *PostForm) IsPublished() bool {
	return f.Published == "on"
}

// Post builds an unsaved post from the form.
func (f *PostForm) Post() *Post {
	return &Post{
		Name:      f.Name,
		Title:     f.Title,
		Text:      f.Text,
		Published: f.IsPublished(),
	}
}

// CommentForm holds the raw fields of a comment submission.
type CommentForm struct {
	Name string `form:"name" validate:"required"`
	Text string `form:"text" validate:"required"`
}

var commentMessages = map[string]string{
	"name": "Name must not be empty.",
	"text": "Text must not be empty.",
}

// NewCommentForm builds a CommentForm from submitted values.
func NewCommentForm(values map[string]string) *CommentForm {
	return &CommentForm{
		Name: values["name"],
		Text: values["text"],
	}
}

// Validate trims and checks the required fields, then escapes them in place.
func (f *CommentForm) Validate() []FieldError {
	f.Name = strings.TrimSpace(f.Name)
	f.Text = strings.TrimSpace(f.Text)

	errs := collect(f, commentMessages)

	f.Name = Escape(f.Name)
	f.Text = Escape(f.Text)
	return errs
}

// Comment builds an unsaved comment on the given post.
func (f *CommentForm) Comment(postID string) *Comment {
	return &Comment{
		Name: f.Name,
		Text: f.Text,
		Post: postID,
	}
}

func collect(form any, messages map[string]string) []FieldError {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Message: err.Error()}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		msg, ok := messages[fe.Field()]
		if !ok {
			msg = fmt.Sprintf("%s is invalid", fe.Field())
		}
		out = append(out, FieldError{Field: fe.Field(), Message: msg})
	}
	return out
}
