package controllers

import (
	"errors"
	"net/http"

	"inkpost/app/auth"
	"inkpost/app/models"
	"inkpost/app/services"

	"github.com/gorilla/mux"
)

// CommentController handles HTTP requests for comments
type CommentController struct {
	responder
	commentService *services.CommentService
}

// NewCommentController creates a new CommentController
func NewCommentController(commentService *services.CommentService, strictAuth bool) *CommentController {
	return &CommentController{
		responder:      responder{strictAuth: strictAuth},
		commentService: commentService,
	}
}

type commentSentResponse struct {
	Comment string `json:"comment"`
}

type rejectedCommentResponse struct {
	Errors []models.FieldError `json:"errors"`
}

// Create adds a comment to the post named in the path
func (cc *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	values, err := readValues(w, r)
	if err != nil {
		cc.handleServiceError(w, r, err)
		return
	}

	_, err = cc.commentService.Create(r.Context(), mux.Vars(r)["id"], models.NewCommentForm(values))
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		cc.sendJSON(w, http.StatusOK, rejectedCommentResponse{Errors: nonNilFields(verr.Fields)})
	case err != nil:
		cc.handleServiceError(w, r, err)
	default:
		cc.sendJSON(w, http.StatusOK, commentSentResponse{Comment: "Comment Sent"})
	}
}

// Delete removes a comment
func (cc *CommentController) Delete(w http.ResponseWriter, r *http.Request) {
	err := cc.commentService.Delete(r.Context(), auth.TokenFromContext(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		cc.handleServiceError(w, r, err)
		return
	}
	cc.sendJSON(w, http.StatusOK, "Comment Deleted")
}
