package controllers

import (
	"errors"
	"net/http"

	"inkpost/app/auth"
	"inkpost/app/models"
	"inkpost/app/services"

	"github.com/gorilla/mux"
)

// PostController handles HTTP requests for blog posts
type PostController struct {
	responder
	postService *services.PostService
}

// NewPostController creates a new PostController. With strictAuth set,
// rejected tokens are answered with 401 instead of 200.
func NewPostController(postService *services.PostService, strictAuth bool) *PostController {
	return &PostController{
		responder:   responder{strictAuth: strictAuth},
		postService: postService,
	}
}

type listingResponse struct {
	Title        string            `json:"title"`
	Post         []*models.Post    `json:"post"`
	PostComments []*models.Comment `json:"post_comments"`
}

type detailResponse struct {
	Title        string            `json:"title"`
	Post         *models.Post      `json:"post"`
	PostComments []*models.Comment `json:"post_comments"`
}

type rejectedPostResponse struct {
	Title        string              `json:"title"`
	Post         *models.Post        `json:"post"`
	PostComments []*models.Comment   `json:"post_comments"`
	Errors       []models.FieldError `json:"errors"`
}

// Index lists published posts
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	listing, err := pc.postService.ListPublished(r.Context())
	if err != nil {
		pc.handleServiceError(w, r, err)
		return
	}
	pc.sendListing(w, listing)
}

// Unpublished lists draft posts
func (pc *PostController) Unpublished(w http.ResponseWriter, r *http.Request) {
	listing, err := pc.postService.ListUnpublished(r.Context(), auth.TokenFromContext(r.Context()))
	if err != nil {
		pc.handleServiceError(w, r, err)
		return
	}
	pc.sendListing(w, listing)
}

func (pc *PostController) sendListing(w http.ResponseWriter, listing *services.Listing) {
	pc.sendJSON(w, http.StatusOK, listingResponse{
		Title:        "Post",
		Post:         nonNilPosts(listing.Posts),
		PostComments: nonNilComments(listing.Comments),
	})
}

// Show returns a single post with its comments
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	detail, err := pc.postService.Detail(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		pc.handleServiceError(w, r, err)
		return
	}
	pc.sendJSON(w, http.StatusOK, detailResponse{
		Title:        "Post Detail",
		Post:         detail.Post,
		PostComments: nonNilComments(detail.Comments),
	})
}

// Create handles creating a new post
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	token := auth.TokenFromContext(r.Context())
	values, err := readValues(w, r)
	if err != nil {
		pc.handleServiceError(w, r, err)
		return
	}

	_, err = pc.postService.Create(r.Context(), token, models.NewPostForm(values))
	if err != nil {
		pc.handleMutationError(w, r, err)
		return
	}
	pc.sendJSON(w, http.StatusOK, "post sent")
}

// Update replaces the content of an existing post
func (pc *PostController) Update(w http.ResponseWriter, r *http.Request) {
	token := auth.TokenFromContext(r.Context())
	values, err := readValues(w, r)
	if err != nil {
		pc.handleServiceError(w, r, err)
		return
	}

	_, err = pc.postService.Update(r.Context(), token, mux.Vars(r)["id"], models.NewPostForm(values))
	if err != nil {
		pc.handleMutationError(w, r, err)
		return
	}
	pc.sendJSON(w, http.StatusOK, "post updated")
}

// Delete removes a post and its comments
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	err := pc.postService.Delete(r.Context(), auth.TokenFromContext(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		pc.handleServiceError(w, r, err)
		return
	}
	pc.sendJSON(w, http.StatusOK, "Post Deleted")
}

func (pc *PostController) handleMutationError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		pc.handleServiceError(w, r, err)
		return
	}
	pc.sendJSON(w, http.StatusOK, rejectedPostResponse{
		Title:        "Post",
		Post:         verr.Post,
		PostComments: []*models.Comment{},
		Errors:       nonNilFields(verr.Fields),
	})
}
