package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"inkpost/app/auth"
	"inkpost/app/models"
	"inkpost/app/repositories"
)

// CommentService handles business logic for comments
type CommentService struct {
	commentRepo repositories.CommentRepository
	verifier    auth.Verifier
	opts        options
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo repositories.CommentRepository, verifier auth.Verifier, opts ...Option) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		verifier:    verifier,
		opts:        newOptions(opts),
	}
}

// Create validates and stores a comment on the given post. The post is not
// required to exist.
func (s *CommentService) Create(ctx context.Context, postID string, form *models.CommentForm) (*models.Comment, error) {
	if errs := form.Validate(); len(errs) > 0 {
		return nil, &models.ValidationError{Fields: errs}
	}

	comment := form.Comment(postID)
	comment.Stamp(s.opts.now())
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	log.Printf("[COMMENT_CREATE] %s on post %s", comment.URL(), postID)
	return comment, nil
}

// Delete removes a comment. Deleting a comment that does not exist is not an error.
func (s *CommentService) Delete(ctx context.Context, token, id string) error {
	if err := authorize(s.verifier, "delete_comment", token); err != nil {
		return err
	}

	err := s.commentRepo.Delete(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		log.Printf("[COMMENT_DELETE] comment %s not found", id)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to delete comment %s: %w", id, err)
	}
	return nil
}
