package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"inkpost/app/auth"
	"inkpost/app/models"
	"inkpost/app/repositories"

	"golang.org/x/sync/errgroup"
)

// PostService handles business logic for blog posts
type PostService struct {
	postRepo    repositories.PostRepository
	commentRepo repositories.CommentRepository
	verifier    auth.Verifier
	opts        options
}

// NewPostService creates a new PostService
func NewPostService(postRepo repositories.PostRepository, commentRepo repositories.CommentRepository, verifier auth.Verifier, opts ...Option) *PostService {
	return &PostService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		verifier:    verifier,
		opts:        newOptions(opts),
	}
}

// ListPublished returns every published post along with comments.
func (s *PostService) ListPublished(ctx context.Context) (*Listing, error) {
	return s.list(ctx, true)
}

// ListUnpublished returns every draft along with comments. It requires a valid token.
func (s *PostService) ListUnpublished(ctx context.Context, token string) (*Listing, error) {
	if err := authorize(s.verifier, "list_unpublished", token); err != nil {
		return nil, err
	}
	return s.list(ctx, false)
}

func (s *PostService) list(ctx context.Context, published bool) (*Listing, error) {
	var listing Listing

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		posts, err := s.postRepo.ListByPublished(gctx, published)
		if err != nil {
			return fmt.Errorf("failed to list posts: %w", err)
		}
		listing.Posts = posts
		return nil
	})
	g.Go(func() error {
		comments, err := s.commentRepo.List(gctx)
		if err != nil {
			return fmt.Errorf("failed to list comments: %w", err)
		}
		listing.Comments = comments
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if s.opts.scopeComments {
		listing.Comments = commentsOf(listing.Posts, listing.Comments)
	}
	return &listing, nil
}

func commentsOf(posts []*models.Post, comments []*models.Comment) []*models.Comment {
	ids := make(map[string]struct{}, len(posts))
	for _, post := range posts {
		ids[post.ID] = struct{}{}
	}
	scoped := make([]*models.Comment, 0, len(comments))
	for _, comment := range comments {
		if _, ok := ids[comment.Post]; ok {
			scoped = append(scoped, comment)
		}
	}
	return scoped
}

// Detail retrieves a post by ID with its comments. It returns
// repositories.ErrNotFound when the post does not exist.
func (s *PostService) Detail(ctx context.Context, id string) (*Detail, error) {
	var detail Detail

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		post, err := s.postRepo.GetByID(gctx, id)
		if err != nil {
			return err
		}
		detail.Post = post
		return nil
	})
	g.Go(func() error {
		comments, err := s.commentRepo.ListByPost(gctx, id)
		if err != nil {
			return fmt.Errorf("failed to get comments: %w", err)
		}
		detail.Comments = comments
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &detail, nil
}

// Create validates and stores a new post. On validation failure it returns a
// *models.ValidationError carrying the unsaved post.
func (s *PostService) Create(ctx context.Context, token string, form *models.PostForm) (*models.Post, error) {
	if err := authorize(s.verifier, "create_post", token); err != nil {
		return nil, err
	}

	errs := form.Validate()
	post := form.Post()
	post.Stamp(s.opts.now())
	if len(errs) > 0 {
		return nil, &models.ValidationError{Fields: errs, Post: post}
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return post, nil
}

// Update replaces the content of the post with the given ID. Updating a post
// that does not exist writes nothing and is not an error.
func (s *PostService) Update(ctx context.Context, token, id string, form *models.PostForm) (*models.Post, error) {
	if err := authorize(s.verifier, "update_post", token); err != nil {
		return nil, err
	}

	errs := form.Validate()
	post := form.Post()
	post.ID = id
	post.StampUpdated(s.opts.now())
	if len(errs) > 0 {
		return nil, &models.ValidationError{Fields: errs, Post: post}
	}

	err := s.postRepo.Update(ctx, post)
	if errors.Is(err, repositories.ErrNotFound) {
		log.Printf("[POST_UPDATE] post %s not found, nothing written", id)
		return post, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update post %s: %w", id, err)
	}
	return post, nil
}

// Delete removes a post and every comment that references it. Deleting a
// post that does not exist still removes its comments and is not an error.
func (s *PostService) Delete(ctx context.Context, token, id string) error {
	if err := authorize(s.verifier, "delete_post", token); err != nil {
		return err
	}

	err := s.postRepo.Delete(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		log.Printf("[POST_DELETE] post %s not found", id)
	} else if err != nil {
		return fmt.Errorf("failed to delete post %s: %w", id, err)
	}

	n, err := s.commentRepo.DeleteByPost(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete comments of post %s: %w", id, err)
	}
	if n > 0 {
		log.Printf("[POST_DELETE] removed %d comments of post %s", n, id)
	}
	return nil
}
