package mock

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"inkpost/app/models"
	"inkpost/app/repositories"
)

// PostRepository is an in-memory PostRepository. Set Err to make every call fail.
type PostRepository struct {
	posts  map[string]*models.Post
	nextID int
	mutex  sync.RWMutex
	Err    error
}

// CommentRepository is an in-memory CommentRepository. Set Err to make every call fail.
type CommentRepository struct {
	comments map[string]*models.Comment
	nextID   int
	mutex    sync.RWMutex
	Err      error
}

func NewPostRepository() *PostRepository {
	return &PostRepository{
		posts:  make(map[string]*models.Post),
		nextID: 1,
	}
}

// Len returns the number of stored posts.
func (m *PostRepository) Len() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.posts)
}

func NewCommentRepository() *CommentRepository {
	return &CommentRepository{
		comments: make(map[string]*models.Comment),
		nextID:   1,
	}
}

// Len returns the number of stored comments.
func (m *CommentRepository) Len() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.comments)
}

// ids are zero padded so lexical order matches creation order
func formatID(prefix string, n int) string {
	return fmt.Sprintf("%s%06d", prefix, n)
}

// PostRepository implementation
func (m *PostRepository) Create(ctx context.Context, post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.Err != nil {
		return m.Err
	}
	if err := post.Validate(); err != nil {
		return err
	}
	post.ID = formatID("post-", m.nextID)
	m.nextID++
	stored := *post
	m.posts[post.ID] = &stored
	return nil
}

func (m *PostRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.Err != nil {
		return nil, m.Err
	}
	post, exists := m.posts[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	copied := *post
	return &copied, nil
}

func (m *PostRepository) ListByPublished(ctx context.Context, published bool) ([]*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.Err != nil {
		return nil, m.Err
	}
	posts := make([]*models.Post, 0)
	for _, post := range m.posts {
		if post.Published == published {
			copied := *post
			posts = append(posts, &copied)
		}
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].ID < posts[j].ID
	})
	return posts, nil
}

func (m *PostRepository) Update(ctx context.Context, post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.Err != nil {
		return m.Err
	}
	if _, exists := m.posts[post.ID]; !exists {
		return repositories.ErrNotFound
	}
	stored := *post
	m.posts[post.ID] = &stored
	return nil
}

func (m *PostRepository) Delete(ctx context.Context, id string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.Err != nil {
		return m.Err
	}
	if _, exists := m.posts[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.posts, id)
	return nil
}

// CommentRepository implementation
func (m *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.Err != nil {
		return m.Err
	}
	if err := comment.Validate(); err != nil {
		return err
	}
	comment.ID = formatID("comment-", m.nextID)
	m.nextID++
	stored := *comment
	m.comments[comment.ID] = &stored
	return nil
}

func (m *CommentRepository) List(ctx context.Context) ([]*models.Comment, error) {
	return m.filter(func(*models.Comment) bool { return true })
}

func (m *CommentRepository) ListByPost(ctx context.Context, postID string) ([]*models.Comment, error) {
	return m.filter(func(c *models.Comment) bool { return c.Post == postID })
}

func (m *CommentRepository) filter(keep func(*models.Comment) bool) ([]*models.Comment, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.Err != nil {
		return nil, m.Err
	}
	comments := make([]*models.Comment, 0)
	for _, comment := range m.comments {
		if keep(comment) {
			copied := *comment
			comments = append(comments, &copied)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].ID < comments[j].ID
	})
	return comments, nil
}

func (m *CommentRepository) Delete(ctx context.Context, id string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.Err != nil {
		return m.Err
	}
	if _, exists := m.comments[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.comments, id)
	return nil
}

func (m *CommentRepository) DeleteByPost(ctx context.Context, postID string) (int, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.Err != nil {
		return 0, m.Err
	}
	deleted := 0
	for id, comment := range m.comments {
		if comment.Post == postID {
			delete(m.comments, id)
			deleted++
		}
	}
	return deleted, nil
}
