package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"inkpost/app/models"
	"inkpost/app/repositories"
)

// PostRepository implements repositories.PostRepository on database/sql.
type PostRepository struct {
	db      *sql.DB
	dialect Dialect
}

func NewPostRepository(db *sql.DB, dialect Dialect) *PostRepository {
	return &PostRepository{db: db, dialect: dialect}
}

func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	if err := post.Validate(); err != nil {
		return fmt.Errorf("invalid post: %w", err)
	}
	id, err := repositories.NewID()
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, r.dialect.rebind(`
INSERT INTO posts (id, name, title, text, date, published)
VALUES (?, ?, ?, ?, ?, ?)
`), id, post.Name, post.Title, post.Text, post.Date, post.Published)
	if err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}
	post.ID = id
	return nil
}

func (r *PostRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	row := r.db.QueryRowContext(ctx, r.dialect.rebind(`
SELECT id, name, title, text, date, published
FROM posts
WHERE id = ?
`), id)
	return scanPost(row)
}

func (r *PostRepository) ListByPublished(ctx context.Context, published bool) ([]*models.Post, error) {
	rows, err := r.db.QueryContext(ctx, r.dialect.rebind(`
SELECT id, name, title, text, date, published
FROM posts
WHERE published = ?
ORDER BY id
`), published)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := make([]*models.Post, 0)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

func (r *PostRepository) Update(ctx context.Context, post *models.Post) error {
	if err := post.Validate(); err != nil {
		return fmt.Errorf("invalid post: %w", err)
	}

	res, err := r.db.ExecContext(ctx, r.dialect.rebind(`
UPDATE posts
SET name = ?, title = ?, text = ?, date = ?, published = ?
WHERE id = ?
`), post.Name, post.Title, post.Text, post.Date, post.Published, post.ID)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	return requireAffected(res)
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, r.dialect.rebind(`DELETE FROM posts WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	return requireAffected(res)
}

func scanPost(scanner rowScanner) (*models.Post, error) {
	var p models.Post
	if err := scanner.Scan(&p.ID, &p.Name, &p.Title, &p.Text, &p.Date, &p.Published); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repositories.ErrNotFound
	}
	return nil
}
