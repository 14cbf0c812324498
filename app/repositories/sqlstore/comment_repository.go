package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"inkpost/app/models"
	"inkpost/app/repositories"
)

// CommentRepository implements repositories.CommentRepository on database/sql.
type CommentRepository struct {
	db      *sql.DB
	dialect Dialect
}

func NewCommentRepository(db *sql.DB, dialect Dialect) *CommentRepository {
	return &CommentRepository{db: db, dialect: dialect}
}

func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := comment.Validate(); err != nil {
		return fmt.Errorf("invalid comment: %w", err)
	}
	id, err := repositories.NewID()
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, r.dialect.rebind(`
INSERT INTO comments (id, name, text, date, post_id)
VALUES (?, ?, ?, ?, ?)
`), id, comment.Name, comment.Text, comment.Date, comment.Post)
	if err != nil {
		return fmt.Errorf("failed to insert comment: %w", err)
	}
	comment.ID = id
	return nil
}

func (r *CommentRepository) List(ctx context.Context) ([]*models.Comment, error) {
	return r.query(ctx, `
SELECT id, name, text, date, post_id
FROM comments
ORDER BY id
`)
}

func (r *CommentRepository) ListByPost(ctx context.Context, postID string) ([]*models.Comment, error) {
	return r.query(ctx, `
SELECT id, name, text, date, post_id
FROM comments
WHERE post_id = ?
ORDER BY id
`, postID)
}

func (r *CommentRepository) query(ctx context.Context, query string, args ...any) ([]*models.Comment, error) {
	rows, err := r.db.QueryContext(ctx, r.dialect.rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := make([]*models.Comment, 0)
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.Name, &c.Text, &c.Date, &c.Post); err != nil {
			return nil, err
		}
		comments = append(comments, &c)
	}
	return comments, rows.Err()
}

func (r *CommentRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, r.dialect.rebind(`DELETE FROM comments WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return requireAffected(res)
}

func (r *CommentRepository) DeleteByPost(ctx context.Context, postID string) (int, error) {
	res, err := r.db.ExecContext(ctx, r.dialect.rebind(`DELETE FROM comments WHERE post_id = ?`), postID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete comments of post %s: %w", postID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

var _ repositories.CommentRepository = (*CommentRepository)(nil)
var _ repositories.PostRepository = (*PostRepository)(nil)
