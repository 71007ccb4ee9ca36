package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/hitoshi/blogman/internal/model"
)

// PostgresBlogRepo はPostgreSQLを使用したブログリポジトリ。
type PostgresBlogRepo struct {
	db *sql.DB
}

// NewPostgresBlogRepo はPostgresBlogRepoを生成する。
func NewPostgresBlogRepo(db *sql.DB) *PostgresBlogRepo {
	return &PostgresBlogRepo{db: db}
}

// Create はブログを作成し、採番されたIDを返す。
func (r *PostgresBlogRepo) Create(ctx context.Context, blog *model.Blog) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO blogs (user_id, title, description, created_at, updated_at)
		 VALUES ($1, $2, $3, now(), now())
		 RETURNING id`,
		blog.UserID, blog.Title, blog.Description,
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("failed to insert blog: %w", err)
	}

	return id, nil
}

// FindByID は指定IDのブログを取得する。見つからない場合はnilを返す。
func (r *PostgresBlogRepo) FindByID(ctx context.Context, id int64) (*model.Blog, error) {
	blog := &model.Blog{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, title, description, created_at, updated_at
		 FROM blogs WHERE id = $1`,
		id,
	).Scan(&blog.ID, &blog.UserID, &blog.Title, &blog.Description, &blog.CreatedAt, &blog.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find blog by ID: %w", err)
	}

	return blog, nil
}

// ListAll は全ブログを作成日時の降順で取得する。
func (r *PostgresBlogRepo) ListAll(ctx context.Context) ([]*model.Blog, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, title, description, created_at, updated_at
		 FROM blogs ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list blogs: %w", err)
	}
	defer rows.Close()

	return scanBlogs(rows)
}

// ListByUserID は指定ユーザーが所有するブログを作成日時の降順で取得する。
func (r *PostgresBlogRepo) ListByUserID(ctx context.Context, userID int64) ([]*model.Blog, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, title, description, created_at, updated_at
		 FROM blogs WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list blogs by user: %w", err)
	}
	defer rows.Close()

	return scanBlogs(rows)
}

// Update は指定IDのブログを部分更新し、updated_atを現在時刻に更新する。
func (r *PostgresBlogRepo) Update(ctx context.Context, id int64, update BlogUpdate) error {
	if update.IsEmpty() {
		return nil
	}

	var sets []string
	var params []interface{}

	if update.Title != nil {
		params = append(params, *update.Title)
		sets = append(sets, fmt.Sprintf("title = $%d", len(params)))
	}
	if update.Description != nil {
		params = append(params, *update.Description)
		sets = append(sets, fmt.Sprintf("description = $%d", len(params)))
	}
	sets = append(sets, "updated_at = now()")

	params = append(params, id)
	query := fmt.Sprintf(
		`UPDATE blogs SET %s WHERE id = $%d`,
		strings.Join(sets, ", "), len(params),
	)

	result, err := r.db.ExecContext(ctx, query, params...)
	if err != nil {
		return fmt.Errorf("failed to update blog: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("blog not found: %d", id)
	}

	return nil
}

// DeleteByID は指定IDのブログを削除する。
func (r *PostgresBlogRepo) DeleteByID(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM blogs WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete blog: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("blog not found: %d", id)
	}

	return nil
}

// scanBlogs はrowsをモデルのスライスに変換する。
func scanBlogs(rows *sql.Rows) ([]*model.Blog, error) {
	var blogs []*model.Blog
	for rows.Next() {
		blog := &model.Blog{}
		if err := rows.Scan(
			&blog.ID, &blog.UserID, &blog.Title, &blog.Description, &blog.CreatedAt, &blog.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan blog row: %w", err)
		}
		blogs = append(blogs, blog)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate blog rows: %w", err)
	}
	return blogs, nil
}

// compile-time interface check
var _ BlogRepository = (*PostgresBlogRepo)(nil)
