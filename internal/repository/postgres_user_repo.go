package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/hitoshi/blogman/internal/model"
)

// uniqueViolationCode はPostgreSQLのユニーク制約違反のエラーコード。
const uniqueViolationCode = "23505"

// PostgresUserRepo はPostgreSQLを使用したユーザーリポジトリ。
type PostgresUserRepo struct {
	db *sql.DB
}

// NewPostgresUserRepo はPostgresUserRepoを生成する。
func NewPostgresUserRepo(db *sql.DB) *PostgresUserRepo {
	return &PostgresUserRepo{db: db}
}

// Create はユーザーを作成し、採番されたIDを返す。
// ユニーク制約違反（ユーザー名重複）の場合はErrDuplicateKeyを返す。
// 生のSQLエラーは呼び出し元に渡さない。
func (r *PostgresUserRepo) Create(ctx context.Context, username, passwordHash string) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO users (username, password, created_at, updated_at)
		 VALUES ($1, $2, now(), now())
		 RETURNING id`,
		username, passwordHash,
	).Scan(&id)

	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateKey
		}
		return 0, fmt.Errorf("failed to insert user: %w", err)
	}

	return id, nil
}

// FindByUsername は指定ユーザー名のユーザーを取得する。見つからない場合はnilを返す。
func (r *PostgresUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.findByAttribute(ctx, "username", username)
}

// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
func (r *PostgresUserRepo) FindByID(ctx context.Context, id int64) (*model.User, error) {
	return r.findByAttribute(ctx, "id", id)
}

// findByAttribute は指定カラムの値でユーザーを検索する。
// カラム名は呼び出し元が固定文字列で渡すため、SQLに直接埋め込んでも安全。
func (r *PostgresUserRepo) findByAttribute(ctx context.Context, column string, value interface{}) (*model.User, error) {
	user := &model.User{}
	query := fmt.Sprintf(
		`SELECT id, username, password, created_at, updated_at FROM users WHERE %s = $1`,
		column,
	)
	err := r.db.QueryRowContext(ctx, query, value).Scan(
		&user.ID, &user.Username, &user.Password, &user.CreatedAt, &user.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by %s: %w", column, err)
	}

	return user, nil
}

// Update は指定IDのユーザーを部分更新する。
// 更新対象フィールドはプレースホルダで埋め込み、updated_atを現在時刻に更新する。
func (r *PostgresUserRepo) Update(ctx context.Context, id int64, update UserUpdate) error {
	if update.IsEmpty() {
		return nil
	}

	var sets []string
	var params []interface{}

	if update.Username != nil {
		params = append(params, *update.Username)
		sets = append(sets, fmt.Sprintf("username = $%d", len(params)))
	}
	if update.Password != nil {
		params = append(params, *update.Password)
		sets = append(sets, fmt.Sprintf("password = $%d", len(params)))
	}
	sets = append(sets, "updated_at = now()")

	params = append(params, id)
	query := fmt.Sprintf(
		`UPDATE users SET %s WHERE id = $%d`,
		strings.Join(sets, ", "), len(params),
	)

	result, err := r.db.ExecContext(ctx, query, params...)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("failed to update user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("user not found: %d", id)
	}

	return nil
}

// DeleteByID は指定IDのユーザーを削除する。
// 所有するブログはCASCADE削除される。
func (r *PostgresUserRepo) DeleteByID(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM users WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("user not found: %d", id)
	}

	return nil
}

// isUniqueViolation はlib/pqのエラーがユニーク制約違反かどうかを判定する。
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolationCode
	}
	return false
}

// compile-time interface check
var _ UserRepository = (*PostgresUserRepo)(nil)
