// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"
	"errors"

	"github.com/hitoshi/blogman/internal/model"
)

// ErrDuplicateKey はユニーク制約違反を表すストレージ層のシグナル。
// ユーザー名の一意性はアプリケーション側のロックではなく、
// このシグナルをサービス層がドメインエラーに変換することで保証する。
var ErrDuplicateKey = errors.New("duplicate key")

// UserUpdate はユーザーの部分更新で変更可能なフィールドを表す。
// nilのフィールドは更新対象外。
type UserUpdate struct {
	Username *string
	Password *string // bcryptハッシュ
}

// BlogUpdate はブログの部分更新で変更可能なフィールドを表す。
// nilのフィールドは更新対象外。
type BlogUpdate struct {
	Title       *string
	Description *string
}

// IsEmpty は更新対象フィールドが1つもないことを返す。
func (u UserUpdate) IsEmpty() bool {
	return u.Username == nil && u.Password == nil
}

// IsEmpty は更新対象フィールドが1つもないことを返す。
func (u BlogUpdate) IsEmpty() bool {
	return u.Title == nil && u.Description == nil
}

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// Create はユーザーを作成し、採番されたIDを返す。
	// ユニーク制約違反の場合はErrDuplicateKeyを返す。
	Create(ctx context.Context, username, passwordHash string) (int64, error)

	// FindByUsername は指定ユーザー名のユーザーを取得する。見つからない場合はnilを返す。
	FindByUsername(ctx context.Context, username string) (*model.User, error)

	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id int64) (*model.User, error)

	// Update は指定IDのユーザーを部分更新する。
	// ユーザー名の変更がユニーク制約に違反した場合はErrDuplicateKeyを返す。
	Update(ctx context.Context, id int64, update UserUpdate) error

	// DeleteByID は指定IDのユーザーを削除する。
	// 所有するブログはCASCADE削除される。
	DeleteByID(ctx context.Context, id int64) error
}

// BlogRepository はブログデータの永続化インターフェース。
type BlogRepository interface {
	// Create はブログを作成し、採番されたIDを返す。
	Create(ctx context.Context, blog *model.Blog) (int64, error)

	// FindByID は指定IDのブログを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id int64) (*model.Blog, error)

	// ListAll は全ブログを作成日時の降順で取得する。
	ListAll(ctx context.Context) ([]*model.Blog, error)

	// ListByUserID は指定ユーザーが所有するブログを作成日時の降順で取得する。
	ListByUserID(ctx context.Context, userID int64) ([]*model.Blog, error)

	// Update は指定IDのブログを部分更新し、updated_atを現在時刻に更新する。
	Update(ctx context.Context, id int64, update BlogUpdate) error

	// DeleteByID は指定IDのブログを削除する。
	DeleteByID(ctx context.Context, id int64) error
}
