// Package user はユーザー管理のドメインロジックを提供する。
package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hitoshi/blogman/internal/auth"
	"github.com/hitoshi/blogman/internal/model"
	"github.com/hitoshi/blogman/internal/repository"
)

// Service はユーザー管理のサービス層。
// プロフィール取得・更新・退会のビジネスロジックを提供する。
// 全操作は本人に限定され、他ユーザーへのアクセスはFORBIDDENになる。
type Service struct {
	users  repository.UserRepository
	policy *auth.PasswordPolicy
	hasher auth.PasswordHasher
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(users repository.UserRepository, policy *auth.PasswordPolicy, hasher auth.PasswordHasher) *Service {
	return &Service{
		users:  users,
		policy: policy,
		hasher: hasher,
	}
}

// Get は指定IDのユーザーを返す。本人以外のプロフィールは取得できない。
// 返り値のUserにはパスワードハッシュが含まれるため、
// ハンドラー層でレスポンスDTOに変換してから返すこと。
func (s *Service) Get(ctx context.Context, identity *model.Identity, userID int64) (*model.User, error) {
	if identity.ID != userID {
		return nil, model.NewForbiddenError()
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("ユーザーの取得に失敗しました: %w", err)
	}
	if user == nil {
		return nil, model.NewUserNotFoundError(userID)
	}
	return user, nil
}

// Update は指定IDのユーザーを部分更新する。本人のみ実行可能。
// ユーザー名の変更が既存ユーザーと重複する場合はUSERNAME_TAKENを返す。
// パスワードの変更は強度ポリシーを再適用し、ハッシュ化してから保存する。
func (s *Service) Update(ctx context.Context, identity *model.Identity, userID int64, username, password *string) (*model.User, error) {
	if identity.ID != userID {
		return nil, model.NewForbiddenError()
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("ユーザーの取得に失敗しました: %w", err)
	}
	if user == nil {
		return nil, model.NewUserNotFoundError(userID)
	}

	update := repository.UserUpdate{Username: username}

	if password != nil {
		if !s.policy.IsStrong(*password) {
			return nil, model.NewWeakPasswordError()
		}
		hash, err := s.hasher.Hash(ctx, *password)
		if err != nil {
			return nil, fmt.Errorf("パスワードのハッシュ化に失敗しました: %w", err)
		}
		update.Password = &hash
	}

	if update.IsEmpty() {
		return user, nil
	}

	if err := s.users.Update(ctx, userID, update); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, model.NewUsernameTakenError()
		}
		return nil, fmt.Errorf("ユーザーの更新に失敗しました: %w", err)
	}

	updated, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("更新したユーザーの取得に失敗しました: %w", err)
	}
	return updated, nil
}

// Delete は指定IDのユーザーを削除する。本人のみ実行可能。
// 所有するブログはDBの外部キー制約によりCASCADE削除される。
func (s *Service) Delete(ctx context.Context, identity *model.Identity, userID int64) error {
	if identity.ID != userID {
		return model.NewForbiddenError()
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("ユーザーの取得に失敗しました: %w", err)
	}
	if user == nil {
		return model.NewUserNotFoundError(userID)
	}

	if err := s.users.DeleteByID(ctx, userID); err != nil {
		return fmt.Errorf("ユーザーの削除に失敗しました: %w", err)
	}

	slog.Info("ユーザーを削除しました", slog.Int64("user_id", userID))
	return nil
}
