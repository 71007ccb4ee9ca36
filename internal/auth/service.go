package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hitoshi/blogman/internal/model"
	"github.com/hitoshi/blogman/internal/repository"
)

// Service は認証に関するビジネスロジックを提供する。
// ストアの接続はコンストラクタで注入され、グローバル状態には依存しない。
type Service struct {
	users  repository.UserRepository
	policy *PasswordPolicy
	hasher PasswordHasher
	tokens *TokenService
}

// NewService はServiceを生成する。
func NewService(
	users repository.UserRepository,
	policy *PasswordPolicy,
	hasher PasswordHasher,
	tokens *TokenService,
) *Service {
	return &Service{
		users:  users,
		policy: policy,
		hasher: hasher,
		tokens: tokens,
	}
}

// SignUp は新規ユーザーを登録する。
// 処理順序が重要: ポリシー検証 → ハッシュ化 → 保存。
// 弱いパスワードはハッシュ化・保存を行う前に拒否する。
// ユーザー名の重複はストアの重複キーシグナルをUSERNAME_TAKENに変換し、
// SQL等のストレージ内部情報は取り除いて返す。
// 成功時は新規ユーザーのIDとユーザー名を返す。ハッシュ値は決して返さない。
func (s *Service) SignUp(ctx context.Context, username, password string) (*model.Identity, error) {
	if !s.policy.IsStrong(password) {
		return nil, model.NewWeakPasswordError()
	}

	hash, err := s.hasher.Hash(ctx, password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	id, err := s.users.Create(ctx, username, hash)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, model.NewUsernameTakenError()
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("user signed up",
		slog.Int64("user_id", id),
		slog.String("username", username),
	)

	return &model.Identity{ID: id, Username: username}, nil
}

// LogIn は既存ユーザーを認証し、セッショントークンを発行する。
// ユーザーが存在しない場合はINCORRECT_USERNAME、パスワード不一致は
// INCORRECT_PASSWORDを返す。両者はHTTP層では同じステータスクラスに
// マッピングされ、外部からは区別できない（ユーザー名列挙対策）。
func (s *Service) LogIn(ctx context.Context, username, password string) (*model.Identity, string, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, "", fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, "", model.NewIncorrectUsernameError()
	}

	match, err := s.hasher.Verify(ctx, password, user.Password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to verify password: %w", err)
	}
	if !match {
		return nil, "", model.NewIncorrectPasswordError()
	}

	identity := &model.Identity{ID: user.ID, Username: user.Username}

	token, err := s.tokens.Issue(identity)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	slog.Info("user logged in",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return identity, token, nil
}
