// Package blog はブログ管理のドメインロジックを提供する。
package blog

import (
	"context"
	"fmt"

	"github.com/hitoshi/blogman/internal/model"
	"github.com/hitoshi/blogman/internal/repository"
	"github.com/hitoshi/blogman/internal/security"
)

// Service はブログ管理のサービス層。
// 作成・取得・更新・削除のビジネスロジックと所有者チェックを提供する。
type Service struct {
	blogs     repository.BlogRepository
	sanitizer security.ContentSanitizerService
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(blogs repository.BlogRepository, sanitizer security.ContentSanitizerService) *Service {
	return &Service{
		blogs:     blogs,
		sanitizer: sanitizer,
	}
}

// Create は新しいブログを作成する。
// 所有者は認証済みユーザー自身に固定され、リクエストから指定することはできない。
// 本文は保存前にサニタイズされる。
func (s *Service) Create(ctx context.Context, identity *model.Identity, title, description string) (*model.Blog, error) {
	clean := s.sanitizer.Sanitize(description)

	id, err := s.blogs.Create(ctx, &model.Blog{
		UserID:      identity.ID,
		Title:       title,
		Description: clean,
	})
	if err != nil {
		return nil, fmt.Errorf("ブログの作成に失敗しました: %w", err)
	}

	// 採番されたIDとDB側のタイムスタンプを含む行を返す
	created, err := s.blogs.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("作成したブログの取得に失敗しました: %w", err)
	}
	return created, nil
}

// Get は指定IDのブログを返す。
func (s *Service) Get(ctx context.Context, blogID int64) (*model.Blog, error) {
	blog, err := s.blogs.FindByID(ctx, blogID)
	if err != nil {
		return nil, fmt.Errorf("ブログの取得に失敗しました: %w", err)
	}
	if blog == nil {
		return nil, model.NewBlogNotFoundError(blogID)
	}
	return blog, nil
}

// ListAll は全ユーザーのブログ一覧を返す。
func (s *Service) ListAll(ctx context.Context) ([]*model.Blog, error) {
	blogs, err := s.blogs.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("ブログ一覧の取得に失敗しました: %w", err)
	}
	return blogs, nil
}

// ListByUser は指定ユーザーのブログ一覧を返す。
func (s *Service) ListByUser(ctx context.Context, userID int64) ([]*model.Blog, error) {
	blogs, err := s.blogs.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("ユーザーのブログ一覧の取得に失敗しました: %w", err)
	}
	return blogs, nil
}

// Update は指定IDのブログを部分更新する。
// 所有者チェック: 認証済みユーザーがブログの所有者でない場合はFORBIDDENを返し、
// 一切の変更を行わない。存在チェックが所有者チェックより先に行われる。
func (s *Service) Update(ctx context.Context, identity *model.Identity, blogID int64, fields repository.BlogUpdate) (*model.Blog, error) {
	blog, err := s.blogs.FindByID(ctx, blogID)
	if err != nil {
		return nil, fmt.Errorf("ブログの取得に失敗しました: %w", err)
	}
	if blog == nil {
		return nil, model.NewBlogNotFoundError(blogID)
	}
	if blog.UserID != identity.ID {
		return nil, model.NewForbiddenError()
	}

	if fields.IsEmpty() {
		return blog, nil
	}

	// 本文の更新時もサニタイズを通す
	if fields.Description != nil {
		clean := s.sanitizer.Sanitize(*fields.Description)
		fields.Description = &clean
	}

	if err := s.blogs.Update(ctx, blogID, fields); err != nil {
		return nil, fmt.Errorf("ブログの更新に失敗しました: %w", err)
	}

	// 更新後の行を取得して返す
	updated, err := s.blogs.FindByID(ctx, blogID)
	if err != nil {
		return nil, fmt.Errorf("更新したブログの取得に失敗しました: %w", err)
	}
	return updated, nil
}

// Delete は指定IDのブログを削除する。
// Updateと同じ所有者チェックを適用する。
func (s *Service) Delete(ctx context.Context, identity *model.Identity, blogID int64) error {
	blog, err := s.blogs.FindByID(ctx, blogID)
	if err != nil {
		return fmt.Errorf("ブログの取得に失敗しました: %w", err)
	}
	if blog == nil {
		return model.NewBlogNotFoundError(blogID)
	}
	if blog.UserID != identity.ID {
		return model.NewForbiddenError()
	}

	if err := s.blogs.DeleteByID(ctx, blogID); err != nil {
		return fmt.Errorf("ブログの削除に失敗しました: %w", err)
	}
	return nil
}
