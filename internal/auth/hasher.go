package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher はパスワードのハッシュ化と検証のインターフェース。
// ハッシュ値にはソルトとコストファクタが埋め込まれるため、
// Verifyはハッシュ値のみで自己完結的に検証できる。
type PasswordHasher interface {
	// Hash は平文パスワードからソルト付きハッシュを生成する。
	// 呼び出しごとに新しいランダムソルトが使用されるため、
	// 同一の平文でも毎回異なるハッシュ値が返る。
	Hash(ctx context.Context, plaintext string) (string, error)

	// Verify は平文パスワードがハッシュ値と一致するかどうかを返す。
	// 比較は基盤プリミティブの定数時間比較に委ねる。
	Verify(ctx context.Context, plaintext, hash string) (bool, error)
}

// BcryptHasher はbcryptによるPasswordHasherの実装。
// ハッシュ計算は意図的に低速なCPUバウンド処理のため、
// セマフォで同時実行数を制限し、リクエスト処理全体の停滞を防ぐ。
type BcryptHasher struct {
	cost int
	sem  chan struct{}
}

// NewBcryptHasher はBcryptHasherを生成する。
// costはbcryptのコストファクタ、maxConcurrentは同時ハッシュ計算数の上限。
func NewBcryptHasher(cost, maxConcurrent int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &BcryptHasher{
		cost: cost,
		sem:  make(chan struct{}, maxConcurrent),
	}
}

// Hash は平文パスワードからbcryptハッシュを生成する。
// ソルトとコストファクタはbcryptエンコーディングに埋め込まれる。
// セマフォ待機中のみコンテキストのキャンセルを監視する。
// 計算開始後のキャンセルは検知せず、結果は呼び出し元で破棄される。
func (h *BcryptHasher) Hash(ctx context.Context, plaintext string) (string, error) {
	if err := h.acquire(ctx); err != nil {
		return "", err
	}
	defer h.release()

	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hash), nil
}

// Verify は平文パスワードがbcryptハッシュと一致するかどうかを返す。
// 不一致は(false, nil)、ハッシュ形式の異常はエラーとして返す。
func (h *BcryptHasher) Verify(ctx context.Context, plaintext, hash string) (bool, error) {
	if err := h.acquire(ctx); err != nil {
		return false, err
	}
	defer h.release()

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, fmt.Errorf("failed to verify password: %w", err)
}

// acquire はセマフォのスロットを取得する。
func (h *BcryptHasher) acquire(ctx context.Context) error {
	select {
	case h.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// release はセマフォのスロットを解放する。
func (h *BcryptHasher) release() {
	<-h.sem
}

// compile-time interface check
var _ PasswordHasher = (*BcryptHasher)(nil)
