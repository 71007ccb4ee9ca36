package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hitoshi/blogman/internal/model"
)

// DefaultTokenTTL はセッショントークンの既定の有効期間。
const DefaultTokenTTL = time.Hour

// ErrInvalidToken はトークンの署名不一致・形式不正・期限切れを表す。
// 失敗理由の内訳は外部に公開しない。
var ErrInvalidToken = errors.New("invalid token")

// Claims はセッショントークンに埋め込む認証済みユーザー情報。
// トークンの内部にのみ存在し、サーバー側では永続化しない（ステートレスセッション）。
type Claims struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenService はHMAC-SHA256署名付きセッショントークンの発行と検証を行う。
// 署名シークレットはプロセス起動時に1回読み込まれ、以後イミュータブル。
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time // テストで時刻を固定するためのフック
}

// NewTokenService はTokenServiceを生成する。
// ttlが0以下の場合はDefaultTokenTTLを使用する。
func NewTokenService(secret []byte, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{
		secret: secret,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue は認証済みユーザー情報を署名し、有効期限付きトークン文字列を返す。
// 有効期限は発行時刻 + TTLの絶対時刻として埋め込む。
func (s *TokenService) Issue(identity *model.Identity) (string, error) {
	now := s.now()
	claims := Claims{
		UserID:   identity.ID,
		Username: identity.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Verify はトークン文字列を検証し、認証済みユーザー情報を返す。
// 署名不一致・形式不正・期限切れのいずれの場合もErrInvalidTokenを返し、
// クレームは一切返さない。クロックスキューの補償は行わない。
func (s *TokenService) Verify(tokenString string) (*model.Identity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return s.now() }),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	return &model.Identity{
		ID:       claims.UserID,
		Username: claims.Username,
	}, nil
}
