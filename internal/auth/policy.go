// Package auth は認証・認可のコアロジックを提供する。
// パスワードポリシー、ハッシュ化、セッショントークンの発行・検証、
// およびサインアップ・ログインのオーケストレーションを含む。
package auth

import "unicode"

// PasswordPolicy はパスワード強度の検証を行う。
// 検証は純粋な関数であり、副作用を持たない。
// ハッシュ化・保存より前に必ず実行される。
type PasswordPolicy struct{}

// NewPasswordPolicy はPasswordPolicyを生成する。
func NewPasswordPolicy() *PasswordPolicy {
	return &PasswordPolicy{}
}

// IsStrong は平文パスワードが強度要件を満たすかどうかを返す。
// 要件:
//  1. 5文字以上
//  2. 大文字を1文字以上含む
//  3. 小文字を1文字以上含む
//  4. 数字または記号を1文字以上含む
func (p *PasswordPolicy) IsStrong(plaintext string) bool {
	if len(plaintext) < 5 {
		return false
	}

	var hasUpper, hasLower, hasDigitOrSymbol bool
	for _, r := range plaintext {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigitOrSymbol = true
		case !unicode.IsLetter(r):
			// 英数字以外（記号・空白等）も4.の条件を満たす
			hasDigitOrSymbol = true
		}
	}

	return hasUpper && hasLower && hasDigitOrSymbol
}
