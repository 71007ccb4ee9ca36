package auth

import "testing"

// TestPasswordPolicy_IsStrong はパスワード強度要件の判定を検証する。
func TestPasswordPolicy_IsStrong(t *testing.T) {
	policy := NewPasswordPolicy()

	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"大文字・小文字・数字を含む5文字以上", "Abcd1", true},
		{"大文字・小文字・記号を含む5文字以上", "Abcd!", true},
		{"代表的な有効パスワード", "Abcd1!", true},
		{"長い有効パスワード", "CorrectHorse1Battery", true},
		{"4文字以下", "Ab1!", false},
		{"空文字列", "", false},
		{"大文字なし", "abcd1", false},
		{"小文字なし", "ABCD1", false},
		{"数字・記号なし", "Abcde", false},
		{"数字のみ", "12345", false},
		{"記号で4.の条件を満たす", "Abcde#", true},
		{"空白も記号として扱う", "Abcd e", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := policy.IsStrong(tt.password); got != tt.want {
				t.Errorf("IsStrong(%q) = %v, want %v", tt.password, got, tt.want)
			}
		})
	}
}
