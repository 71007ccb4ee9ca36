package security

import (
	"strings"
	"testing"
)

// TestSanitize_RemovesScriptTags はscriptタグが除去されることを検証する。
func TestSanitize_RemovesScriptTags(t *testing.T) {
	s := NewContentSanitizer()

	input := `<p>hello</p><script>alert("xss")</script>`
	got := s.Sanitize(input)

	if strings.Contains(got, "<script") || strings.Contains(got, "alert") {
		t.Errorf("Sanitize(%q) = %q, script content should be removed", input, got)
	}
	if !strings.Contains(got, "<p>hello</p>") {
		t.Errorf("Sanitize(%q) = %q, allowed tags should survive", input, got)
	}
}

// TestSanitize_RemovesEventAttributes はon*イベント属性が除去されることを検証する。
func TestSanitize_RemovesEventAttributes(t *testing.T) {
	s := NewContentSanitizer()

	input := `<p onclick="steal()">text</p>`
	got := s.Sanitize(input)

	if strings.Contains(got, "onclick") {
		t.Errorf("Sanitize(%q) = %q, event attributes should be removed", input, got)
	}
}

// TestSanitize_RemovesIframeAndStyle はiframe・styleタグが除去されることを検証する。
func TestSanitize_RemovesIframeAndStyle(t *testing.T) {
	s := NewContentSanitizer()

	tests := []struct {
		name  string
		input string
		deny  string
	}{
		{"iframe", `<iframe src="https://evil.example.com"></iframe>`, "<iframe"},
		{"style", `<style>body{display:none}</style>`, "<style"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Sanitize(tt.input)
			if strings.Contains(got, tt.deny) {
				t.Errorf("Sanitize(%q) = %q, %s should be removed", tt.input, got, tt.deny)
			}
		})
	}
}

// TestSanitize_AllowsHTTPSImagesOnly は画像のsrcがhttpsのみ許可されることを検証する。
func TestSanitize_AllowsHTTPSImagesOnly(t *testing.T) {
	s := NewContentSanitizer()

	httpsImg := `<img src="https://example.com/a.png" alt="a">`
	if got := s.Sanitize(httpsImg); !strings.Contains(got, "https://example.com/a.png") {
		t.Errorf("Sanitize(%q) = %q, https image should survive", httpsImg, got)
	}

	jsImg := `<img src="javascript:alert(1)">`
	if got := s.Sanitize(jsImg); strings.Contains(got, "javascript") {
		t.Errorf("Sanitize(%q) = %q, javascript scheme should be removed", jsImg, got)
	}
}

// TestSanitize_AddsRelNoopenerToLinks はリンクにrel属性が付与されることを検証する。
func TestSanitize_AddsRelNoopenerToLinks(t *testing.T) {
	s := NewContentSanitizer()

	input := `<a href="https://example.com">link</a>`
	got := s.Sanitize(input)

	if !strings.Contains(got, `target="_blank"`) {
		t.Errorf("Sanitize(%q) = %q, target=_blank should be added", input, got)
	}
	if !strings.Contains(got, "noopener") || !strings.Contains(got, "noreferrer") {
		t.Errorf("Sanitize(%q) = %q, rel=noopener noreferrer should be added", input, got)
	}
}

// TestSanitize_EmptyInput は空文字列入力で空文字列が返ることを検証する。
func TestSanitize_EmptyInput(t *testing.T) {
	s := NewContentSanitizer()

	if got := s.Sanitize(""); got != "" {
		t.Errorf("Sanitize(\"\") = %q, want empty string", got)
	}
}

// TestSanitize_Idempotent は同一入力への二重適用が同一出力になることを検証する。
func TestSanitize_Idempotent(t *testing.T) {
	s := NewContentSanitizer()

	input := `<p>text <strong>bold</strong></p><script>x</script>`
	once := s.Sanitize(input)
	twice := s.Sanitize(once)

	if once != twice {
		t.Errorf("Sanitize is not idempotent: first = %q, second = %q", once, twice)
	}
}

// TestSanitize_PlainTextPassesThrough はプレーンテキストがそのまま通過することを検証する。
func TestSanitize_PlainTextPassesThrough(t *testing.T) {
	s := NewContentSanitizer()

	input := "今日の日記です。"
	if got := s.Sanitize(input); got != input {
		t.Errorf("Sanitize(%q) = %q, plain text should pass through", input, got)
	}
}
