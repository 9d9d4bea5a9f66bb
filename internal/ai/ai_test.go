package ai

import (
	"errors"
	"strings"
	"testing"
)

func TestClassifyProviderError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want ProviderErrorKind
	}{
		{"nil", nil, ProviderErrorOther},
		{"http 429 in message", errors.New("unexpected status 429"), ProviderErrorQuota},
		{"quota message", errors.New("insufficient_quota: billing hard limit"), ProviderErrorQuota},
		{"rate limit message", errors.New("rate limit exceeded, retry later"), ProviderErrorQuota},
		{"rate_limit message", errors.New("rate_limit_error"), ProviderErrorQuota},
		{"server error", errors.New("internal server error"), ProviderErrorOther},
		{"network error", errors.New("dial tcp: connection refused"), ProviderErrorOther},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClassifyProviderError(tc.err); got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}

func TestFallbackAnalysis_AlwaysNonEmpty(t *testing.T) {
	for _, kind := range []ProviderErrorKind{ProviderErrorQuota, ProviderErrorOther, ProviderErrorKind("unknown")} {
		text := FallbackAnalysis(kind)
		if text == "" {
			t.Fatalf("empty fallback for %q", kind)
		}
		if !strings.Contains(text, "1.") || !strings.Contains(text, "6.") {
			t.Fatalf("fallback for %q missing checklist: %q", kind, text)
		}
	}
	if FallbackAnalysis(ProviderErrorQuota) == FallbackAnalysis(ProviderErrorOther) {
		t.Fatalf("quota and generic templates should differ")
	}
}

func TestBuildCommentaryPrompt(t *testing.T) {
	prompt := BuildCommentaryPrompt("BTC scalp", "entered on the sweep", "anxious", "scalping")
	for _, want := range []string{"BTC scalp", "entered on the sweep", "anxious", "scalping"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q: %q", want, prompt)
		}
	}

	bare := BuildCommentaryPrompt("", "just the entry text", "", "")
	if strings.Contains(bare, "Title:") || strings.Contains(bare, "Mood:") {
		t.Fatalf("empty fields rendered: %q", bare)
	}
	if !strings.Contains(bare, "just the entry text") {
		t.Fatalf("description missing: %q", bare)
	}
}
