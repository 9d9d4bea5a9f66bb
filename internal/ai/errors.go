package ai

import (
	"errors"
	"net/http"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	openai "github.com/openai/openai-go/v3"
)

// ProviderErrorKind is the coarse classification used to pick a fallback
// template: quota/rate-limit failures versus everything else.
type ProviderErrorKind string

const (
	ProviderErrorQuota ProviderErrorKind = "quota"
	ProviderErrorOther ProviderErrorKind = "other"
)

// ClassifyProviderError inspects SDK errors for an HTTP status first and
// falls back to message sniffing for transport-level failures.
func ClassifyProviderError(err error) ProviderErrorKind {
	if err == nil {
		return ProviderErrorOther
	}

	var oaErr *openai.Error
	if errors.As(err, &oaErr) {
		return classifyStatus(oaErr.StatusCode)
	}
	var anErr *anthropic.Error
	if errors.As(err, &anErr) {
		return classifyStatus(anErr.StatusCode)
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "429") ||
		strings.Contains(msg, "quota") ||
		strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "rate_limit") {
		return ProviderErrorQuota
	}
	return ProviderErrorOther
}

func classifyStatus(status int) ProviderErrorKind {
	if status == http.StatusTooManyRequests {
		return ProviderErrorQuota
	}
	return ProviderErrorOther
}
