package ai

// Static analysis templates substituted when the vision provider fails. Keyed
// by the coarse error classification; both are terminal results and are never
// retried automatically.
const fallbackAnalysisQuota = `Automated chart analysis is temporarily unavailable (provider quota reached).
Here is a generic checklist to review your screenshot against:
1. Market structure: identify the prevailing trend and the nearest support/resistance.
2. Entry quality: did you enter with the structure or against it?
3. Exit quality: did you follow your plan, or exit on emotion?
4. Risk placement: was your stop beyond a structural level, not an arbitrary distance?
5. Note one thing you executed well.
6. Note one thing to do differently next time.`

const fallbackAnalysisGeneric = `Automated chart analysis could not be completed for this screenshot.
Use this checklist for a manual review:
1. Market structure: trend direction, key support/resistance.
2. Entry quality: alignment of the entry with the structure.
3. Exit quality: early, late, or as planned?
4. Risk placement: stop location relative to structure.
5. One thing done well.
6. One concrete improvement.`

// FallbackAnalysis returns the static template for a classified provider
// failure. Always non-empty.
func FallbackAnalysis(kind ProviderErrorKind) string {
	if kind == ProviderErrorQuota {
		return fallbackAnalysisQuota
	}
	return fallbackAnalysisGeneric
}
