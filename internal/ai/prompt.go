package ai

import (
	"fmt"
	"strings"
)

// Turn is one conversation turn as persisted and as replayed to the text
// model. Role is "user" or "model".
type Turn struct {
	Role string
	Text string
}

const commentarySystemPrompt = `You are a trading psychology coach reviewing a trader's journal. ` +
	`Respond with direct, practical commentary on the trade and the trader's state of mind. ` +
	`Be concise, specific, and avoid generic encouragement.`

// BuildCommentaryPrompt is the fixed template used for the initial commentary
// on a new journal entry. The returned string is also what gets stored as the
// user turn of the entry's history.
func BuildCommentaryPrompt(title, description, emotion, activity string) string {
	var b strings.Builder
	b.WriteString("Here is my trading journal entry.\n")
	if strings.TrimSpace(title) != "" {
		fmt.Fprintf(&b, "Title: %s\n", strings.TrimSpace(title))
	}
	if strings.TrimSpace(emotion) != "" {
		fmt.Fprintf(&b, "Mood: %s\n", strings.TrimSpace(emotion))
	}
	if strings.TrimSpace(activity) != "" {
		fmt.Fprintf(&b, "Activity: %s\n", strings.TrimSpace(activity))
	}
	fmt.Fprintf(&b, "Entry: %s\n", strings.TrimSpace(description))
	b.WriteString("Give me your commentary on this trade and my trading psychology.")
	return b.String()
}

// visionAnalysisPrompt is the fixed six-point prompt sent with every
// screenshot analysis request.
const visionAnalysisPrompt = `Analyze this trading chart screenshot and answer the following six points:
1. Market structure: trend direction and any notable support/resistance levels visible.
2. Entry quality: how well the visible entry aligns with the structure.
3. Exit quality: whether the exit (if visible) was early, late, or reasonable.
4. Risk placement: where a sensible stop would sit relative to what is shown.
5. What the trader did well in this trade.
6. One concrete improvement for next time.
Answer each point briefly, numbered 1-6.`
