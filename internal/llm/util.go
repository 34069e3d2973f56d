package llm

import "strings"

// fence is the markdown code fence delimiter models wrap JSON in.
const fence = "```"

// CleanJSONBlock strips a surrounding markdown code fence from a model reply.
// Gemini often answers with ```json ... ``` even when asked for bare JSON.
// Text that does not start with a fence is returned trimmed and otherwise unchanged.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, fence) {
		return text
	}

	text = strings.TrimPrefix(text, fence)

	// ```json{...}``` has no newline after the tag
	if len(text) >= 4 && strings.EqualFold(text[:4], "json") {
		text = text[4:]
	} else if idx := strings.Index(text, "\n"); idx >= 0 {
		// Skip a language tag such as ```javascript on its own line
		firstLine := strings.TrimSpace(text[:idx])
		if len(firstLine) < 20 && !strings.ContainsAny(firstLine, " {[") {
			text = text[idx+1:]
		}
	}

	if idx := strings.LastIndex(text, fence); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}
