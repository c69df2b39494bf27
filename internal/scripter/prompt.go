package scripter

import (
	_ "embed"
	"strings"
)

// SystemPrompt is the system-level instruction teaching the model the
// action language. Loaded from prompts/system.md at compile time.
//
//go:embed prompts/system.md
var SystemPrompt string

// UserPromptTemplate is the user-level prompt template. The instruction
// and optional pane capture are appended at runtime.
//
//go:embed prompts/user.md
var UserPromptTemplate string

// BuildUserPrompt assembles the user message for one scripting call.
func BuildUserPrompt(instruction, paneContent string) string {
	var b strings.Builder
	b.WriteString(UserPromptTemplate)
	b.WriteString("\n[Instruction]\n")
	b.WriteString(instruction)
	if paneContent != "" {
		b.WriteString("\n\n[Current pane content]\n")
		b.WriteString(paneContent)
	}
	return b.String()
}

// stripMarkdownFences removes a surrounding markdown code fence from the
// model output, if present. Models wrap EDN in ```edn fences no matter
// how firmly the prompt says not to.
func stripMarkdownFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	// Drop the opening fence line (``` or ```edn).
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[idx+1:]
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
