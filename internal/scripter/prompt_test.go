package scripter

import (
	"strings"
	"testing"
)

func TestStripMarkdownFences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain payload unchanged",
			input: `"ls" :Enter`,
			want:  `"ls" :Enter`,
		},
		{
			name:  "fenced edn block",
			input: "```edn\n\"ls\" :Enter\n```",
			want:  `"ls" :Enter`,
		},
		{
			name:  "fenced without language",
			input: "```\n:C-c\n```",
			want:  ":C-c",
		},
		{
			name:  "fenced with surrounding whitespace",
			input: "  ```edn\n[Sleep 100]\n```  ",
			want:  "[Sleep 100]",
		},
		{
			name:  "multiline payload in fences",
			input: "```edn\n\"vim\" :Enter\n[Sleep 500]\n\":q!\" :Enter\n```",
			want:  "\"vim\" :Enter\n[Sleep 500]\n\":q!\" :Enter",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "bare opening fence",
			input: "```",
			want:  "",
		},
	}
	for _, tt := range tests {
		if got := stripMarkdownFences(tt.input); got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestPromptsEmbedded(t *testing.T) {
	if strings.TrimSpace(SystemPrompt) == "" {
		t.Error("system prompt is empty")
	}
	if strings.TrimSpace(UserPromptTemplate) == "" {
		t.Error("user prompt template is empty")
	}
	// The system prompt must teach the key action forms.
	for _, want := range []string{"Sleep", "Click", "ScrollUp", "Raw"} {
		if !strings.Contains(SystemPrompt, want) {
			t.Errorf("system prompt does not mention %q", want)
		}
	}
}

func TestBuildUserPrompt(t *testing.T) {
	got := BuildUserPrompt("quit vim", "~ \n~ \n:q")
	if !strings.Contains(got, "quit vim") {
		t.Error("instruction missing from prompt")
	}
	if !strings.Contains(got, ":q") {
		t.Error("pane content missing from prompt")
	}
}

func TestBuildUserPrompt_NoPaneContent(t *testing.T) {
	got := BuildUserPrompt("open a shell", "")
	if strings.Contains(got, "[Current pane content]") {
		t.Error("pane content section should be omitted when empty")
	}
}
