package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripMarkdownCodeBlocks(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", `{"ipa": "kæt"}`, `{"ipa": "kæt"}`},
		{"fenced", "```json\n{\"ipa\": \"kæt\"}\n```", `{"ipa": "kæt"}`},
		{"fenced without language", "```\n{}\n```", `{}`},
		{"surrounding whitespace", "  hi \n", "hi"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripMarkdownCodeBlocks(tt.input))
		})
	}
}

func TestExtractJSONObject(t *testing.T) {
	assert.Equal(t, `{"ipa": "kæt"}`, ExtractJSONObject(`Sure! {"ipa": "kæt"} Hope that helps.`))
	assert.Equal(t, `{"a": {"b": 1}}`, ExtractJSONObject("```json\n{\"a\": {\"b\": 1}}\n```"))
	assert.Equal(t, "no json here", ExtractJSONObject("no json here"))
}
