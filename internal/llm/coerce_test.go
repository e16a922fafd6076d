package llm

import "testing"

func TestFlattenParts(t *testing.T) {
	tests := []struct {
		name  string
		parts []ContentPart
		want  string
	}{
		{"empty", nil, ""},
		{"single text", []ContentPart{{Type: "text", Text: "hello"}}, "hello"},
		{"untyped counts as text", []ContentPart{{Text: "raw"}}, "raw"},
		{
			"concatenates in order",
			[]ContentPart{{Type: "text", Text: "a"}, {Type: "text", Text: "b"}, {Type: "text", Text: "c"}},
			"abc",
		},
		{
			"skips non-text",
			[]ContentPart{{Type: "text", Text: "keep"}, {Type: "tool_use", Text: "drop"}, {Type: "text", Text: " this"}},
			"keep this",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FlattenParts(tt.parts); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
