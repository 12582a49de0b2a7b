package intent

import (
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantKind Kind
		wantText string
		wantView string
	}{
		{
			name:     "plain chat",
			input:    "  recommend something joyful ",
			wantKind: KindChat,
			wantText: "recommend something joyful",
		},
		{
			name:     "mood",
			input:    "/mood a quiet   rainy afternoon",
			wantKind: KindMood,
			wantText: "a quiet rainy afternoon",
		},
		{
			name:     "mood alias",
			input:    "/recommend joyful",
			wantKind: KindMood,
			wantText: "joyful",
		},
		{
			name:     "mood without phrase",
			input:    "/mood",
			wantKind: KindMood,
		},
		{
			name:     "poem keeps line breaks",
			input:    "/poem roses are red\nviolets are blue",
			wantKind: KindPoem,
			wantText: "roses are red\nviolets are blue",
		},
		{
			name:     "poem starting on next line",
			input:    "/poem\nI wandered lonely as a cloud",
			wantKind: KindPoem,
			wantText: "I wandered lonely as a cloud",
		},
		{
			name:     "navigate",
			input:    "/studio",
			wantKind: KindNavigate,
			wantView: ViewStudio,
		},
		{
			name:     "navigate is case insensitive",
			input:    "/SHOP",
			wantKind: KindNavigate,
			wantView: ViewShop,
		},
		{
			name:     "help",
			input:    "/?",
			wantKind: KindHelp,
		},
		{
			name:     "settings",
			input:    "/settings",
			wantKind: KindSettings,
		},
		{
			name:     "quit",
			input:    "/q",
			wantKind: KindQuit,
		},
		{
			name:     "unknown command",
			input:    "/dance now",
			wantKind: KindUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input)
			if got == nil {
				t.Fatal("Parse returned nil, expected intent")
			}
			if got.Kind != tt.wantKind {
				t.Errorf("Kind = %v, want %v", got.Kind, tt.wantKind)
			}
			if got.Text != tt.wantText {
				t.Errorf("Text = %q, want %q", got.Text, tt.wantText)
			}
			if got.View != tt.wantView {
				t.Errorf("View = %q, want %q", got.View, tt.wantView)
			}
		})
	}
}

func TestParseReturnsNilForBlank(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t"} {
		if got := Parse(input); got != nil {
			t.Errorf("Parse(%q) = %+v, want nil", input, got)
		}
	}
}

func TestParseDoesNotShareCommandTable(t *testing.T) {
	first := Parse("/mood joy")
	first.Text = "changed"

	second := Parse("/mood")
	if second.Text != "" {
		t.Errorf("Text = %q, want empty", second.Text)
	}
}
