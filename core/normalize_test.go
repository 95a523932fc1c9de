package core

import (
	"reflect"
	"testing"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "lowercases and collapses whitespace",
			input: "  Qifa   Nabki ",
			want:  "qifa nabki",
		},
		{
			name:  "strips harakat",
			input: "قِفَا نَبْكِ",
			want:  "قفا نبك",
		},
		{
			name:  "removes tatweel",
			input: "قـفـا",
			want:  "قفا",
		},
		{
			name:  "folds hamza alef",
			input: "أحبك إلى آخر",
			want:  "احبك الي اخر",
		},
		{
			name:  "folds teh marbuta",
			input: "قصيدة",
			want:  "قصيده",
		},
		{
			name:  "folds alef maqsura",
			input: "ذكرى ليلى",
			want:  "ذكري ليلي",
		},
		{
			name:  "drops ellipsis and punctuation",
			input: "حبيب… ومنزل، بسقط اللوى!",
			want:  "حبيب ومنزل بسقط اللوي",
		},
		{
			name:  "strips latin accents",
			input: "Café",
			want:  "cafe",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
		{
			name:  "whitespace only",
			input: " \t\n ",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeText(tt.input)
			if got != tt.want {
				t.Errorf("NormalizeText(%q) = %q, want %q", tt.input, got, tt.want)
			}
			// Normalization must be idempotent.
			if again := NormalizeText(got); again != got {
				t.Errorf("NormalizeText not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "splits on whitespace",
			input: "قفا نبك من ذكري",
			want:  []string{"قفا", "نبك", "من", "ذكري"},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
