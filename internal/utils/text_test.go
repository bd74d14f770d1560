package utils

import "testing"

func TestCleanText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Collapses whitespace",
			input:    "  東京都  渋谷区 \n 神南 ",
			expected: "東京都 渋谷区 神南",
		},
		{
			name:     "Ideographic space",
			input:    "売買価格　3000万円",
			expected: "売買価格 3000万円",
		},
		{
			name:     "Empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "Already clean",
			input:    "Used Detached House",
			expected: "Used Detached House",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CleanText(tt.input)
			if result != tt.expected {
				t.Errorf("CleanText(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestFoldWidth(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Full-width digits",
			input:    "３，０００",
			expected: "3,000",
		},
		{
			name:     "Mixed",
			input:    "１２３万円",
			expected: "123万円",
		},
		{
			name:     "ASCII untouched",
			input:    "30,000,000 yen",
			expected: "30,000,000 yen",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FoldWidth(tt.input)
			if result != tt.expected {
				t.Errorf("FoldWidth(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestContainsJapanese(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"東京都", true},
		{"とうきょう", true},
		{"トウキョウ", true},
		{"Tokyo", false},
		{"", false},
		{"3LDK", false},
		{"徒歩10分", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ContainsJapanese(tt.input); got != tt.expected {
				t.Errorf("ContainsJapanese(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}
