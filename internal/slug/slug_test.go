package slug

import "testing"

func TestMake(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Hello, World!", "hello-world"},
		{"  Multi   space--dash ", "multi-space-dash"},
		{"", ""},
		{"---", ""},
		{"!!!", ""},
		{"snake_case stays", "snake_case-stays"},
		{"a - ! - b", "a-b"},
		{"-leading and trailing-", "leading-and-trailing"},
		{"Go 1.21 Release", "go-121-release"},
		{"Tabs\tand\nnewlines", "tabs-and-newlines"},
		{"Café Crème", "café-crème"},
		{"Привет, мир", "привет-мир"},
		{"Ben &amp; Jerry", "ben-amp-jerry"},
		{"It&#x27;s here", "itx27s-here"},
		{"ümlaut space", "ümlaut-space"},
	}
	for _, tt := range tests {
		got := Make(tt.input)
		if got != tt.expected {
			t.Errorf("Make(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestMakeIdempotent(t *testing.T) {
	inputs := []string{
		"Hello, World!",
		"  Multi   space--dash ",
		"Café Crème",
		"a - ! - b",
		"__init__ -- explained",
		"2024: a year in review",
	}
	for _, in := range inputs {
		once := Make(in)
		if twice := Make(once); twice != once {
			t.Errorf("Make(Make(%q)) = %q, want %q", in, twice, once)
		}
	}
}
