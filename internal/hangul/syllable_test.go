package hangul

import "testing"

func TestRomanize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"한", "han"},
		{"안녕", "annyeong"},
		{"빵", "ppang"},
		{"슽", "seut"},
		{"값", "gap"},
		{"헬로 월드", "helro woldeu"},
		{"abc", "abc"},
		{"", ""},
	}
	for _, tt := range tests {
		got := Romanize(tt.input)
		if got != tt.want {
			t.Errorf("Romanize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestIsWellFormed(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"한 글", true},
		{"ㅎ", false},
		{"\u1112\u1161", false},
		{"한a", false},
		{"한\t글", false},
	}
	for _, tt := range tests {
		if got := IsWellFormed(tt.input); got != tt.want {
			t.Errorf("IsWellFormed(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestDecompose(t *testing.T) {
	s, ok := Decompose('한')
	if !ok {
		t.Fatal("expected 한 to decompose")
	}
	if s.Initial != 18 || s.Medial != 0 || s.Final != 4 {
		t.Errorf("Decompose(한) = %+v", s)
	}

	if _, ok := Decompose('A'); ok {
		t.Error("expected Latin letter to be rejected")
	}
}
