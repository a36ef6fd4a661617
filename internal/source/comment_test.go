package source

import "testing"

func TestStripLineComments(t *testing.T) {
	s := NewStripper()
	tests := []struct {
		in, want string
	}{
		{`addiu t0, t0, 1 // increment`, `addiu t0, t0, 1`},
		{`addiu t0, t0, 1 # increment`, `addiu t0, t0, 1`},
		{`print "a // b"`, `print "a // b"`},
		{`print "a # b"`, `print "a # b"`},
		{`  nop  `, `nop`},
	}
	for _, tt := range tests {
		got := s.Strip(tt.in)
		if got != tt.want {
			t.Errorf("Strip(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStripBlockCommentAcrossLines(t *testing.T) {
	s := NewStripper()
	lines := []struct {
		in, want string
	}{
		{`nop /* start`, `nop`},
		{`this is all discarded`, ``},
		{`still discarded */ addiu t0, t0, 1`, `addiu t0, t0, 1`},
	}
	for _, l := range lines {
		got := s.Strip(l.in)
		if got != l.want {
			t.Errorf("Strip(%q) = %q, want %q", l.in, got, l.want)
		}
	}
}

func TestStripBlockCommentOpenAndCloseSameLine(t *testing.T) {
	s := NewStripper()
	got := s.Strip(`nop /* inline */ addiu t0, t0, 1`)
	want := `nop  addiu t0, t0, 1`
	if got != want {
		t.Errorf("Strip() = %q, want %q", got, want)
	}
}

func TestStripHashInsideQuotesIsLiteral(t *testing.T) {
	s := NewStripper()
	got := s.Strip(`print "#not a comment#"`)
	want := `print "#not a comment#"`
	if got != want {
		t.Errorf("Strip() = %q, want %q", got, want)
	}
}
