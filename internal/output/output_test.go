package output

import "testing"

func TestPS2Line(t *testing.T) {
	b := NewBuilder(PS2, "-")
	b.Append(0x00100000, 0x24500010)
	if got, want := b.String(), "00100000 24500010"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPnachLineWithFormatChar(t *testing.T) {
	b := NewBuilder(PNACH, "2")
	b.Append(0x00100000, 0x00000000)
	if got, want := b.String(), "patch=1,EE,20100000,extended,00000000"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFormatCharIgnoredWhenDash(t *testing.T) {
	b := NewBuilder(PS2, "-")
	b.Append(0x00100000, 0)
	if got, want := b.String(), "00100000 00000000"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFormatCharIgnoredWhenNotSingleChar(t *testing.T) {
	b := NewBuilder(PS2, "ab")
	b.Append(0x00100000, 0)
	if got, want := b.String(), "00100000 00000000"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestMultipleLinesJoinedByNewline(t *testing.T) {
	b := NewBuilder(PS2, "-")
	b.Append(0x00100000, 0)
	b.Append(0x00100004, 1)
	want := "00100000 00000000\n00100004 00000001"
	if got := b.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if b.Len() != 2 {
		t.Errorf("Len() = %d, want 2", b.Len())
	}
}
