package register

import "testing"

func TestLookupGPRSpellings(t *testing.T) {
	tests := []struct {
		name string
		want byte
	}{
		{"t0", 8}, {"$t0", 8}, {"8", 8},
		{"ZERO", 0}, {"$ra", 31}, {"31", 31},
		{"gp", 28}, {"SP", 29},
	}
	for _, tt := range tests {
		got, ok := Lookup(tt.name)
		if !ok {
			t.Errorf("Lookup(%q) missing", tt.name)
			continue
		}
		if got != tt.want {
			t.Errorf("Lookup(%q) = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestLookupFPRSpellings(t *testing.T) {
	for _, name := range []string{"f0", "$f0", "F31", "$F31"} {
		if _, ok := Lookup(name); !ok {
			t.Errorf("Lookup(%q) missing", name)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, ok := Lookup("notareg"); ok {
		t.Error("expected miss for unknown spelling")
	}
}

func TestIsFPR(t *testing.T) {
	tests := []struct {
		op     string
		wantN  byte
		wantOK bool
	}{
		{"f0", 0, true},
		{"$f31", 31, true},
		{"f32", 0, false},
		{"t0", 0, false},
		{"$f", 0, false},
	}
	for _, tt := range tests {
		n, ok := IsFPR(tt.op)
		if ok != tt.wantOK {
			t.Errorf("IsFPR(%q) ok = %v, want %v", tt.op, ok, tt.wantOK)
			continue
		}
		if ok && n != tt.wantN {
			t.Errorf("IsFPR(%q) = %d, want %d", tt.op, n, tt.wantN)
		}
	}
}
