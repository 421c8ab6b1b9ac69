package district

import "testing"

func TestCanon_CaseAndWhitespace(t *testing.T) {
	want := Canon("Mitte")
	for _, in := range []string{" mitte ", "MITTE", "Mitte\t"} {
		if got := Canon(in); got != want {
			t.Fatalf("Canon(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCanon_DiacriticsAndSeparators(t *testing.T) {
	a := Canon("Prenzlauer-Berg")
	b := Canon("Prenzlauer  Berg")
	if a != b {
		t.Fatalf("separator folding diverged: %q vs %q", a, b)
	}
	if Canon("Köpenick") != Canon("Kopenick") {
		t.Fatalf("diacritics should fold away")
	}
	// decomposed input: base letter followed by a combining acute
	if Canon("Mítte") != Canon("Mitte") {
		t.Fatalf("combining marks should fold away")
	}
	if Canon("Mítte") != Canon("Mitte") {
		t.Fatalf("precomposed diacritics should fold away")
	}
}

func TestCanon_Deterministic(t *testing.T) {
	in := "Charlottenburg-Wilmersdorf"
	first := Canon(in)
	for i := 0; i < 50; i++ {
		if got := Canon(in); got != first {
			t.Fatalf("Canon drifted: %q vs %q", got, first)
		}
	}
}

func TestCanon_Empty(t *testing.T) {
	if Canon("") != "" {
		t.Fatalf("empty input must stay empty")
	}
}
