package match

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  Via  Roma,  1  ", "VIA ROMA, 1"},
		{"via roma 1", "VIA ROMA 1"},
		{"", ""},
		{"   ", ""},
		{"\tFORMA\nCUCINE ", "FORMA CUCINE"},
	}
	for _, c := range cases {
		if got := Normalize(c.in); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFuzzyEqual(t *testing.T) {
	if !FuzzyEqual(" Via Roma 1 ", "VIA ROMA 1", 0.9) {
		t.Errorf("normalized-equal strings should match at any threshold")
	}
	if !FuzzyEqual("VIA ROMA 10", "VIA ROMA 12", 0.9) {
		t.Errorf("strings differing in one trailing char should pass 0.9")
	}
	if FuzzyEqual("VIA ROMA", "CORSO ITALIA", 0.9) {
		t.Errorf("unrelated strings should not match")
	}
	if FuzzyEqual("", "VIA ROMA", 0.1) {
		t.Errorf("empty string never fuzzy-matches a non-empty one")
	}
}
