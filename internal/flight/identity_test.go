package flight

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"CPT-ROBBEN", "cpt-robben"},
		{"  Cape Town  ", "cape-town"},
		{"ZS-ABC", "zs-abc"},
		{"V&A Waterfront!", "va-waterfront"},
		{"a   -  b", "a-b"},
		{"", ""},
	}
	for _, c := range cases {
		if got := Slugify(c.in); got != c.want {
			t.Errorf("Slugify(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestIDIsDeterministic(t *testing.T) {
	a := ID("2025-01-01", "CPT-ROBBEN", "ZS-ABC")
	b := ID("2025-01-01", "CPT-ROBBEN", "ZS-ABC")
	if a != b {
		t.Fatalf("same inputs produced different ids: %q vs %q", a, b)
	}
	if a != "2025-01-01_cpt-robben_zs-abc" {
		t.Fatalf("unexpected id: %q", a)
	}
}

func TestParseID(t *testing.T) {
	date, route, reg, ok := ParseID("2025-01-01_cpt-robben_zs-abc")
	if !ok {
		t.Fatal("expected ParseID to succeed")
	}
	if date != "2025-01-01" {
		t.Errorf("date = %q", date)
	}
	if route != "CPT - ROBBEN" {
		t.Errorf("route = %q", route)
	}
	if reg != "ZS-ABC" {
		t.Errorf("registration = %q", reg)
	}

	if _, _, _, ok := ParseID("not-a-flight-id"); ok {
		t.Error("expected ParseID to reject malformed id")
	}
}
