package catalog

import "testing"

func TestNormalizeColor(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"Light Bluish Grey": "light bluish gray",
		"  Dark Grey ":      "dark gray",
		"GRAY":              "gray",
		"Red":               "red",
		"":                  "any",
		"  ":                "any",
		"Trans  Clear":      "trans clear",
	}
	for input, want := range cases {
		if got := NormalizeColor(input); got != want {
			t.Fatalf("NormalizeColor(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestImageKeyPart(t *testing.T) {
	t.Parallel()

	if got := ImageKeyPart(" 3001 ", "Light Bluish Grey"); got != "3001::light bluish gray" {
		t.Fatalf("unexpected key %q", got)
	}
	if got := ImageKeyPart("3001", ""); got != "3001::any" {
		t.Fatalf("unexpected key %q", got)
	}
}
