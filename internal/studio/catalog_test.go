package studio

import "testing"

func TestCatalogHasFiveStyles(t *testing.T) {
	styles := Styles()
	if len(styles) != 5 {
		t.Fatalf("catalog size = %d, want 5", len(styles))
	}
	for _, s := range styles {
		if s.ID == "" || s.Name == "" || s.Prompt == "" || s.PreviewURL == "" {
			t.Fatalf("incomplete catalog entry: %+v", s)
		}
	}
}

func TestStyleByID(t *testing.T) {
	s, ok := StyleByID("japandi")
	if !ok || s.Name != "Japandi" {
		t.Fatalf("lookup = %+v %v", s, ok)
	}
	if _, ok := StyleByID("rococo"); ok {
		t.Fatalf("unexpected hit for unknown id")
	}
}

func TestStylesReturnsCopy(t *testing.T) {
	a := Styles()
	a[0].Name = "mutated"
	b := Styles()
	if b[0].Name == "mutated" {
		t.Fatalf("catalog must not be mutable through Styles()")
	}
}
