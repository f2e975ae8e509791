package util

import "testing"

func TestRenderTemplate(t *testing.T) {
	got, err := RenderTemplate("Do you have any blockers, {{.Name}}?", map[string]any{"Name": "alice"})
	if err != nil {
		t.Fatal(err)
	}
	if got != "Do you have any blockers, alice?" {
		t.Errorf("unexpected render: %q", got)
	}
}

func TestRenderTemplate_FastPath(t *testing.T) {
	got, err := RenderTemplate("no markers here", nil)
	if err != nil {
		t.Fatal(err)
	}
	if got != "no markers here" {
		t.Errorf("fast path should return input unchanged, got %q", got)
	}
}

func TestRenderTemplate_Funcs(t *testing.T) {
	got, err := RenderTemplate("{{title .Name}}", map[string]any{"Name": "alice"})
	if err != nil {
		t.Fatal(err)
	}
	if got != "Alice" {
		t.Errorf("expected Alice, got %q", got)
	}
}
