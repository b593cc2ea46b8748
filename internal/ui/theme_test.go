package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestSetTheme(t *testing.T) {
	t.Cleanup(func() { _ = SetTheme("classic") })

	for _, name := range Themes {
		if err := SetTheme(name); err != nil {
			t.Fatalf("SetTheme(%q): %v", name, err)
		}
		if got := Current().Name; got != name {
			t.Fatalf("expected theme %q, got %q", name, got)
		}
	}

	if err := SetTheme("NEON"); err != nil || Current().Name != "neon" {
		t.Fatalf("theme names should be case-insensitive: %v", err)
	}
	if err := SetTheme("vaporwave"); err == nil {
		t.Fatal("expected error for unknown theme")
	}
	if Current().Name != "neon" {
		t.Fatalf("unknown theme must not change the current one, got %q", Current().Name)
	}
}

func TestPanelContainsContent(t *testing.T) {
	t.Cleanup(func() { _ = SetTheme("classic") })
	_ = SetTheme("mono")

	out := PanelLines([]string{"first", "second"})
	if !strings.Contains(out, "first") || !strings.Contains(out, "second") {
		t.Fatalf("panel lost content: %q", out)
	}
	if !strings.Contains(out, "┌") {
		t.Fatalf("expected normal border for mono theme: %q", out)
	}
}

func TestFprintln(t *testing.T) {
	t.Cleanup(func() { _ = SetTheme("classic") })
	_ = SetTheme("mono")

	var buf bytes.Buffer
	Fprintln(&buf, true, "saved")
	Fprintln(&buf, false, "boom")
	out := buf.String()
	if !strings.Contains(out, "ok saved") {
		t.Errorf("missing success line: %q", out)
	}
	if !strings.Contains(out, "error: boom") {
		t.Errorf("missing failure line: %q", out)
	}
}
