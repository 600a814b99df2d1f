package config

import (
	"testing"
	"time"

	kit "langid/internal/platform/testkit"
)

func TestKeyComposition(t *testing.T) {
	c := New().Prefix("CORE_").Prefix("LANGID_")
	if got := c.key("MODEL_PATH"); got != "CORE_LANGID_MODEL_PATH" {
		t.Fatalf("key() = %q", got)
	}
}

func TestMustString(t *testing.T) {
	c := New().Prefix("CORE_LANGID_")
	t.Setenv("CORE_LANGID_MODEL_PATH", "  /srv/model.json.gz ")
	if got := c.MustString("MODEL_PATH"); got != "/srv/model.json.gz" {
		t.Fatalf("MustString = %q", got)
	}
	kit.MustPanic(t, func() { _ = c.MustString("MISSING") })
}

func TestMustNumbers(t *testing.T) {
	c := New().Prefix("N_")
	t.Setenv("N_WORKERS", " 8 ")
	t.Setenv("N_BAD", "eight")
	if got := c.MustInt("WORKERS"); got != 8 {
		t.Fatalf("MustInt = %d", got)
	}
	kit.MustPanic(t, func() { _ = c.MustInt("BAD") })
	kit.MustPanic(t, func() { _ = c.MustInt("MISSING") })

	t.Setenv("N_ON", "true")
	if !c.MustBool("ON") {
		t.Fatalf("MustBool expected true")
	}
	kit.MustPanic(t, func() { _ = c.MustBool("BAD") })

	t.Setenv("N_TIMEOUT", "250ms")
	if got := c.MustDuration("TIMEOUT"); got != 250*time.Millisecond {
		t.Fatalf("MustDuration = %v", got)
	}
	kit.MustPanic(t, func() { _ = c.MustDuration("BAD") })
}

func TestMustURLAndPort(t *testing.T) {
	c := New().Prefix("U_")
	t.Setenv("U_BASE", "https://example.com/api")
	t.Setenv("U_REL", "/relative")
	if u := c.MustURL("BASE"); u.Host != "example.com" {
		t.Fatalf("MustURL host = %q", u.Host)
	}
	kit.MustPanic(t, func() { _ = c.MustURL("REL") })

	t.Setenv("U_PORT", "4000")
	t.Setenv("U_OOB", "70000")
	if got := c.MustPort("PORT"); got != ":4000" {
		t.Fatalf("MustPort = %q", got)
	}
	kit.MustPanic(t, func() { _ = c.MustPort("OOB") })
}

func TestRequire(t *testing.T) {
	c := New().Prefix("REQ_")
	t.Setenv("REQ_A", "x")
	t.Setenv("REQ_WS", "   ")
	kit.MustNotPanic(t, func() { c.Require("A") })
	kit.MustPanic(t, func() { c.Require("A", "WS") })
}

func TestMayFallbacks(t *testing.T) {
	c := New().Prefix("M_")
	t.Setenv("M_NAME", " langid ")
	t.Setenv("M_RPS", "12.5")
	t.Setenv("M_BURST", "x")
	t.Setenv("M_DEBUG", "nope")
	t.Setenv("M_WAIT", "150ms")

	if got := c.MayString("NAME", "d"); got != "langid" {
		t.Fatalf("MayString = %q", got)
	}
	if got := c.MayString("UNSET", "d"); got != "d" {
		t.Fatalf("MayString default = %q", got)
	}
	if got := c.MayFloat64("RPS", 1); got != 12.5 {
		t.Fatalf("MayFloat64 = %v", got)
	}
	if got := c.MayInt("BURST", 20); got != 20 {
		t.Fatalf("MayInt bad value should fall back, got %d", got)
	}
	if got := c.MayBool("DEBUG", true); !got {
		t.Fatalf("MayBool bad value should fall back")
	}
	if got := c.MayDuration("WAIT", time.Second); got != 150*time.Millisecond {
		t.Fatalf("MayDuration = %v", got)
	}
}

func TestMayCSV(t *testing.T) {
	c := New().Prefix("CSV_")
	t.Setenv("CSV_ORIGINS", " a.test, b.test , ,c.test ,, ")
	got := c.MayCSV("ORIGINS", nil)
	want := []string{"a.test", "b.test", "c.test"}
	if len(got) != len(want) {
		t.Fatalf("MayCSV = %#v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("MayCSV[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	t.Setenv("CSV_BLANK", " , , ")
	if got := c.MayCSV("BLANK", []string{"*"}); len(got) != 1 || got[0] != "*" {
		t.Fatalf("MayCSV blank should fall back: %#v", got)
	}
}

func TestMayEnum(t *testing.T) {
	c := New().Prefix("E_")
	if got := c.MayEnum("UNSET", "json", "json", "console"); got != "json" {
		t.Fatalf("MayEnum default = %q", got)
	}
	if got := c.MayEnum("UNSET", "", "json"); got != "" {
		t.Fatalf("MayEnum empty default = %q", got)
	}
	t.Setenv("E_FMT", "Console")
	if got := c.MayEnum("FMT", "json", "json", "console"); got != "console" {
		t.Fatalf("MayEnum = %q", got)
	}
	t.Setenv("E_BAD", "xml")
	kit.MustPanic(t, func() { _ = c.MayEnum("BAD", "json", "json", "console") })
}
