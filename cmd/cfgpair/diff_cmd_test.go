package main

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/raphi011/cfgpair/internal/config"
)

func TestDiff_InSync(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, "[DB]\nhost = a\n", "[DB]\nhost = b\n")
	if err := env.run(t, newDiffCmd(), false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(env.stdout.String(), "in sync") {
		t.Errorf("stdout = %q, want in sync", env.stdout.String())
	}
}

func TestDiff_OutOfSync(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t,
		"[DB]\nhost = a\nport = 1\n",
		"[DB]\nhost = b\ndebug = on\n\n[DEV]\nx = 1\n",
	)
	err := env.run(t, newDiffCmd(), false)
	if !errors.Is(err, errOutOfSync) {
		t.Fatalf("err = %v, want errOutOfSync", err)
	}
	if !strings.Contains(err.Error(), "3 difference(s)") {
		t.Errorf("err = %q, want 3 differences", err)
	}

	got := env.stdout.String()
	for _, want := range []string{"DB.debug", "DEV", "DB.port", "tracked", "local"} {
		if !strings.Contains(got, want) {
			t.Errorf("diff output missing %q:\n%s", want, got)
		}
	}
}

func TestDiff_JSON(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, "[DB]\nhost = a\nport = 1\n", "[DB]\nhost = b\n")
	err := env.run(t, newDiffCmd(), false, "--json")
	if !errors.Is(err, errOutOfSync) {
		t.Fatalf("err = %v, want errOutOfSync", err)
	}

	var c config.Comparison
	if err := json.Unmarshal(env.stdout.Bytes(), &c); err != nil {
		t.Fatalf("failed to parse JSON: %v", err)
	}
	if len(c.TrackedOnly.UniqueKeys) != 1 || c.TrackedOnly.UniqueKeys[0].Name != "DB.port" {
		t.Errorf("tracked only = %+v, want DB.port", c.TrackedOnly)
	}
	if !c.LocalOnly.Empty() {
		t.Errorf("local only = %+v, want empty", c.LocalOnly)
	}
}

func TestDiff_NoLocal(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, "[DB]\nhost = a\n", "")
	if err := env.run(t, newDiffCmd(), false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(env.stderr.String(), "nothing to compare") {
		t.Errorf("stderr = %q, want nothing-to-compare warning", env.stderr.String())
	}
	if env.stdout.Len() != 0 {
		t.Errorf("stdout = %q, want empty", env.stdout.String())
	}
}

func TestDiff_ExplicitLocal(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, "[DB]\nhost = a\n", "")
	other := env.dir + "/staging.cfg"
	writeTestFile(t, other, "[DB]\nhost = s\nextra = 1\n")
	env.v.Set("local", other)

	err := env.run(t, newDiffCmd(), false)
	if !errors.Is(err, errOutOfSync) {
		t.Fatalf("err = %v, want errOutOfSync", err)
	}
	if !strings.Contains(env.stdout.String(), "DB.extra") {
		t.Errorf("stdout = %q, want DB.extra", env.stdout.String())
	}
}
