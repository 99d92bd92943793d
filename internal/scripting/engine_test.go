package scripting

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"
)

const steerScript = `
function reverse(ctx)
  return { vx = -ctx.vx, vy = -ctx.vy }
end

function chase_origin(ctx)
  return { vx = -ctx.x * 2, vy = -ctx.y * 2 }
end

function half_answer(ctx)
  return { vx = 1 }
end

function not_a_table(ctx)
  return 42
end

function explode(ctx)
  error("boom")
end

function version()
  return API_VERSION
end
`

func writeScript(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func newTestEngine(t *testing.T) (*Engine, string) {
	t.Helper()
	dir := t.TempDir()
	writeScript(t, dir, "steer.lua", steerScript)
	writeScript(t, dir, "notes.txt", "not lua")
	e, err := NewEngine(dir, zaptest.NewLogger(t))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(e.Close)
	return e, dir
}

func TestSteer(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := SteerContext{Entity: "a", X: 3, Y: -1, VX: 1, VY: 2, DT: 0.05}
	cases := []struct {
		fn     string
		want   SteerResult
		wantOK bool
	}{
		{"reverse", SteerResult{-1, -2}, true},
		{"chase_origin", SteerResult{-6, 2}, true},
		{"half_answer", SteerResult{1, 2}, true},
		{"not_a_table", SteerResult{1, 2}, false},
		{"explode", SteerResult{1, 2}, false},
		{"missing", SteerResult{1, 2}, false},
	}
	for _, c := range cases {
		t.Run(c.fn, func(t *testing.T) {
			got, ok := e.Steer(c.fn, ctx)
			if got != c.want || ok != c.wantOK {
				t.Fatalf("Steer=%+v,%v want %+v,%v", got, ok, c.want, c.wantOK)
			}
		})
	}
}

func TestEngineLoadsOnlyLuaFiles(t *testing.T) {
	e, _ := newTestEngine(t)
	if files := e.Files(); len(files) != 1 || filepath.Base(files[0]) != "steer.lua" {
		t.Fatalf("files=%v", files)
	}
	if !e.Has("version") || e.Has("missing") {
		t.Fatal("Has reports wrong functions")
	}
}

func TestEngineMissingDirIsEmpty(t *testing.T) {
	e, err := NewEngine(filepath.Join(t.TempDir(), "nope"), nil)
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()
	if len(e.Files()) != 0 {
		t.Fatal("missing dir should load nothing")
	}
}

func TestEngineBadScript(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "bad.lua", "function (")
	if _, err := NewEngine(dir, zaptest.NewLogger(t)); err == nil {
		t.Fatal("syntax error should fail NewEngine")
	}
}

func TestReload(t *testing.T) {
	e, dir := newTestEngine(t)
	writeScript(t, dir, "extra.lua", "function stay(ctx) return { vx = 0, vy = 0 } end")
	if err := e.Reload(); err != nil {
		t.Fatal(err)
	}
	if !e.Has("stay") || !e.Has("reverse") {
		t.Fatal("reload should pick up new functions")
	}

	writeScript(t, dir, "extra.lua", "function stay(")
	if err := e.Reload(); err == nil {
		t.Fatal("broken script should fail reload")
	}
	if got, ok := e.Steer("stay", SteerContext{VX: 5}); !ok || got.VX != 0 {
		t.Fatal("previous VM should keep running after a failed reload")
	}
}

func TestWatcherReportsLuaChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	writeScript(t, dir, "ignored.txt", "x")
	writeScript(t, dir, "wander.lua", "-- wander")

	timeout := time.After(5 * time.Second)
	for {
		select {
		case name := <-w.Events:
			if filepath.Ext(name) != ".lua" {
				t.Fatalf("unexpected event for %s", name)
			}
			return
		case err := <-w.Errors:
			t.Fatal(err)
		case <-timeout:
			t.Fatal("no event for the lua file")
		}
	}
}

func TestWatcherCloseClosesEvents(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	select {
	case _, ok := <-w.Events:
		if ok {
			t.Fatal("no events expected")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Events not closed")
	}
	if err := w.Close(); err != nil {
		t.Fatal("second Close should be a no-op")
	}
}
