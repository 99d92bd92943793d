package system

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ashrt/ashrt/internal/component"
	"github.com/ashrt/ashrt/internal/core/ecs"
	coresys "github.com/ashrt/ashrt/internal/core/system"
	"github.com/ashrt/ashrt/internal/scripting"
)

const frame = 100 * time.Millisecond

func newEngine(t *testing.T) *ecs.Engine {
	return ecs.NewEngine(zaptest.NewLogger(t))
}

func TestMovementIntegratesVelocity(t *testing.T) {
	en := newEngine(t)
	pos := &component.Position{Vec2: mgl64.Vec2{1, 1}}
	en.NewEntity("mover", pos, &component.Velocity{Vec2: mgl64.Vec2{10, -5}})
	still := &component.Position{Vec2: mgl64.Vec2{3, 3}}
	en.NewEntity("still", still)
	coresys.Register(en, NewMovementSystem())

	en.Update(frame)
	en.Update(frame)
	if !pos.ApproxEqual(mgl64.Vec2{3, 0}) {
		t.Fatalf("pos=%v", pos.Vec2)
	}
	if still.Vec2 != (mgl64.Vec2{3, 3}) {
		t.Fatal("entity without velocity moved")
	}
}

func TestSpinWrapsAngle(t *testing.T) {
	cases := []struct {
		name  string
		angle float64
		rate  float64
		want  float64
	}{
		{"forward", 0, 1, 0.1},
		{"wrap", 2*math.Pi - 0.05, 1, 0.05},
		{"backward_wrap", 0.05, -1, 2*math.Pi - 0.05},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			en := newEngine(t)
			spin := &component.Spin{Angle: c.angle, Rate: c.rate}
			en.NewEntity("s", spin)
			coresys.Register(en, NewSpinSystem())
			en.Update(frame)
			if !mgl64.FloatEqualThreshold(spin.Angle, c.want, 1e-9) {
				t.Fatalf("angle=%v, want %v", spin.Angle, c.want)
			}
		})
	}
}

func TestLifetimeStripsVelocityThenRemoves(t *testing.T) {
	en := newEngine(t)
	motion := en.NodeList(component.MotionNode)
	life := &component.Lifetime{Total: 4 * frame, Remaining: 4 * frame}
	e := en.NewEntity("shot",
		&component.Position{},
		&component.Velocity{Vec2: mgl64.Vec2{1, 0}},
		life)
	ls := NewLifetimeSystem(zaptest.NewLogger(t))
	coresys.Register(en, ls, NewMovementSystem())

	en.Update(frame)
	if motion.Len() != 1 {
		t.Fatal("velocity stripped too early")
	}
	en.Update(frame)
	if motion.Len() != 0 || ecs.Has[*component.Velocity](e) {
		t.Fatal("velocity should be stripped at half-life")
	}
	en.Update(frame)
	if e.Engine() == nil {
		t.Fatal("removed before expiry")
	}
	en.Update(frame)
	if e.Engine() != nil || en.NumEntities() != 0 || ls.Expired() != 1 {
		t.Fatalf("entity should expire, expired=%d", ls.Expired())
	}
}

// fakeSteerer turns every entity towards +X at unit speed.
type fakeSteerer struct {
	calls []scripting.SteerContext
	fail  bool
}

func (f *fakeSteerer) Steer(fn string, ctx scripting.SteerContext) (scripting.SteerResult, bool) {
	f.calls = append(f.calls, ctx)
	if f.fail || fn != "east" {
		return scripting.SteerResult{VX: ctx.VX, VY: ctx.VY}, false
	}
	return scripting.SteerResult{VX: 1}, true
}

func TestSteeringSetsVelocityBeforeMovement(t *testing.T) {
	en := newEngine(t)
	lua := &fakeSteerer{}
	pos := &component.Position{}
	en.NewEntity("boid",
		&component.Steering{Script: "east"},
		pos,
		&component.Velocity{Vec2: mgl64.Vec2{0, 3}})
	ss := NewSteeringSystem(lua)
	coresys.Register(en, NewMovementSystem(), ss)

	en.Update(frame)
	en.Update(frame)
	if !pos.ApproxEqual(mgl64.Vec2{0.2, 0}) {
		t.Fatalf("pos=%v", pos.Vec2)
	}
	if len(lua.calls) != 2 || lua.calls[1].Entity != "boid" ||
		!mgl64.FloatEqual(lua.calls[1].Age, 0.2) || !mgl64.FloatEqual(lua.calls[1].DT, 0.1) {
		t.Fatalf("calls=%+v", lua.calls)
	}
	if ss.Failures() != 0 {
		t.Fatalf("failures=%d", ss.Failures())
	}
}

func TestSteeringFailureKeepsVelocity(t *testing.T) {
	en := newEngine(t)
	vel := &component.Velocity{Vec2: mgl64.Vec2{2, 2}}
	en.NewEntity("boid", &component.Steering{Script: "missing"}, &component.Position{}, vel)
	ss := NewSteeringSystem(&fakeSteerer{})
	coresys.Register(en, ss)
	en.Update(frame)
	if vel.Vec2 != (mgl64.Vec2{2, 2}) || ss.Failures() != 1 {
		t.Fatalf("vel=%v failures=%d", vel.Vec2, ss.Failures())
	}
}

func TestSteeringForgetsRemovedEntities(t *testing.T) {
	en := newEngine(t)
	ss := NewSteeringSystem(&fakeSteerer{})
	coresys.Register(en, ss)
	e := en.NewEntity("boid", &component.Steering{Script: "east"}, &component.Position{}, &component.Velocity{})
	if len(ss.ages) != 1 {
		t.Fatal("age not tracked")
	}
	en.RemoveEntity(e)
	if len(ss.ages) != 0 {
		t.Fatal("age not dropped")
	}
}

func TestSteeringWithLua(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "steer.lua", `
function orbit(ctx)
  return { vx = -ctx.y, vy = ctx.x }
end
`)
	lua, err := scripting.NewEngine(dir, zaptest.NewLogger(t))
	if err != nil {
		t.Fatal(err)
	}
	defer lua.Close()

	en := newEngine(t)
	vel := &component.Velocity{}
	en.NewEntity("moon", &component.Steering{Script: "orbit"},
		&component.Position{Vec2: mgl64.Vec2{1, 0}}, vel)
	coresys.Register(en, NewSteeringSystem(lua))
	en.Update(frame)
	if !vel.ApproxEqual(mgl64.Vec2{0, 1}) {
		t.Fatalf("vel=%v", vel.Vec2)
	}
}

func TestStatsLogsEveryN(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	en := newEngine(t)
	en.NewEntity("a", &component.Position{}, &component.Velocity{}, &component.Spin{})
	en.NewEntity("b", &component.Lifetime{Total: time.Hour, Remaining: time.Hour})
	stats := NewStatsSystem(2, zap.New(core))
	coresys.Register(en, stats)

	for range 5 {
		en.Update(frame)
	}
	if logs.FilterMessage("stats").Len() != 2 {
		t.Fatalf("logged %d times", logs.FilterMessage("stats").Len())
	}
	want := Stats{
		Frame: 5, Elapsed: 5 * frame, Entities: 2, Families: 4,
		Motion: 1, Lifetime: 1, Steering: 0, Spin: 1,
	}
	if got := stats.Last(); got != want {
		t.Fatalf("stats=%+v, want %+v", got, want)
	}
}
