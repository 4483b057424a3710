package physics

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/edwinsyarief/combine/app"
	"github.com/edwinsyarief/combine/ecs"
	"github.com/edwinsyarief/combine/transform"
)

const frame = time.Second / 60

func newPhysicsApp() *app.App {
	return app.New().AddPlugin(Plugin{})
}

func spawnGround(w *ecs.World) ecs.Entity {
	return w.SpawnWith(Cuboid(100, 0.1, 100), transform.FromXYZ(0, -2, 0))
}

func spawnBall(w *ecs.World, y, restitution float32) ecs.Entity {
	return w.SpawnWith(RigidBodyDynamic, Ball(0.5), RestitutionCoefficient(restitution), transform.FromXYZ(0, y, 0))
}

func run(a *app.App, frames int) {
	for range frames {
		a.Step(frame)
	}
}

func TestCombineRule(t *testing.T) {
	tests := []struct {
		a, b CoefficientCombineRule
		want float32
	}{
		{CombineAverage, CombineAverage, 0.35},
		{CombineAverage, CombineMin, 0},
		{CombineMax, CombineAverage, 0.7},
		{CombineMultiply, CombineMin, 0},
	}
	for _, tt := range tests {
		if got := tt.a.Combine(tt.b, 0.7, 0); got != tt.want {
			t.Errorf("%d/%d: expected %v, got %v", tt.a, tt.b, tt.want, got)
		}
	}
	if got := CombineMultiply.Combine(CombineAverage, 0.5, 0.5); got != 0.25 {
		t.Errorf("expected 0.25, got %v", got)
	}
}

func TestInitVelocities(t *testing.T) {
	a := newPhysicsApp()
	w := a.World()
	ball := spawnBall(w, 4, 0.7)
	fixed := w.SpawnWith(RigidBodyFixed, Ball(1), transform.Identity())

	a.Step(0)

	if !ecs.Has[Velocity](w, ball) {
		t.Error("expected dynamic body to get a Velocity")
	}
	if ecs.Has[Velocity](w, fixed) {
		t.Error("expected fixed body without Velocity")
	}
}

func TestFreeFall(t *testing.T) {
	a := newPhysicsApp()
	w := a.World()
	ball := spawnBall(w, 4, 0.7)

	run(a, 60)

	sim := ecs.Resource[Simulation](w)
	if sim.Steps() != 60 {
		t.Fatalf("expected 60 steps, got %d", sim.Steps())
	}
	v := ecs.Get[Velocity](w, ball)
	if !mgl32.FloatEqualThreshold(v.Linvel.Y(), -9.81, 1e-3) {
		t.Errorf("expected vy -9.81 after one second, got %v", v.Linvel.Y())
	}
	y := ecs.Get[transform.Transform](w, ball).Translation.Y()
	if y > 4-4.9 || y < 4-5.0 {
		t.Errorf("expected roughly 4.9m drop, got y=%v", y)
	}
}

func TestBounceAndRest(t *testing.T) {
	a := newPhysicsApp()
	w := a.World()
	ground := spawnGround(w)
	ball := spawnBall(w, 4, 0.7)

	var started []CollisionStarted
	ecs.Subscribe(w.Events(), func(e CollisionStarted) { started = append(started, e) })

	tr := ecs.Get[transform.Transform]
	bounced := false
	for range 120 {
		a.Step(frame)
		if ecs.Get[Velocity](w, ball).Linvel.Y() > 1 {
			bounced = true
			break
		}
	}
	if !bounced {
		t.Fatal("expected the ball to bounce off the ground")
	}
	if len(started) == 0 || started[0].A != ground || started[0].B != ball {
		t.Fatalf("expected CollisionStarted{ground, ball}, got %v", started)
	}
	if y := tr(w, ball).Translation.Y(); y < -1.45 {
		t.Errorf("expected ball above the ground surface, got y=%v", y)
	}

	run(a, 600)

	y := tr(w, ball).Translation.Y()
	if !mgl32.FloatEqualThreshold(y, -1.4, 0.01) {
		t.Errorf("expected ball resting at y=-1.4, got %v", y)
	}
	if vy := ecs.Get[Velocity](w, ball).Linvel.Y(); abs(vy) > 0.2 {
		t.Errorf("expected ball at rest, got vy=%v", vy)
	}
	if tr(w, ground).Translation != (mgl32.Vec3{0, -2, 0}) {
		t.Error("fixed collider moved")
	}
	if !ecs.Resource[Simulation](w).Touching(ground, ball) {
		t.Error("expected resting contact")
	}
}

func TestHigherRestitutionBouncesHigher(t *testing.T) {
	peak := func(r float32) float32 {
		a := newPhysicsApp()
		w := a.World()
		spawnGround(w)
		ball := spawnBall(w, 4, r)
		ecs.Insert(w, ball, Restitution{Coefficient: r, CombineRule: CombineMax})
		best := float32(-10)
		falling := true
		for range 240 {
			a.Step(frame)
			vy := ecs.Get[Velocity](w, ball).Linvel.Y()
			if falling && vy > 0 {
				falling = false
			}
			if y := ecs.Get[transform.Transform](w, ball).Translation.Y(); !falling && y > best {
				best = y
			}
		}
		return best
	}
	low, high := peak(0.3), peak(0.7)
	if high <= low {
		t.Errorf("expected 0.7 to bounce higher than 0.3, got %v <= %v", high, low)
	}
	if high >= 4 {
		t.Errorf("expected bounce below the drop height, got %v", high)
	}
}

func TestRotatedCuboid(t *testing.T) {
	a := newPhysicsApp()
	w := a.World()
	ramp := transform.FromXYZ(0, 0, 0)
	ramp.Rotation = mgl32.QuatRotate(mgl32.DegToRad(30), mgl32.Vec3{0, 0, 1})
	w.SpawnWith(Cuboid(5, 0.1, 5), ramp)
	ball := spawnBall(w, 2, 0)

	run(a, 180)

	tr := ecs.Get[transform.Transform](w, ball)
	if tr.Translation.X() >= 0 {
		t.Errorf("expected ball to slide down the ramp towards -x, got %v", tr.Translation)
	}
}

func TestBallBall(t *testing.T) {
	a := newPhysicsApp()
	w := a.World()
	ecs.Resource[Configuration](w).Gravity = mgl32.Vec3{}
	left := w.SpawnWith(RigidBodyDynamic, Ball(0.5), RestitutionCoefficient(1), transform.FromXYZ(-1, 0, 0),
		Velocity{Linvel: mgl32.Vec3{1, 0, 0}})
	right := w.SpawnWith(RigidBodyDynamic, Ball(0.5), RestitutionCoefficient(1), transform.FromXYZ(1, 0, 0),
		Velocity{Linvel: mgl32.Vec3{-1, 0, 0}})

	run(a, 90)

	if vx := ecs.Get[Velocity](w, left).Linvel.X(); vx >= 0 {
		t.Errorf("expected left ball to rebound, got vx=%v", vx)
	}
	if vx := ecs.Get[Velocity](w, right).Linvel.X(); vx <= 0 {
		t.Errorf("expected right ball to rebound, got vx=%v", vx)
	}
}

func TestInactive(t *testing.T) {
	a := newPhysicsApp()
	w := a.World()
	ecs.Resource[Configuration](w).Active = false
	ball := spawnBall(w, 4, 0.7)

	run(a, 30)

	if y := ecs.Get[transform.Transform](w, ball).Translation.Y(); y != 4 {
		t.Errorf("expected no motion while inactive, got y=%v", y)
	}
}

func TestMaxSubsteps(t *testing.T) {
	a := newPhysicsApp()
	spawnBall(a.World(), 4, 0)
	a.Step(time.Second)
	if got := ecs.Resource[Simulation](a.World()).Steps(); got != 4 {
		t.Errorf("expected 4 substeps, got %d", got)
	}
}

func TestCollisionStopped(t *testing.T) {
	a := newPhysicsApp()
	w := a.World()
	ecs.Resource[Configuration](w).Gravity = mgl32.Vec3{}
	w.SpawnWith(Ball(0.5), transform.Identity())
	w.SpawnWith(RigidBodyDynamic, Ball(0.5), transform.FromXYZ(0.9, 0, 0), Velocity{Linvel: mgl32.Vec3{3, 0, 0}})
	stopped := 0
	ecs.Subscribe(w.Events(), func(CollisionStopped) { stopped++ })

	run(a, 30)

	if stopped != 1 {
		t.Errorf("expected one CollisionStopped, got %d", stopped)
	}
}
