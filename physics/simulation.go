package physics

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/edwinsyarief/combine/app"
	"github.com/edwinsyarief/combine/ecs"
	"github.com/edwinsyarief/combine/transform"
)

// Configuration is the simulation resource.
type Configuration struct {
	Gravity  mgl32.Vec3
	Timestep time.Duration
	// MaxSubsteps bounds the steps taken in one frame; leftover time is dropped.
	MaxSubsteps int
	// Active stops stepping when false. Bodies keep their velocities.
	Active bool
}

// DefaultConfiguration returns earth gravity at 60 steps per second.
func DefaultConfiguration() Configuration {
	return Configuration{
		Gravity:     mgl32.Vec3{0, -9.81, 0},
		Timestep:    time.Second / 60,
		MaxSubsteps: 4,
		Active:      true,
	}
}

// restSpeed is the bounce speed, in multiples of one step of gravity, below
// which a contact absorbs the normal velocity entirely.
const restSpeed = 2

type pair struct{ a, b ecs.Entity }

func orderedPair(a, b ecs.Entity) pair {
	if b.ID < a.ID {
		a, b = b, a
	}
	return pair{a, b}
}

// Simulation holds stepping state between frames.
type Simulation struct {
	accumulator time.Duration
	touching    map[pair]struct{}
	steps       uint64
}

// Steps returns how many fixed steps have run.
func (s *Simulation) Steps() uint64 { return s.steps }

// Touching reports whether a and b were in contact after the last step.
func (s *Simulation) Touching(a, b ecs.Entity) bool {
	_, ok := s.touching[orderedPair(a, b)]
	return ok
}

// body is the per-step view of one collider.
type body struct {
	entity      ecs.Entity
	kind        RigidBody
	collider    Collider
	transform   *transform.Transform
	velocity    *Velocity
	restitution Restitution
	invMass     float32
}

// Plugin registers the simulation resources and systems.
type Plugin struct{}

// Build implements app.Plugin.
func (Plugin) Build(a *app.App) {
	cfg := DefaultConfiguration()
	app.InitResource(a, &cfg)
	a.InsertResource(&Simulation{touching: make(map[pair]struct{})})
	a.AddSystem(app.PreUpdate, initVelocities)
	a.AddSystem(app.Update, stepSystem)
}

func initVelocities(w *ecs.World) {
	var missing []ecs.Entity
	f := ecs.NewFilter[RigidBody](w)
	for f.Next() {
		if *f.Get() == RigidBodyDynamic && !ecs.Has[Velocity](w, f.Entity()) {
			missing = append(missing, f.Entity())
		}
	}
	for _, e := range missing {
		ecs.Insert(w, e, Velocity{})
	}
}

func stepSystem(w *ecs.World) {
	cfg := ecs.Resource[Configuration](w)
	if !cfg.Active || cfg.Timestep <= 0 {
		return
	}
	sim := ecs.Resource[Simulation](w)
	sim.accumulator += ecs.Resource[app.Time](w).Delta
	n := 0
	for sim.accumulator >= cfg.Timestep {
		if cfg.MaxSubsteps > 0 && n == cfg.MaxSubsteps {
			sim.accumulator = 0
			break
		}
		Step(w, cfg, sim)
		sim.accumulator -= cfg.Timestep
		n++
	}
}

// Step advances the world by one fixed timestep.
func Step(w *ecs.World, cfg *Configuration, sim *Simulation) {
	dt := float32(cfg.Timestep.Seconds())
	bodies := collect(w)

	for _, b := range bodies {
		if b.kind != RigidBodyDynamic || b.velocity == nil {
			continue
		}
		b.velocity.Linvel = b.velocity.Linvel.Add(cfg.Gravity.Mul(dt))
		b.transform.Translation = b.transform.Translation.Add(b.velocity.Linvel.Mul(dt))
		if b.velocity.Angvel.Len() > 0 {
			angle := b.velocity.Angvel.Len() * dt
			spin := mgl32.QuatRotate(angle, b.velocity.Angvel.Normalize())
			b.transform.Rotation = spin.Mul(b.transform.Rotation).Normalize()
		}
	}

	restBounce := cfg.Gravity.Len() * dt * restSpeed
	touching := make(map[pair]struct{}, len(sim.touching))
	for i := range bodies {
		for j := i + 1; j < len(bodies); j++ {
			a, b := &bodies[i], &bodies[j]
			if a.invMass == 0 && b.invMass == 0 {
				continue
			}
			n, depth, ok := contact(a, b)
			if !ok {
				continue
			}
			touching[orderedPair(a.entity, b.entity)] = struct{}{}
			resolve(a, b, n, depth, restBounce)
		}
	}

	for p := range touching {
		if _, ok := sim.touching[p]; !ok {
			ecs.Send(w.Events(), CollisionStarted{A: p.a, B: p.b})
		}
	}
	for p := range sim.touching {
		if _, ok := touching[p]; !ok {
			ecs.Send(w.Events(), CollisionStopped{A: p.a, B: p.b})
		}
	}
	sim.touching = touching
	sim.steps++
}

func collect(w *ecs.World) []body {
	var bodies []body
	f := ecs.NewFilter2[Collider, transform.Transform](w)
	for f.Next() {
		c, t := f.Get()
		e := f.Entity()
		b := body{entity: e, kind: RigidBodyFixed, collider: *c, transform: t}
		if rb := ecs.Get[RigidBody](w, e); rb != nil {
			b.kind = *rb
		}
		if r := ecs.Get[Restitution](w, e); r != nil {
			b.restitution = *r
		}
		if b.kind == RigidBodyDynamic {
			b.velocity = ecs.Get[Velocity](w, e)
			if v := c.volume(); v > 0 && b.velocity != nil {
				b.invMass = 1 / v
			}
		}
		bodies = append(bodies, b)
	}
	// dynamic bodies without a collider still fall
	g := ecs.NewFilter3[RigidBody, transform.Transform, Velocity](w, ecs.Without[Collider]())
	for g.Next() {
		rb, t, v := g.Get()
		bodies = append(bodies, body{entity: g.Entity(), kind: *rb, transform: t, velocity: v})
	}
	return bodies
}

// resolve separates a and b along n (pointing from a to b) and applies the
// restitution impulse when they approach.
func resolve(a, b *body, n mgl32.Vec3, depth, restBounce float32) {
	total := a.invMass + b.invMass
	a.transform.Translation = a.transform.Translation.Sub(n.Mul(depth * a.invMass / total))
	b.transform.Translation = b.transform.Translation.Add(n.Mul(depth * b.invMass / total))

	var va, vb mgl32.Vec3
	if a.velocity != nil && a.invMass > 0 {
		va = a.velocity.Linvel
	}
	if b.velocity != nil && b.invMass > 0 {
		vb = b.velocity.Linvel
	}
	approach := vb.Sub(va).Dot(n)
	if approach >= 0 {
		return
	}
	e := a.restitution.CombineRule.Combine(b.restitution.CombineRule,
		a.restitution.Coefficient, b.restitution.Coefficient)
	if -approach*e < restBounce {
		e = 0
	}
	j := -(1 + e) * approach / total
	if a.invMass > 0 {
		a.velocity.Linvel = a.velocity.Linvel.Sub(n.Mul(j * a.invMass))
	}
	if b.invMass > 0 {
		b.velocity.Linvel = b.velocity.Linvel.Add(n.Mul(j * b.invMass))
	}
}
