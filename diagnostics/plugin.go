package diagnostics

import (
	"log"
	"strings"
	"time"

	"github.com/edwinsyarief/combine/app"
	"github.com/edwinsyarief/combine/ecs"
)

func initDiagnostics(a *app.App) *Diagnostics {
	return app.InitResource(a, NewDiagnostics())
}

// FrameTimeDiagnosticsPlugin measures fps, frame time in milliseconds and the
// frame count from the real frame delta.
type FrameTimeDiagnosticsPlugin struct{}

// Build implements app.Plugin.
func (FrameTimeDiagnosticsPlugin) Build(a *app.App) {
	d := initDiagnostics(a)
	d.Register(NewDiagnostic(FrameTime, "ms", MaxHistory))
	d.Register(NewDiagnostic(FPS, "", MaxHistory))
	d.Register(NewDiagnostic(FrameCount, "", 1))
	a.AddSystem(app.Last, measureFrameTime)
}

func measureFrameTime(w *ecs.World) {
	d := ecs.Resource[Diagnostics](w)
	t := ecs.Resource[app.Time](w)
	d.Add(FrameCount, float64(t.Frame))
	if t.RealDelta <= 0 {
		return
	}
	secs := t.RealDelta.Seconds()
	d.Add(FrameTime, secs*1000)
	d.Add(FPS, 1/secs)
}

// EntityCountDiagnosticsPlugin records the number of live entities.
type EntityCountDiagnosticsPlugin struct{}

// Build implements app.Plugin.
func (EntityCountDiagnosticsPlugin) Build(a *app.App) {
	initDiagnostics(a).Register(NewDiagnostic(EntityCount, "", MaxHistory))
	a.AddSystem(app.Last, func(w *ecs.World) {
		ecs.Resource[Diagnostics](w).Add(EntityCount, float64(w.Len()))
	})
}

// LogDiagnosticsPlugin logs every diagnostic's average once per Wait.
type LogDiagnosticsPlugin struct {
	Wait time.Duration
}

type logState struct {
	wait    time.Duration
	elapsed time.Duration
}

// Build implements app.Plugin.
func (p LogDiagnosticsPlugin) Build(a *app.App) {
	initDiagnostics(a)
	if p.Wait <= 0 {
		p.Wait = time.Second
	}
	a.InsertResource(&logState{wait: p.Wait})
	a.AddSystem(app.Last, logDiagnostics)
}

func logDiagnostics(w *ecs.World) {
	st := ecs.Resource[logState](w)
	st.elapsed += ecs.Resource[app.Time](w).RealDelta
	if st.elapsed < st.wait {
		return
	}
	st.elapsed = 0
	for _, line := range strings.Split(strings.TrimSpace(ecs.Resource[Diagnostics](w).String()), "\n") {
		if line != "" {
			log.Printf("diagnostic: %s", line)
		}
	}
}
