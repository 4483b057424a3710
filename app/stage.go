package app

import "github.com/edwinsyarief/combine/ecs"

// System is a function run against the world once per stage pass.
type System func(w *ecs.World)

// Stage orders systems within a frame.
type Stage int

// Stages, in execution order.
const (
	First Stage = iota
	PreUpdate
	Update
	PostUpdate
	Last
	Render
	stageCount
)

var stageNames = [...]string{"First", "PreUpdate", "Update", "PostUpdate", "Last", "Render"}

func (s Stage) String() string {
	if s < 0 || s >= stageCount {
		return "Stage(?)"
	}
	return stageNames[s]
}
