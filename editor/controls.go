// Package editor adds an in-app editor mode: a free-flying editor camera,
// a time pause toggle and rebindable controls for both.
package editor

import (
	"fmt"
	"strings"

	"github.com/edwinsyarief/combine/input"
)

// Action is something the editor does in response to a binding.
type Action int

// Editor actions.
const (
	PlayPauseEditor Action = iota
	PauseUnpauseTime
	FocusSelected
)

func (a Action) String() string {
	switch a {
	case PlayPauseEditor:
		return "PlayPauseEditor"
	case PauseUnpauseTime:
		return "PauseUnpauseTime"
	case FocusSelected:
		return "FocusSelected"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// Button is a keyboard key or a mouse button.
type Button struct {
	IsMouse bool
	Key     input.KeyCode
	Mouse   input.MouseButton
}

// Keyboard returns a keyboard Button.
func Keyboard(k input.KeyCode) Button { return Button{Key: k} }

// Mouse returns a mouse Button.
func Mouse(m input.MouseButton) Button { return Button{IsMouse: true, Mouse: m} }

func (b Button) String() string {
	if b.IsMouse {
		return "Mouse" + b.Mouse.String()
	}
	return b.Key.String()
}

// UserInput is a single button or a chord of buttons held together.
type UserInput struct {
	Buttons []Button
}

// Single returns a one-button input.
func Single(b Button) UserInput { return UserInput{Buttons: []Button{b}} }

// Chord returns an input that fires when every button is held and at least
// one of them went down this frame.
func Chord(bs ...Button) UserInput { return UserInput{Buttons: bs} }

func (u UserInput) String() string {
	parts := make([]string, len(u.Buttons))
	for i, b := range u.Buttons {
		parts[i] = b.String()
	}
	return strings.Join(parts, "+")
}

// ConditionKind selects what a BindingCondition checks.
type ConditionKind int

// Condition kinds.
const (
	ConditionListeningForText ConditionKind = iota
	ConditionEditorActive
)

// BindingCondition restricts a binding to a state of the app.
type BindingCondition struct {
	Kind  ConditionKind
	Value bool
}

// ListeningForText holds when text input listening equals v.
func ListeningForText(v bool) BindingCondition {
	return BindingCondition{Kind: ConditionListeningForText, Value: v}
}

// EditorActive holds when the editor's active state equals v.
func EditorActive(v bool) BindingCondition {
	return BindingCondition{Kind: ConditionEditorActive, Value: v}
}

// Binding ties a UserInput to its conditions.
type Binding struct {
	Input      UserInput
	Conditions []BindingCondition
}

// Context is the state bindings are evaluated against.
type Context struct {
	Keys             *input.Keyboard
	Buttons          *input.MouseButtons
	ListeningForText bool
	EditorActive     bool
}

func (c Context) pressed(b Button) bool {
	if b.IsMouse {
		return c.Buttons != nil && c.Buttons.Pressed(b.Mouse)
	}
	return c.Keys != nil && c.Keys.Pressed(b.Key)
}

func (c Context) justPressed(b Button) bool {
	if b.IsMouse {
		return c.Buttons != nil && c.Buttons.JustPressed(b.Mouse)
	}
	return c.Keys != nil && c.Keys.JustPressed(b.Key)
}

func (c Context) holds(cond BindingCondition) bool {
	switch cond.Kind {
	case ConditionListeningForText:
		return c.ListeningForText == cond.Value
	case ConditionEditorActive:
		return c.EditorActive == cond.Value
	}
	return false
}

// JustPressed reports whether b fires in ctx this frame.
func (b Binding) JustPressed(ctx Context) bool {
	if len(b.Input.Buttons) == 0 {
		return false
	}
	for _, cond := range b.Conditions {
		if !ctx.holds(cond) {
			return false
		}
	}
	edge := false
	for _, btn := range b.Input.Buttons {
		if !ctx.pressed(btn) {
			return false
		}
		edge = edge || ctx.justPressed(btn)
	}
	return edge
}

// EditorControls maps actions to their bindings.
type EditorControls struct {
	actions map[Action][]Binding
}

// NewEditorControls returns controls with no bindings.
func NewEditorControls() *EditorControls {
	return &EditorControls{actions: make(map[Action][]Binding)}
}

// DefaultBindings returns the stock bindings:
//
//	PlayPauseEditor   Ctrl+Enter or E, when not typing
//	PauseUnpauseTime  Ctrl+P
//	FocusSelected     F, while the editor is active
func DefaultBindings() *EditorControls {
	c := NewEditorControls()
	c.Insert(PlayPauseEditor, Binding{
		Input:      Chord(Keyboard(input.KeyControlLeft), Keyboard(input.KeyEnter)),
		Conditions: []BindingCondition{ListeningForText(false)},
	})
	c.Insert(PlayPauseEditor, Binding{
		Input:      Single(Keyboard(input.KeyE)),
		Conditions: []BindingCondition{ListeningForText(false)},
	})
	c.Insert(PauseUnpauseTime, Binding{
		Input: Chord(Keyboard(input.KeyControlLeft), Keyboard(input.KeyP)),
	})
	c.Insert(FocusSelected, Binding{
		Input:      Single(Keyboard(input.KeyF)),
		Conditions: []BindingCondition{EditorActive(true)},
	})
	return c
}

// Insert adds a binding for action, keeping existing ones.
func (c *EditorControls) Insert(action Action, b Binding) {
	c.actions[action] = append(c.actions[action], b)
}

// Unbind removes every binding of action.
func (c *EditorControls) Unbind(action Action) {
	delete(c.actions, action)
}

// Bindings returns the bindings of action.
func (c *EditorControls) Bindings(action Action) []Binding {
	return c.actions[action]
}

// JustPressed reports whether any binding of action fires in ctx.
func (c *EditorControls) JustPressed(action Action, ctx Context) bool {
	for _, b := range c.actions[action] {
		if b.JustPressed(ctx) {
			return true
		}
	}
	return false
}
