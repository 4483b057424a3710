package app

import "reflect"

// Plugin configures an App: it inserts resources and registers systems.
type Plugin interface {
	Build(a *App)
}

// Named lets a plugin choose the name it is registered under. Plugins without
// it are named after their Go type.
type Named interface {
	Name() string
}

// PluginGroup is an ordered list of plugins added together.
type PluginGroup interface {
	Plugins() []Plugin
}

// Plugins is the plain PluginGroup.
type Plugins []Plugin

// Plugins returns the group itself.
func (p Plugins) Plugins() []Plugin { return p }

// PluginName returns the name p is registered under.
func PluginName(p Plugin) string {
	if n, ok := p.(Named); ok {
		return n.Name()
	}
	t := reflect.TypeOf(p)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.String()
}
