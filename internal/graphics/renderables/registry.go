// Package renderables maps demo names to their renderers.
package renderables

import (
	"errors"
	"fmt"
	"sort"

	"glex/internal/graphics/renderables/deferred"
	"glex/internal/graphics/renderables/ibl"
	"glex/internal/graphics/renderables/overlay"
	"glex/internal/graphics/renderables/pbr"
	"glex/internal/graphics/renderables/pbrtexture"
	"glex/internal/graphics/renderables/phong"
	"glex/internal/graphics/renderables/shadow"
	"glex/internal/graphics/renderables/triangle"
	"glex/internal/graphics/renderer"
)

var ErrUnknownDemo = errors.New("unknown demo")

var demos = map[string]func(env *renderer.Env) renderer.Renderable{
	"triangle":   func(env *renderer.Env) renderer.Renderable { return triangle.New(env) },
	"phong":      func(env *renderer.Env) renderer.Renderable { return phong.New(env) },
	"shadow":     func(env *renderer.Env) renderer.Renderable { return shadow.New(env) },
	"deferred":   func(env *renderer.Env) renderer.Renderable { return deferred.New(env) },
	"pbr":        func(env *renderer.Env) renderer.Renderable { return pbr.New(env) },
	"pbrtexture": func(env *renderer.Env) renderer.Renderable { return pbrtexture.New(env) },
	"ibl":        func(env *renderer.Env) renderer.Renderable { return ibl.New(env) },
}

// New returns the named demo. Nothing touches GL until Init.
func New(name string, env *renderer.Env) (renderer.Renderable, error) {
	ctor, ok := demos[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (have %v)", ErrUnknownDemo, name, Names())
	}
	return ctor(env), nil
}

// NewOverlay returns the text overlay labelled with the demo name.
func NewOverlay(name string, env *renderer.Env) renderer.Renderable {
	return overlay.New(env, name)
}

// Names lists the demos in sorted order.
func Names() []string {
	names := make([]string, 0, len(demos))
	for name := range demos {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
