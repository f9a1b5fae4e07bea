package overlay

import (
	"fmt"
	"time"

	"glex/internal/config"
	"glex/internal/graphics"
	"glex/internal/graphics/renderer"
	"glex/internal/profiling"
	"glex/internal/text"
	"glex/internal/timing"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	FontSize   = 16
	AtlasWidth = 512
	Margin     = 10
	TopBuckets = 5
)

var textColor = mgl32.Vec3{1, 1, 0.8}

// Overlay prints the demo name, frame rate and camera position in the top
// left corner, plus the slowest profiling buckets when profiling is on.
type Overlay struct {
	env  *renderer.Env
	demo string

	text *graphics.TextRenderer
	fps  *timing.FPSCounter

	currentFPS float64
	lines      []string
}

func New(env *renderer.Env, demo string) *Overlay {
	return &Overlay{
		env:  env,
		demo: demo,
		fps:  timing.NewFPSCounter(time.Second),
	}
}

func (o *Overlay) Init() error {
	face, err := text.DefaultFace(FontSize)
	if err != nil {
		return err
	}
	defer face.Close()
	atlas, err := text.BuildAtlas(face, text.ASCII(), AtlasWidth)
	if err != nil {
		return err
	}
	w := o.env.Config.Window
	o.text, err = graphics.NewTextRenderer(o.env.Shaders, atlas, w.Width, w.Height)
	return err
}

func (o *Overlay) SetViewport(width, height int) {
	if o.text != nil {
		o.text.SetViewport(width, height)
	}
}

func (o *Overlay) Render(ctx renderer.RenderContext) {
	if fps, ok := o.fps.Frame(time.Now()); ok {
		o.currentFPS = fps
	}
	if !config.IsOverlayVisible() {
		return
	}
	defer profiling.Track("overlay.text")()

	pos := ctx.Camera.Position
	o.lines = append(o.lines[:0],
		o.demo,
		fmt.Sprintf("FPS: %.0f", o.currentFPS),
		fmt.Sprintf("Pos: %.2f, %.2f, %.2f", pos.X(), pos.Y(), pos.Z()),
	)
	if config.IsWireframeMode() {
		o.lines = append(o.lines, "wireframe")
	}
	if config.IsProfilingLog() {
		if top := profiling.TopN(TopBuckets); top != "" {
			o.lines = append(o.lines, top)
		}
	}

	step := o.text.LineHeight()
	o.text.RenderLines(o.lines, Margin, Margin+step, step, 1, textColor)
}

func (o *Overlay) Dispose() {
	if o.text != nil {
		o.text.Delete()
	}
}
