package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"glex/internal/config"
	"glex/internal/graphics/renderables"
	"glex/internal/graphics/renderer"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/profile"
	"github.com/xlab/closer"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	demo := flag.String("demo", "", "demo to run, overrides the config")
	list := flag.Bool("list", false, "print the demo names and exit")
	cpuProfile := flag.String("cpuprofile", "", "write a CPU profile into this directory")
	logLevel := flag.String("log-level", "", "debug, info, warn or error")
	flag.Parse()

	if *list {
		for _, name := range renderables.Names() {
			fmt.Println(name)
		}
		return
	}

	cfg, err := loadConfig(*configPath, *demo, *logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	level, _ := config.ParseLevel(cfg.LogLevel)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	config.Apply(cfg)

	if *cpuProfile != "" {
		p := profile.Start(profile.CPUProfile, profile.ProfilePath(*cpuProfile), profile.NoShutdownHook, profile.Quiet)
		closer.Bind(p.Stop)
		slog.Info("cpu profiling", "dir", *cpuProfile)
	}
	closer.Bind(func() { slog.Info("glex stopped") })

	if err := run(cfg); err != nil {
		closer.Fatalln(err)
	}
	closer.Close()
}

func loadConfig(path, demo, logLevel string) (*config.Config, error) {
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}
	if demo != "" {
		cfg.Demo = demo
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	return cfg, cfg.Validate()
}

// run owns every GL resource; they are released before it returns.
func run(cfg *config.Config) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("init glfw: %w", err)
	}
	defer glfw.Terminate()

	window, err := setupWindow(cfg.Window)
	if err != nil {
		return err
	}
	defer window.Destroy()

	env := renderer.NewEnv(cfg)
	defer env.Dispose()

	demo, err := renderables.New(cfg.Demo, env)
	if err != nil {
		return err
	}
	width, height := window.GetFramebufferSize()
	slog.Info("starting demo", "demo", cfg.Demo, "width", width, "height", height)
	r, err := renderer.NewRenderer(cfg, width, height, demo, renderables.NewOverlay(cfg.Demo, env))
	if err != nil {
		return fmt.Errorf("init %s: %w", cfg.Demo, err)
	}
	defer r.Dispose()

	loop := NewLoop(window, r)
	setupInputHandlers(window, loop)
	loop.Run()
	return nil
}
