// Package main is the entry point for the skelview animation viewer.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/skelview/internal/config"
	"github.com/Faultbox/skelview/internal/demo"
	"github.com/Faultbox/skelview/internal/engine/model"
	"github.com/Faultbox/skelview/internal/engine/render"
	"github.com/Faultbox/skelview/internal/engine/window"
	"github.com/Faultbox/skelview/internal/logger"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== skelview ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	m, err := demo.Build()
	if err != nil {
		logger.Error("failed to build demo rig", zap.Error(err))
		os.Exit(1)
	}
	defer m.Close()

	m.SetAnimation(cfg.Playback.Clip)
	for i, c := range m.Animator().Clips() {
		logger.Sugar.Infof("clip %d: %s (frames %d..%d, %.0f fps, loop=%v)",
			i, c.Name, c.First, c.Last, c.Rate, c.Loop)
	}

	if cfg.Viewer.Headless {
		runHeadless(cfg, m)
		return
	}
	if err := runWindowed(cfg, m); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("viewer closed normally")
}

// runHeadless plays the selected clip with a fixed timestep and logs
// playback state, no GPU required.
func runHeadless(cfg *config.Config, m *model.Model) {
	steps := int(cfg.Playback.Duration / cfg.Playback.Step)
	logEvery := steps / 20
	if logEvery == 0 {
		logEvery = 1
	}

	for i := 0; i < steps; i++ {
		m.Update(cfg.Playback.Step * cfg.Playback.Speed)
		if i%logEvery != 0 {
			continue
		}
		a := m.Animator()
		root := m.SkinningMatrices()[0]
		logger.Sugar.Infof("t=%.3f frame=%d root skin translation=(%.3f %.3f %.3f)",
			a.Time(), a.Frame(), root[12], root[13], root[14])
	}
	logger.Info("headless playback finished",
		zap.Int("steps", steps),
		zap.Float32("clock", m.Animator().Time()),
	)
}

// runWindowed opens an SDL window and plays the model until quit.
// Number keys switch clips; an out-of-range key freezes the pose.
func runWindowed(cfg *config.Config, m *model.Model) error {
	w, err := window.Open(cfg.Viewer.Title, cfg.Viewer.Width, cfg.Viewer.Height, cfg.Viewer.VSync)
	if err != nil {
		return err
	}
	defer w.Close()

	r, err := render.New()
	if err != nil {
		return err
	}
	defer r.Close()

	gl.Enable(gl.DEPTH_TEST)
	gl.ClearColor(0.08, 0.09, 0.11, 1.0)

	last := time.Now()
	for {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				return nil
			case *sdl.KeyboardEvent:
				if e.Type != sdl.KEYDOWN {
					continue
				}
				switch {
				case e.Keysym.Sym == sdl.K_ESCAPE:
					return nil
				case e.Keysym.Sym >= sdl.K_0 && e.Keysym.Sym <= sdl.K_9:
					idx := int(e.Keysym.Sym - sdl.K_0)
					m.SetAnimation(idx)
					logger.Sugar.Infof("selected clip %d", idx)
				}
			}
		}

		now := time.Now()
		dt := float32(now.Sub(last).Seconds())
		last = now

		m.Update(dt * cfg.Playback.Speed)

		width, height := w.Size()
		gl.Viewport(0, 0, int32(width), int32(height))
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

		proj := mgl32.Perspective(mgl32.DegToRad(55), float32(width)/float32(height), 0.1, 100)
		view := mgl32.LookAtV(mgl32.Vec3{2.5, 2.2, 4}, mgl32.Vec3{0, 1.4, 0}, mgl32.Vec3{0, 1, 0})
		r.SetViewProjection(proj.Mul4(view))

		m.Draw(r, r.Program())
		w.Swap()
	}
}
