// weft-demo is a terminal "glyph rain" built on the weft ECS core:
// a spawner drops colored glyphs that fall under gravity, expire and
// vanish, rendered with tcell and scored with short beep cues. Tuning
// lives in a YAML file and hot-reloads while the demo runs.
//
// Keys: q/ESC quit, space pause/resume, s step one frame while
// paused, +/- time scale, r reset.
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/weft/component"
	"github.com/lixenwraith/weft/config"
	"github.com/lixenwraith/weft/core"
	"github.com/lixenwraith/weft/engine"
	"github.com/lixenwraith/weft/system"
)

const stepDelta = 1.0 / 60.0

func main() {
	configPath := flag.String("config", "", "path to YAML tuning file (optional)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Printf("using defaults: %v", err)
		} else {
			cfg = loaded
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("screen init: %v", err)
	}
	defer screen.Fini()

	if err := run(screen, cfg, *configPath); err != nil {
		screen.Fini()
		log.Fatal(err)
	}
}

func run(screen tcell.Screen, cfg config.Config, configPath string) error {
	width, height := screen.Size()

	world := engine.NewWorld()
	if cfg.World.Strict {
		world.SetPolicy(engine.PolicyStrict)
	}
	component.RegisterAll(world.Registry())

	loop := engine.NewEngine(world)
	loop.SetMaxDelta(cfg.Engine.MaxDelta)
	loop.SetTimeScale(cfg.Engine.TimeScale)

	spawner := system.NewSpawner(cfg.Spawn.Interval, cfg.Spawn.Lifetime,
		cfg.Spawn.MaxGlyphs, width, time.Now().UnixNano())
	movement := system.NewMovement(cfg.Motion.Gravity)
	bounds := system.NewBounds(width, height-1) // bottom line is the HUD

	world.RegisterSystem(spawner)
	world.RegisterSystem(system.NewLifetime())
	world.RegisterSystem(movement)
	world.RegisterSystem(bounds)
	if cfg.Audio.Enabled {
		world.RegisterSystem(system.NewAudio(cfg.Audio.SampleRate))
	}
	world.RegisterSystem(system.NewRender(screen, loop))

	tickRate := cfg.Engine.TickRate
	if tickRate <= 0 {
		tickRate = config.Default().Engine.TickRate
	}
	interval := time.Second / time.Duration(tickRate)
	runner := engine.NewRunner(loop, interval)
	runner.Start()
	defer func() {
		runner.Stop()
		world.Destroy()
	}()

	reload := watchConfig(configPath)

	events := make(chan tcell.Event, 16)
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	})

	// The runner goroutine owns the engine and world; every control
	// call below goes through runner.Do so it lands between ticks.
	for {
		select {
		case fresh := <-reload:
			runner.Do(func() {
				spawner.Retune(fresh.Spawn.Interval, fresh.Spawn.Lifetime, fresh.Spawn.MaxGlyphs)
				movement.SetGravity(fresh.Motion.Gravity)
				loop.SetMaxDelta(fresh.Engine.MaxDelta)
				loop.SetTimeScale(fresh.Engine.TimeScale)
			})

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				w, h := ev.Size()
				runner.Do(func() {
					spawner.SetWidth(w)
					bounds.Resize(w, h-1)
				})
				screen.Sync()
			case *tcell.EventKey:
				if quit := handleKey(ev, loop, runner); quit {
					return nil
				}
			}
		}
	}
}

func handleKey(ev *tcell.EventKey, loop *engine.Engine, runner *engine.Runner) bool {
	switch {
	case ev.Key() == tcell.KeyEscape || ev.Rune() == 'q':
		return true
	case ev.Rune() == ' ':
		runner.Do(func() {
			if loop.Paused() {
				loop.Resume()
			} else {
				loop.Pause()
			}
		})
	case ev.Rune() == 's':
		runner.Do(func() { loop.Step(stepDelta) })
	case ev.Rune() == '+':
		runner.Do(func() { loop.SetTimeScale(loop.TimeScale() * 1.25) })
	case ev.Rune() == '-':
		runner.Do(func() { loop.SetTimeScale(loop.TimeScale() / 1.25) })
	case ev.Rune() == 'r':
		runner.Do(func() { loop.Reset() })
	}
	return false
}

// watchConfig emits reloaded configs on file change. Returns a channel
// that never fires when no config path is set or the watcher cannot
// start.
func watchConfig(path string) <-chan config.Config {
	out := make(chan config.Config, 1)
	if path == "" {
		return out
	}
	if _, err := os.Stat(path); err != nil {
		return out
	}
	watcher, err := config.NewWatcher(path)
	if err != nil {
		log.Printf("config watch disabled: %v", err)
		return out
	}
	core.Go(func() {
		for {
			select {
			case changed, ok := <-watcher.Events:
				if !ok {
					return
				}
				fresh, err := config.Load(changed)
				if err != nil {
					log.Printf("config reload: %v", err)
					continue
				}
				select {
				case out <- fresh:
				default:
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("config watch: %v", err)
			}
		}
	})
	return out
}
