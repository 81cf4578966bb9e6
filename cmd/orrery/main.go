package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/orrery/audio"
	"github.com/lixenwraith/orrery/config"
	"github.com/lixenwraith/orrery/terminal"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configFile string
	cmd := &cobra.Command{
		Use:           "orrery",
		Short:         "Interactive solar system in the terminal",
		Long:          "orrery animates the sun, eight planets, an asteroid belt and three comets, with six toggleable cosmic events.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile, cmd.Flags())
			if err != nil {
				fmt.Fprintf(os.Stderr, "config: %v\n", err)
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&configFile, "config", "", "path to a TOML config file (default: ./orrery.toml if present)")
	config.RegisterFlags(cmd.Flags())
	return cmd
}

func run(parent context.Context, cfg config.Config) (err error) {
	if logFile := setupLogging(cfg.Debug); logFile != nil {
		defer logFile.Close()
	}

	mode := terminal.ResolveColorMode(cfg.ColorMode, os.Getenv)
	if err := terminal.Configure(mode, os.Setenv); err != nil {
		log.Printf("color mode: %v", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		return errors.Wrap(err, "create screen")
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		return errors.Wrap(err, "init screen")
	}

	// Panic recovery: restore the terminal before printing the crash
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			terminal.EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\n\x1b[31mORRERY CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()
	defer screen.Fini()

	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.EnableFocus()
	screen.HideCursor()
	screen.Clear()

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Printf("orrery starting: fps=%d color=%s seed=%d listen=%q", cfg.FPS, mode, seed, cfg.Listen)

	a := newApp(cfg, screen, seed)

	if cfg.Audio {
		sm := audio.NewSoundManager()
		if err := sm.Initialize(); err != nil {
			log.Printf("Audio initialization failed: %v (continuing without audio)", err)
		} else {
			a.sim.AddEventListener(sm.OnEventChange)
			defer sm.Cleanup()
		}
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Listen != "" {
		// gin writes to stdout by default, which the screen owns
		gin.SetMode(gin.ReleaseMode)
		gin.DefaultWriter = log.Writer()
		gin.DefaultErrorWriter = log.Writer()
		srv := a.apiServer()
		go func() {
			if err := srv.Run(ctx, cfg.Listen); err != nil {
				log.Printf("api server stopped: %v", err)
			}
		}()
	}

	err = a.run(ctx)
	log.Printf("orrery exiting")
	return err
}
