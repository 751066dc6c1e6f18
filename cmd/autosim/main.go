// Package main runs an autonomous mission against a simulated robot and prints the outcome.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/techietitans/autonomy/config"
	"github.com/techietitans/autonomy/logging"
	"github.com/techietitans/autonomy/mission"
	"github.com/techietitans/autonomy/opmode"
	"github.com/techietitans/autonomy/robot/fake"
)

const (
	flagConfig           = "config"
	flagAlliance         = "alliance"
	flagColumn           = "column"
	flagCue              = "cue"
	flagMarker           = "marker"
	flagNoMarkerPush     = "no-marker-push"
	flagLogFile          = "log-file"
	flagMaxTicks         = "max-ticks"
	flagRealtime         = "realtime"
	flagRecoverOnTimeout = "recover-on-timeout"
	flagDebug            = "debug"
	flagQuiet            = "quiet"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		errorf(os.Stderr, "%v", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	var logger logging.Logger

	return &cli.App{
		Name:  "autosim",
		Usage: "run the autonomous mission on a simulated robot",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagConfig,
				Aliases: []string{"c"},
				Usage:   "load mission configuration from `FILE`",
			},
			&cli.StringFlag{
				Name:  flagAlliance,
				Usage: "alliance to play for (red or blue)",
			},
			&cli.IntFlag{
				Name:  flagColumn,
				Usage: "target column (0, 1 or 2) when no cue is given",
			},
			&cli.StringFlag{
				Name:  flagCue,
				Usage: "column cue seen by the camera (left, center or right)",
			},
			&cli.StringFlag{
				Name:  flagMarker,
				Usage: "colour of the simulated marker (red or blue)",
			},
			&cli.BoolFlag{
				Name:  flagNoMarkerPush,
				Usage: "skip knocking off the marker",
			},
			&cli.StringFlag{
				Name:  flagLogFile,
				Usage: "write the run log to `FILE`",
			},
			&cli.IntFlag{
				Name:  flagMaxTicks,
				Value: 10000,
				Usage: "give up after this many loops",
			},
			&cli.BoolFlag{
				Name:  flagRealtime,
				Usage: "tick on the wall clock instead of as fast as possible",
			},
			&cli.BoolFlag{
				Name:  flagRecoverOnTimeout,
				Usage: "stop in recovery when a motion times out",
			},
			&cli.BoolFlag{
				Name:    flagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
			&cli.BoolFlag{
				Name:    flagQuiet,
				Aliases: []string{"q"},
				Usage:   "only log warnings and errors, to stderr",
			},
		},
		Before: func(c *cli.Context) error {
			switch {
			case c.Bool(flagDebug):
				logger = logging.NewDebugLogger("autosim")
			case c.Bool(flagQuiet):
				logger = logging.NewBlankLogger("autosim")
				logger.SetLevel(logging.WARN)
				logger.AddAppender(logging.NewWriterAppender(c.App.ErrWriter))
			default:
				logger = logging.NewLogger("autosim")
			}
			logging.ReplaceGlobal(logger)
			return nil
		},
		Action: func(c *cli.Context) error {
			return runMission(c, logger)
		},
	}
}

func missionConfig(c *cli.Context) (*config.Mission, error) {
	cfg := config.Default()
	if path := c.String(flagConfig); path != "" {
		var err error
		if cfg, err = config.Read(path); err != nil {
			return nil, err
		}
	}
	if c.IsSet(flagAlliance) {
		cfg.Alliance = c.String(flagAlliance)
	}
	if c.IsSet(flagColumn) {
		cfg.Column = c.Int(flagColumn)
	}
	switch strings.ToLower(c.String(flagMarker)) {
	case "":
	case "red":
		cfg.Sim.Red, cfg.Sim.Blue = 40, 10
	case "blue":
		cfg.Sim.Red, cfg.Sim.Blue = 10, 40
	default:
		return nil, errors.Errorf("unknown marker colour %q", c.String(flagMarker))
	}
	if c.Bool(flagNoMarkerPush) {
		cfg.SkipMarkerPush = true
	}
	if path := c.String(flagLogFile); path != "" {
		cfg.LogEnabled = true
		cfg.LogFile = path
	}
	if c.Bool(flagRecoverOnTimeout) {
		cfg.RecoverOnTimeout = true
	}
	cfg.Debug = cfg.Debug || c.Bool(flagDebug)
	return cfg, cfg.Validate("mission")
}

func parseCue(s string) (opmode.VisionCue, error) {
	switch strings.ToLower(s) {
	case "left":
		return opmode.CueLeft, nil
	case "center":
		return opmode.CueCenter, nil
	case "right":
		return opmode.CueRight, nil
	case "":
		return opmode.CueUnknown, nil
	default:
		return opmode.CueUnknown, errors.Errorf("unknown cue %q", s)
	}
}

func runMission(c *cli.Context, logger logging.Logger) error {
	cfg, err := missionConfig(c)
	if err != nil {
		return err
	}
	sim, err := fake.NewRobot(cfg.Sim, logger.Sublogger("sim"))
	if err != nil {
		return err
	}

	opts := []opmode.Option{}
	if c.IsSet(flagCue) {
		cue, err := parseCue(c.String(flagCue))
		if err != nil {
			return err
		}
		opts = append(opts, opmode.WithVision(opmode.StaticVision(cue)))
	}

	maxTicks := c.Int(flagMaxTicks)
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
	defer stop()

	var runner *opmode.Runner
	if c.Bool(flagRealtime) {
		opts = append(opts, opmode.WithAfterTick(sim.Step))
		if runner, err = opmode.NewRunner(sim.Robot, cfg, logger, opts...); err != nil {
			return err
		}
		if err := startRunner(ctx, runner); err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(ctx, time.Duration(maxTicks)*cfg.LoopPeriod)
		defer cancel()
		if err := runner.Run(ctx); err != nil {
			return err
		}
	} else {
		clk := clock.NewMock()
		opts = append(opts, opmode.WithClock(clk), opmode.WithAfterTick(func() {
			sim.Step()
			clk.Add(cfg.LoopPeriod)
		}))
		if runner, err = opmode.NewRunner(sim.Robot, cfg, logger, opts...); err != nil {
			return err
		}
		if err := startRunner(ctx, runner); err != nil {
			return err
		}
		if err := runner.Start(ctx); err != nil {
			return err
		}
		for i := 0; i < maxTicks && !runner.Done() && ctx.Err() == nil; i++ {
			if err := runner.Loop(ctx); err != nil {
				logger.CWarnw(ctx, "loop error", "error", err)
			}
		}
		if err := runner.Stop(context.Background()); err != nil {
			return err
		}
	}

	printSummary(c.App.Writer, runner)
	return nil
}

func startRunner(ctx context.Context, runner *opmode.Runner) error {
	if err := runner.Init(ctx); err != nil {
		return err
	}
	return runner.InitLoop(ctx, opmode.Gamepad{})
}

func printSummary(w io.Writer, runner *opmode.Runner) {
	last := runner.Last()
	allianceColor := color.New(color.FgBlue, color.Bold)
	if last.Alliance == mission.AllianceRed.String() {
		allianceColor = color.New(color.FgRed, color.Bold)
	}
	fmt.Fprintf(w, "run %s for the %s alliance\n", runner.RunID(), allianceColor.Sprint(strings.ToUpper(last.Alliance)))
	fmt.Fprintln(w, last.Table())
	if summary := runner.Summary(); summary != nil {
		fmt.Fprintln(w, summary.Table())
		if st, err := summary.Stats(); err == nil {
			infof(w, "longest in %s: %.0f ticks", st.Longest, st.Max)
		}
	}
	switch {
	case runner.Done():
		infof(w, "mission complete after %d ticks", last.Tick)
	case runner.State() == mission.StateRecovery:
		warningf(w, "robot stopped in recovery after %s: %s", last.Previous, last.RecoveryReason)
	default:
		warningf(w, "mission stopped in %s after %d ticks", runner.State(), last.Tick)
	}
}

func infof(w io.Writer, format string, a ...interface{}) {
	fmt.Fprintf(w, "%s %s\n", color.New(color.FgGreen, color.Bold).Sprint("Info:"), fmt.Sprintf(format, a...))
}

func warningf(w io.Writer, format string, a ...interface{}) {
	fmt.Fprintf(w, "%s %s\n", color.New(color.FgYellow, color.Bold).Sprint("Warning:"), fmt.Sprintf(format, a...))
}

func errorf(w io.Writer, format string, a ...interface{}) {
	fmt.Fprintf(w, "%s %s\n", color.New(color.FgRed, color.Bold).Sprint("Error:"), fmt.Sprintf(format, a...))
}
