// Package opmode runs an autonomous mission on a robot through the match lifecycle: init, the
// init loop where the drive team makes its selection, start, the polled loop and stop.
package opmode

import (
	"context"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/techietitans/autonomy/config"
	"github.com/techietitans/autonomy/control"
	"github.com/techietitans/autonomy/logging"
	"github.com/techietitans/autonomy/mission"
	"github.com/techietitans/autonomy/robot"
	"github.com/techietitans/autonomy/telemetry"
)

// ErrNotStarted is returned by Loop before Start.
var ErrNotStarted = errors.New("mission not started")

// An Option configures a Runner.
type Option func(*Runner)

// WithClock sets the clock used for state timers, the run log and the loop ticker.
func WithClock(clk clock.Clock) Option {
	return func(r *Runner) {
		r.clock = clk
	}
}

// WithDisplay sets where the diagnostics of every tick are shown.
func WithDisplay(display telemetry.Display) Option {
	return func(r *Runner) {
		r.display = display
	}
}

// WithVision sets the source of the column cue.
func WithVision(vision VisionSource) Option {
	return func(r *Runner) {
		r.vision = vision
	}
}

// WithRunLogger sends the run log to logger instead of the configured file.
func WithRunLogger(logger logging.Logger) Option {
	return func(r *Runner) {
		r.runLogger = logger
	}
}

// WithAfterTick registers a function called at the end of every loop.
func WithAfterTick(f func()) Option {
	return func(r *Runner) {
		r.afterTick = f
	}
}

// A Runner hosts a mission on a robot.
type Runner struct {
	robot     *robot.Robot
	cfg       *config.Mission
	logger    logging.Logger
	clock     clock.Clock
	display   telemetry.Display
	vision    VisionSource
	runLogger logging.Logger
	afterTick func()

	selection Selection

	runID    uuid.UUID
	seq      *mission.Sequencer
	recorder *telemetry.Recorder
	logFile  *logging.FileAppender
	loop     int64
	last     telemetry.Diagnostics
	summary  *telemetry.Summary
	// a drive command the base rejected, sent again until it is applied or superseded
	unsentDrive *control.DrivePowers

	// outcome of the last stopped mission
	finalState mission.State
	completed  bool
}

// NewRunner returns a runner for the robot. The selection starts from the configuration and can
// be changed during the init loop.
func NewRunner(r *robot.Robot, cfg *config.Mission, logger logging.Logger, opts ...Option) (*Runner, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Validate("mission"); err != nil {
		return nil, err
	}
	alliance, err := mission.ParseAlliance(cfg.Alliance)
	if err != nil {
		return nil, err
	}
	runner := &Runner{
		robot:   r,
		cfg:     cfg,
		logger:  logger,
		clock:   clock.New(),
		display: &telemetry.LogDisplay{Logger: logger.Sublogger("telemetry")},
		selection: Selection{
			Alliance:   alliance,
			Column:     mission.Column(cfg.Column),
			MarkerPush: !cfg.SkipMarkerPush,
			LogEnabled: cfg.LogEnabled,
		},
	}
	for _, opt := range opts {
		opt(runner)
	}
	return runner, nil
}

// Init calibrates the gyro, lights the marker sensor and opens the gripper.
func (r *Runner) Init(ctx context.Context) error {
	err := multierr.Combine(
		errors.Wrap(r.robot.Gyro.Calibrate(ctx), "calibrating gyro"),
		errors.Wrap(r.robot.ColorSensor.EnableLight(ctx, true), "turning on color sensor light"),
		errors.Wrap(r.robot.GripperLeft.SetPosition(ctx, r.cfg.Servos.GripperLeftOpen), "opening left gripper"),
		errors.Wrap(r.robot.GripperRight.SetPosition(ctx, r.cfg.Servos.GripperRightOpen), "opening right gripper"),
		errors.Wrap(r.robot.MarkerArm.SetPosition(ctx, r.cfg.Servos.MarkerArmUp), "raising marker arm"),
	)
	if err != nil {
		return err
	}
	r.logger.CInfo(ctx, "initialized")
	return nil
}

// InitLoop reads the column cue and applies the gamepad to the selection. It is called
// repeatedly until the match starts.
func (r *Runner) InitLoop(ctx context.Context, pad Gamepad) error {
	var err error
	if r.vision != nil {
		var cue VisionCue
		cue, err = r.vision.Cue(ctx)
		if err != nil {
			err = errors.Wrap(err, "reading column cue")
		} else {
			r.selection.Column = cue.Column()
		}
	}
	r.selection.Apply(pad)
	return multierr.Combine(err, r.display.Show(ctx, telemetry.Diagnostics{
		State:      "Init",
		Alliance:   r.selection.Alliance.String(),
		Column:     int(r.selection.Column),
		MarkerPush: r.selection.MarkerPush,
	}))
}

// Selection returns the current selection.
func (r *Runner) Selection() Selection {
	return r.selection
}

// Start fixes the selection and begins a new mission.
func (r *Runner) Start(ctx context.Context) error {
	r.runID = uuid.New()
	r.loop = 0
	r.completed = false
	r.summary = telemetry.NewSummary()
	r.unsentDrive = nil
	r.seq = mission.NewSequencer(r.selection.Setup(), r.cfg, r.clock, r.logger.Sublogger("mission"))
	r.recorder = nil

	if r.selection.LogEnabled {
		runLogger := r.runLogger
		if runLogger == nil {
			runLogger, r.logFile = logging.NewFileLogger("run", r.cfg.LogFile, r.cfg.LogMaxSizeMB, r.cfg.LogMaxBackups)
		}
		runLogger.CInfow(ctx, "run started",
			"run_id", r.runID.String(),
			"alliance", r.selection.Alliance.String(),
			"column", int(r.selection.Column),
			"marker_push", r.selection.MarkerPush)
		r.recorder = telemetry.NewRecorder(r.clock, r.cfg.LogPeriod, runLogger)
	}
	r.logger.CInfow(ctx, "mission started", "run_id", r.runID.String())
	return nil
}

// Loop runs one tick: read the robot, step the mission, apply the commands and report. A failed
// read or write is reported but does not stop the mission.
func (r *Runner) Loop(ctx context.Context) error {
	if r.seq == nil {
		return ErrNotStarted
	}
	snap := r.snapshot(ctx)
	cmds, diag := r.seq.Tick(snap)
	err := r.apply(ctx, cmds)
	r.last = diag
	r.summary.Observe(diag)

	err = multierr.Combine(err, r.display.Show(ctx, diag))
	if r.recorder != nil {
		r.recorder.Record(r.loop, diag)
	}
	r.loop++
	if r.afterTick != nil {
		r.afterTick()
	}
	return err
}

// Abort sends the running mission to recovery and stops the drive.
func (r *Runner) Abort(ctx context.Context, reason string) error {
	if r.seq == nil {
		return ErrNotStarted
	}
	r.logger.CWarnw(ctx, "mission aborted", "reason", reason)
	return r.apply(ctx, r.seq.EnterRecovery(reason))
}

// Done reports whether the mission ran to completion.
func (r *Runner) Done() bool {
	if r.seq == nil {
		return r.completed
	}
	return r.seq.Done()
}

// State returns the current mission state, or the state the last mission stopped in.
func (r *Runner) State() mission.State {
	if r.seq == nil {
		return r.finalState
	}
	return r.seq.State()
}

// Last returns the diagnostics of the latest tick.
func (r *Runner) Last() telemetry.Diagnostics {
	return r.last
}

// Summary returns the ticks spent per state by the current or last mission, or nil before the
// first Start.
func (r *Runner) Summary() *telemetry.Summary {
	return r.summary
}

// RunID returns the id of the current run.
func (r *Runner) RunID() uuid.UUID {
	return r.runID
}

// Stop cuts power to everything and ends the mission.
func (r *Runner) Stop(ctx context.Context) error {
	err := r.robot.Stop(ctx)
	if r.seq != nil {
		r.finalState, r.completed = r.seq.State(), r.seq.Done()
		r.logger.CInfow(ctx, "mission stopped",
			"run_id", r.runID.String(),
			"state", r.seq.State().String(),
			"ticks", r.seq.Ticks())
	}
	if r.logFile != nil {
		err = multierr.Combine(err, r.logFile.Close())
		r.logFile = nil
	}
	r.seq = nil
	r.recorder = nil
	r.unsentDrive = nil
	return err
}

// Run starts the mission and ticks it once per loop period until it is done or ctx is
// cancelled. The robot is always stopped on return.
func (r *Runner) Run(ctx context.Context) (err error) {
	if err := r.Start(ctx); err != nil {
		return err
	}
	if r.cfg.Debug {
		ctx = logging.EnableDebugMode(ctx, r.runID.String()[:8])
	}
	defer func() {
		err = multierr.Combine(err, r.Stop(context.Background()))
	}()

	ticker := r.clock.Ticker(r.cfg.LoopPeriod)
	defer ticker.Stop()
	for {
		if err := r.Loop(ctx); err != nil {
			r.logger.CWarnw(ctx, "loop error", "error", err)
		}
		if r.seq.Done() {
			r.logger.CInfo(ctx, "mission complete")
			return nil
		}
		select {
		case <-ctx.Done():
			r.logger.CInfow(ctx, "mission stopped by host", "state", r.seq.State().String())
			return nil
		case <-ticker.C:
		}
	}
}

func (r *Runner) snapshot(ctx context.Context) mission.Snapshot {
	var snap mission.Snapshot

	left, leftOK, right, rightOK, err := r.robot.Base.Positions(ctx)
	if err != nil {
		r.logger.CDebugw(ctx, "encoder read failed", "error", err)
	}
	snap.Positions = control.Positions{Left: left, Right: right, LeftOK: leftOK, RightOK: rightOK}

	heading, err := r.robot.Gyro.IntegratedHeading(ctx)
	if err != nil {
		r.logger.CDebugw(ctx, "heading read failed", "error", err)
	}
	snap.Heading = control.Heading{Degrees: heading, OK: err == nil}

	red, redErr := r.robot.ColorSensor.Red(ctx)
	blue, blueErr := r.robot.ColorSensor.Blue(ctx)
	if err := multierr.Combine(redErr, blueErr); err != nil {
		r.logger.CDebugw(ctx, "color read failed", "error", err)
	}
	snap.Color = mission.ColorReading{Red: red, Blue: blue, OK: redErr == nil && blueErr == nil}

	snap.LeftPower, snap.RightPower, err = r.robot.Base.Powers(ctx)
	if err != nil {
		r.logger.CDebugw(ctx, "power read failed", "error", err)
	}
	snap.GripperLeft, _ = r.robot.GripperLeft.Position(ctx)
	snap.GripperRight, _ = r.robot.GripperRight.Position(ctx)
	return snap
}

// apply writes the commands to the robot. A drive command the base failed to take is written
// again on the next call that carries no drive command of its own.
func (r *Runner) apply(ctx context.Context, cmds mission.Commands) error {
	var err error
	if cmds.ResetHeading {
		err = multierr.Append(err, errors.Wrap(r.robot.Gyro.ResetIntegrator(ctx), "resetting heading"))
	}
	if cmds.Drive == nil {
		cmds.Drive = r.unsentDrive
	}
	if cmds.Drive != nil {
		r.unsentDrive = nil
		if driveErr := r.robot.Base.SetPowers(ctx, cmds.Drive.Left, cmds.Drive.Right); driveErr != nil {
			r.unsentDrive = cmds.Drive
			err = multierr.Append(err, errors.Wrap(driveErr, "setting drive powers"))
		}
	}
	if cmds.Lift != nil {
		err = multierr.Append(err, errors.Wrap(r.robot.Lift.SetPower(ctx, *cmds.Lift), "setting lift power"))
	}
	if cmds.GripperLeft != nil {
		err = multierr.Append(err, errors.Wrap(r.robot.GripperLeft.SetPosition(ctx, *cmds.GripperLeft), "moving left gripper"))
	}
	if cmds.GripperRight != nil {
		err = multierr.Append(err, errors.Wrap(r.robot.GripperRight.SetPosition(ctx, *cmds.GripperRight), "moving right gripper"))
	}
	if cmds.MarkerArm != nil {
		err = multierr.Append(err, errors.Wrap(r.robot.MarkerArm.SetPosition(ctx, *cmds.MarkerArm), "moving marker arm"))
	}
	if cmds.Light != nil {
		err = multierr.Append(err, errors.Wrap(r.robot.ColorSensor.EnableLight(ctx, *cmds.Light), "setting color sensor light"))
	}
	return err
}
