package bootstrap

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	alarminadapter "holoalarm/internal/modules/alarm/adapter/in"
	alarmoutadapter "holoalarm/internal/modules/alarm/adapter/out"
	alarmservice "holoalarm/internal/modules/alarm/service"
	alarmusecase "holoalarm/internal/modules/alarm/usecase"
	profileinadapter "holoalarm/internal/modules/profile/adapter/in"
	profileoutadapter "holoalarm/internal/modules/profile/adapter/out"
	profileout "holoalarm/internal/modules/profile/port/out"
	profileservice "holoalarm/internal/modules/profile/service"
	profileusecase "holoalarm/internal/modules/profile/usecase"
	wakeinadapter "holoalarm/internal/modules/wake/adapter/in"
	wakeoutadapter "holoalarm/internal/modules/wake/adapter/out"
	wakedto "holoalarm/internal/modules/wake/dto"
	wakein "holoalarm/internal/modules/wake/port/in"
	wakeout "holoalarm/internal/modules/wake/port/out"
	wakeservice "holoalarm/internal/modules/wake/service"
	wakeusecase "holoalarm/internal/modules/wake/usecase"
	"holoalarm/internal/platform/clock"
	"holoalarm/internal/platform/config"
	"holoalarm/internal/platform/gemini"
	"holoalarm/internal/platform/id"
	"holoalarm/internal/platform/kv"
	"holoalarm/internal/platform/logger"
	uiapp "holoalarm/internal/ui/app"
)

type Options struct {
	// LogToFile sends logs to cfg.Log.File instead of stderr.
	LogToFile bool
}

type App struct {
	Config     config.Config
	Log        *zap.Logger
	AlarmCLI   alarminadapter.CLIHandler
	ProfileCLI profileinadapter.CLIHandler
	WakeCLI    wakeinadapter.CLIHandler
	WakeTUI    wakeinadapter.TUIHandler

	controller wakein.Controller
	clock      clock.Clock
	store      kv.Store
}

func New(ctx context.Context, cfg config.Config, opts Options) (*App, error) {
	output := ""
	if opts.LogToFile {
		output = cfg.Log.File
	}
	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, output)
	if err != nil {
		return nil, err
	}

	store, err := kv.Open(ctx, cfg)
	if err != nil {
		_ = log.Sync()
		return nil, fmt.Errorf("open %s store: %w", cfg.Store.Backend, err)
	}
	log.Debug("store opened", zap.String("backend", cfg.Store.Backend))

	clk := clock.SystemClock{}
	ids := id.UUID{}

	var (
		stylizer profileout.Stylizer
		speaker  wakeout.Speaker
	)
	if client, err := gemini.NewClient(ctx, cfg.Gemini.APIKey); err != nil {
		log.Info("generative features disabled", zap.Error(err))
	} else {
		stylizer = profileoutadapter.NewGeminiStylizer(client.Models, cfg.Gemini.ImageModel, cfg.Gemini.Timeout, log.Named("stylizer"))
		speaker = wakeoutadapter.NewGeminiSpeaker(client.Models, cfg.Gemini.SpeechModel, cfg.Gemini.Timeout, log.Named("speaker"))
	}

	alarmUC := alarmusecase.NewInteractor(alarmservice.NewAlarmService(
		clk,
		ids,
		alarmoutadapter.NewKVRepository(store, log.Named("alarms")),
		alarmoutadapter.NewICSExporter(),
	))
	profileUC := profileusecase.NewInteractor(profileservice.NewProfileService(
		profileoutadapter.NewKVRepository(store, log.Named("profile")),
		stylizer,
		log.Named("profile"),
	))

	controller := wakeusecase.NewController(alarmUC, profileUC, clk, log.Named("controller"))
	announcer := wakeusecase.NewAnnouncer(wakeservice.NewAnnounceService(
		speaker,
		wakeoutadapter.NewWAVStore(cfg.Audio.Dir),
		wakeoutadapter.NewExecPlayer(cfg.Audio.Player),
		log.Named("announcer"),
	))

	return &App{
		Config:     cfg,
		Log:        log,
		AlarmCLI:   alarminadapter.NewCLIHandler(alarmUC),
		ProfileCLI: profileinadapter.NewCLIHandler(profileUC),
		WakeCLI:    wakeinadapter.NewCLIHandler(controller, announcer),
		WakeTUI:    wakeinadapter.NewTUIHandler(controller, announcer),
		controller: controller,
		clock:      clk,
		store:      store,
	}, nil
}

func (a *App) Close() error {
	_ = a.Log.Sync()
	return a.store.Close()
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.WakeTUI, app.ProfileCLI, app.Config.Clock.Tick, app.Config.Gemini.Timeout)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}

// RunWatch runs the trigger loop headless. Each line read from in dismisses
// the active alarm; the loop stops when ctx ends or in is closed.
func RunWatch(ctx context.Context, app *App, in io.Reader, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	out = &lockedWriter{w: out}

	loop := wakeservice.NewTriggerLoop(app.controller, app.clock, app.Config.Clock.Tick, app.Log.Named("trigger"))
	loop.OnTrigger(func(ctx context.Context, tick wakedto.TickOutput) {
		_, _ = fmt.Fprintf(out, "\a⏰ %s  %s\n   %s\n   press enter to dismiss\n", tick.Alarm.Time, tick.Alarm.Label, tick.Message)
		go func() {
			aiCtx := ctx
			if app.Config.Gemini.Timeout > 0 {
				var aiCancel context.CancelFunc
				aiCtx, aiCancel = context.WithTimeout(ctx, app.Config.Gemini.Timeout)
				defer aiCancel()
			}
			if _, err := app.WakeCLI.Announce(aiCtx, tick.Alarm); err != nil {
				_, _ = fmt.Fprintf(out, "   voice offline: %v\n", err)
			}
		}()
	})

	go func() {
		defer cancel()
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			if strings.TrimSpace(scanner.Text()) == "q" {
				return
			}
			dismissed, err := app.WakeCLI.Dismiss()
			if err != nil {
				_, _ = fmt.Fprintln(out, "no alarm ringing")
				continue
			}
			_, _ = fmt.Fprintf(out, "dismissed %s %s\n", dismissed.Time, dismissed.Label)
		}
	}()

	_, _ = fmt.Fprintf(out, "watching alarms (tick %s, store %s); enter dismisses, q quits\n",
		app.Config.Clock.Tick, app.Config.Store.Backend)
	if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// lockedWriter serializes writes from the loop, announcer and stdin goroutines.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
