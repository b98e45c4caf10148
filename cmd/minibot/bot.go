package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"

	"minibot/internal/arduino"
	"minibot/internal/bracing"
	"minibot/internal/click_manager"
	"minibot/internal/config"
	"minibot/internal/database"
	"minibot/internal/hammering"
	"minibot/internal/interrupt"
	"minibot/internal/logger"
	"minibot/internal/patching"
	"minibot/internal/sawing"
	"minibot/internal/screen"
	"minibot/internal/scripts/minigames"
	"minibot/internal/scrubbing"
	"minibot/internal/types"
	"minibot/internal/vision"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// newPointer выбирает устройство ввода по конфигу; close освобождает порт Arduino
func newPointer(cfg config.Config, loggerManager *logger.LoggerManager) (click_manager.Pointer, func(), error) {
	if cfg.Actuator == "arduino" {
		port, err := arduino.InitializePort(cfg.Port, cfg.BaudRate)
		if err != nil {
			return nil, nil, err
		}
		loggerManager.Info("🔌 Arduino на %s (%d бод)", cfg.Port, cfg.BaudRate)
		return arduino.NewArduinoPointer(port), func() {
			if err := port.Close(); err != nil {
				loggerManager.LogError(err, "Error closing port")
			}
		}, nil
	}
	return click_manager.NewRobotgoPointer(), func() {}, nil
}

func runBot(cmd *cobra.Command, args []string) error {
	// init конфигурации
	cfg, err := config.InitConfig()
	if err != nil {
		return err
	}

	// Инициализация логгера
	loggerManager, err := logger.NewLoggerManager(cfg.LogFilePath)
	if err != nil {
		return fmt.Errorf("error initializing logger: %w", err)
	}
	defer loggerManager.Close()

	loggerManager.Info("🚀 Запуск minibot")

	if err := screen.RequireDisplay(); err != nil {
		return fmt.Errorf("%w; для разметки скриншота используйте: minibot debug annotate <image>", err)
	}

	pointer, closePointer, err := newPointer(cfg, loggerManager)
	if err != nil {
		loggerManager.LogError(err, "Error opening pointer device")
		return err
	}
	defer closePointer()

	// Инициализация всех менеджеров
	screenManager := screen.NewScreenManager()
	clickManager := click_manager.NewClickManager(pointer, cfg.Timing, loggerManager)
	probe := vision.NewProbe(screenManager, cfg.Geometry)
	control := interrupt.NewRunControl()

	layout, err := bracing.LayoutFromCenters(cfg.Geometry.GridCenters)
	if err != nil {
		return err
	}
	breathMin, breathMax := cfg.Timing.BreathSleep.Durations()
	bracingController := bracing.NewController(
		bracing.NewSampler(screenManager, layout, cfg.Bracing.SampleRadius),
		bracing.NewExecutor(layout, clickManager, cfg.Timing.BreathEveryNMoves, breathMin, breathMax, loggerManager),
		probe,
		cfg.Bracing.MaxDepth,
		cfg.Bracing.ConfirmFrames,
		config.Seconds(cfg.Bracing.ConfirmSpacing),
		loggerManager,
	)

	patchingController := patching.NewController(
		patching.NewDetector(screenManager, patching.ScanRegion(cfg.Geometry), cfg.Patching),
		clickManager,
		probe,
		cfg.Patching,
		cfg.Patching.ConfirmFrames,
		config.Seconds(cfg.Patching.ConfirmSpacing),
		loggerManager,
	)

	hammeringController := hammering.NewController(
		hammering.NewNailFinder(screenManager, hammering.BoxRegion(cfg.Geometry), cfg.Hammering),
		clickManager,
		probe,
		cfg.Hammering,
		cfg.Hammering.ConfirmFrames,
		config.Seconds(cfg.Hammering.ConfirmSpacing),
		loggerManager,
	)

	scrubbingController := scrubbing.NewController(
		scrubbing.NewBoard(screenManager, cfg.Scrubbing),
		clickManager,
		probe,
		cfg.Scrubbing,
		cfg.Scrubbing.ConfirmFrames,
		config.Seconds(cfg.Scrubbing.ConfirmSpacing),
		loggerManager,
	)

	sawingController := sawing.NewController(sawing.NewMatcher(screenManager, cfg.Sawing), clickManager, cfg.Sawing, loggerManager)

	bot, err := minigames.NewBot(control, clickManager, cfg, loggerManager)
	if err != nil {
		return err
	}
	bot.Register(types.Bracing, minigames.SolverFunc(func(lease interrupt.Lease) (bool, error) {
		return bracingController.Solve(lease)
	}))
	bot.Register(types.Patching, minigames.SolverFunc(func(lease interrupt.Lease) (bool, error) {
		return patchingController.Solve(lease)
	}))
	bot.Register(types.Hammering, minigames.SolverFunc(func(lease interrupt.Lease) (bool, error) {
		return hammeringController.Solve(lease)
	}))
	bot.Register(types.Scrubbing, minigames.SolverFunc(func(lease interrupt.Lease) (bool, error) {
		return scrubbingController.Solve(lease)
	}))
	bot.Register(types.Sawing, minigames.SolverFunc(func(lease interrupt.Lease) (bool, error) {
		return sawingController.Solve(lease)
	}))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	// Подключение к базе данных
	if cfg.SaveToDB == 1 {
		dbManager, err := database.Connect(cfg.DatabaseDriver, cfg.DatabaseDSN, loggerManager)
		if err != nil {
			loggerManager.LogError(err, "Error connecting to database")
			return err
		}
		defer dbManager.Close()
		loggerManager.Info("✅ Успешное подключение к базе данных")

		bot.SetJournal(dbManager)
		if err := dbManager.UpdateStatus(database.StatusIdle); err != nil {
			loggerManager.LogError(err, "Ошибка обновления статуса")
		}
		remote := minigames.NewRemoteControl(dbManager, control, config.Seconds(cfg.ActionPollS), loggerManager)
		g.Go(func() error { return remote.Run(ctx) })
	}

	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		server := &http.Server{Addr: cfg.MetricsAddr, Handler: mux}
		g.Go(func() error {
			loggerManager.Info("📈 Метрики на http://%s/metrics", cfg.MetricsAddr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			return server.Shutdown(context.Background())
		})
	}

	// Инициализация менеджера прерываний
	interruptManager := interrupt.NewInterruptManager(control, loggerManager)
	if err := interruptManager.StartMonitoring(); err != nil {
		if !errors.Is(err, interrupt.ErrHotkeysUnsupported) {
			return err
		}
		loggerManager.Info("⚠️ Горячие клавиши недоступны на этой платформе, управление только через базу данных")
	}

	loggerManager.Info("⏸️ Программа готова к работе")
	loggerManager.Info("🔥 Горячие клавиши: 1 scrubbing, 2 sawing, 3 bracing, 4 hammering, 5 patching, F1 все по кругу, F11 стоп")

	g.Go(func() error { return bot.Run(ctx) })
	g.Go(func() error {
		// решатели смотрят только на флаг запуска
		<-ctx.Done()
		control.Stop()
		return nil
	})

	return g.Wait()
}
