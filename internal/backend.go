package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fanduty/fanduty/internal/api"
	"github.com/fanduty/fanduty/internal/configuration"
	"github.com/fanduty/fanduty/internal/controller"
	"github.com/fanduty/fanduty/internal/duty"
	"github.com/fanduty/fanduty/internal/heartbeat"
	"github.com/fanduty/fanduty/internal/statistics"
	"github.com/fanduty/fanduty/internal/ui"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// id of the single control loop
	LoopId = "fan"

	shutdownTimeout = 5 * time.Second
)

func RunDaemon() {
	config := configuration.CurrentConfig
	if os.Geteuid() != 0 && (config.Pwm.Sysfs != nil || config.Indicator.Sysfs != nil) {
		ui.Warning("Not running as root, sysfs pwm and led access will likely fail")
	}

	// ui.Fatal exits without running deferred calls
	loop, closers, err := CreateLoop(config)
	if err != nil {
		closeAll(closers)
		ui.Fatal("%v", err)
	}
	defer closeAll(closers)

	if err := loop.Init(); err != nil {
		closeAll(closers)
		ui.Fatal("Unable to draw display label: %v", err)
	}

	statistics.Register(statistics.NewControllerCollector(controller.SnapshotMap))

	ctx, cancel := context.WithCancel(context.Background())

	var g run.Group
	{
		// === control loop
		g.Add(func() error {
			err := loop.Run(ctx)
			ui.Info("Control loop %s stopped.", loop.Id())
			return err
		}, func(err error) {
			cancel()
		})
	}
	if config.Statistics.Enabled {
		// === Prometheus Exporter
		port := config.Statistics.Port
		if port <= 0 || port >= 65535 {
			port = 9000
		}
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		server := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
		g.Add(func() error {
			ui.Info("Serving metrics on %s/metrics", server.Addr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("cannot start prometheus metrics endpoint: %w", err)
			}
			return nil
		}, func(err error) {
			shutdownServer("statistics", server.Shutdown)
		})
	}
	if config.Api.Enabled {
		// === REST API
		rest, err := api.CreateRestService(prometheus.DefaultRegisterer)
		if err != nil {
			closeAll(closers)
			ui.Fatal("Unable to create api: %v", err)
		}
		addr := fmt.Sprintf("%s:%d", config.Api.Host, config.Api.Port)
		g.Add(func() error {
			ui.Info("Serving api on %s", addr)
			if err := rest.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("cannot start api: %w", err)
			}
			return nil
		}, func(err error) {
			shutdownServer("api", rest.Shutdown)
		})
	}
	{
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

		g.Add(func() error {
			select {
			case s := <-sig:
				ui.Info("Received %s signal, exiting...", s)
			case <-ctx.Done():
			}
			return nil
		}, func(err error) {
			signal.Stop(sig)
			cancel()
		})
	}

	if err := g.Run(); err != nil {
		closeAll(closers)
		ui.Fatal("%v", err)
	}
	ui.Info("Done.")
}

// CreateLoop builds the control loop and its peripherals from config.
// The returned closers release the peripherals once the loop has stopped.
// On error they hold every peripheral opened before the failure.
func CreateLoop(config configuration.Configuration) (*controller.Loop, []io.Closer, error) {
	var closers []io.Closer

	mapper, err := duty.NewMapper(config.Analog.FullScale, config.Duty.Thresholds())
	if err != nil {
		return nil, closers, err
	}
	threshold, err := heartbeat.Threshold(config.HeartbeatPeriod, config.TickPeriod)
	if err != nil {
		return nil, closers, err
	}

	input, inputCloser, err := NewAnalogInput(config.Analog)
	if err != nil {
		return nil, closers, err
	}
	closers = append(closers, inputCloser)

	driver, err := NewPwmDriver(config.Pwm)
	if err != nil {
		return nil, closers, err
	}

	presenter, presenterCloser, err := NewPresenter(config.Display)
	if err != nil {
		return nil, closers, err
	}
	closers = append(closers, presenterCloser)

	logger := ui.Logger()
	led, err := NewIndicator(config.Indicator, logger)
	if err != nil {
		return nil, closers, err
	}

	loop, err := controller.NewLoop(controller.Config{
		Id:                 LoopId,
		TickPeriod:         config.TickPeriod,
		HeartbeatThreshold: threshold,
		WindowSize:         config.Analog.WindowSize,
		ShutdownDuty:       config.Pwm.ShutdownDuty,
	}, mapper, controller.Peripherals{
		Input:     input,
		Pwm:       driver,
		Presenter: presenter,
		Indicator: led,
	}, controller.TimerSleeper{}, logger)
	if err != nil {
		return nil, closers, err
	}
	return loop, closers, nil
}

func shutdownServer(name string, shutdown func(ctx context.Context) error) {
	ui.Info("Stopping %s server...", name)
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		ui.Warning("Error stopping %s server: %v", name, err)
	} else {
		ui.Info("%s server stopped.", name)
	}
}

func closeAll(closers []io.Closer) {
	for _, closer := range closers {
		if err := closer.Close(); err != nil {
			ui.Warning("Error releasing peripheral: %v", err)
		}
	}
}
