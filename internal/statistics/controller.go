package statistics

import (
	"github.com/fanduty/fanduty/internal/controller"
	"github.com/fanduty/fanduty/internal/pwm"
	cmap "github.com/orcaman/concurrent-map/v2"
	"github.com/prometheus/client_golang/prometheus"
)

const controllerSubsystem = "controller"

// ControllerCollector exports the latest snapshot of every control loop.
type ControllerCollector struct {
	snapshots cmap.ConcurrentMap[string, controller.Snapshot]

	sample          *prometheus.Desc
	sampleAvg       *prometheus.Desc
	duty            *prometheus.Desc
	compare         *prometheus.Desc
	pwmActive       *prometheus.Desc
	heartbeat       *prometheus.Desc
	iterations      *prometheus.Desc
	inputErrors     *prometheus.Desc
	displayErrors   *prometheus.Desc
	pwmErrors       *prometheus.Desc
	indicatorErrors *prometheus.Desc
}

func NewControllerCollector(snapshots cmap.ConcurrentMap[string, controller.Snapshot]) *ControllerCollector {
	desc := func(name string, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, name), help, []string{"id"}, nil)
	}
	return &ControllerCollector{
		snapshots:       snapshots,
		sample:          desc("sample", "Latest raw analog sample"),
		sampleAvg:       desc("sample_avg", "Moving average of the raw analog sample"),
		duty:            desc("duty", "Duty cycle in percent applied by the latest iteration"),
		compare:         desc("compare", "PWM compare value applied by the latest iteration"),
		pwmActive:       desc("pwm_active", "1 if the PWM output is active, 0 if it is disabled"),
		heartbeat:       desc("heartbeat", "Current heartbeat indicator level"),
		iterations:      desc("iterations_total", "Number of control loop iterations"),
		inputErrors:     desc("input_errors_total", "Number of failed analog reads"),
		displayErrors:   desc("display_errors_total", "Number of skipped display frames"),
		pwmErrors:       desc("pwm_errors_total", "Number of failed PWM writes"),
		indicatorErrors: desc("indicator_errors_total", "Number of failed heartbeat indicator toggles"),
	}
}

func (collector *ControllerCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.sample
	ch <- collector.sampleAvg
	ch <- collector.duty
	ch <- collector.compare
	ch <- collector.pwmActive
	ch <- collector.heartbeat
	ch <- collector.iterations
	ch <- collector.inputErrors
	ch <- collector.displayErrors
	ch <- collector.pwmErrors
	ch <- collector.indicatorErrors
}

// Collect implements required collect function for all prometheus collectors
func (collector *ControllerCollector) Collect(ch chan<- prometheus.Metric) {
	for id, snapshot := range collector.snapshots.Items() {
		gauge := func(desc *prometheus.Desc, value float64) {
			ch <- prometheus.MustNewConstMetric(desc, prometheus.GaugeValue, value, id)
		}
		counter := func(desc *prometheus.Desc, value uint64) {
			ch <- prometheus.MustNewConstMetric(desc, prometheus.CounterValue, float64(value), id)
		}

		gauge(collector.sample, float64(snapshot.Sample))
		gauge(collector.sampleAvg, snapshot.SampleAvg)
		gauge(collector.duty, float64(snapshot.Duty))
		gauge(collector.compare, float64(snapshot.Pwm.Compare))
		gauge(collector.pwmActive, boolToFloat(snapshot.Pwm.Mode == pwm.ModeActive))
		gauge(collector.heartbeat, boolToFloat(snapshot.HeartbeatOn))

		stats := snapshot.Statistics
		counter(collector.iterations, stats.Iterations)
		counter(collector.inputErrors, stats.InputErrors)
		counter(collector.displayErrors, stats.DisplayErrors)
		counter(collector.pwmErrors, stats.PwmErrors)
		counter(collector.indicatorErrors, stats.IndicatorErrors)
	}
}

func boolToFloat(value bool) float64 {
	if value {
		return 1
	}
	return 0
}
