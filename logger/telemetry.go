package logger

import (
	"io/ioutil"
	"sync"

	"github.com/evalphobia/logrus_sentry"
	"github.com/sirupsen/logrus"
)

// TelemetryConfig configures the reporting of internal faults.
type TelemetryConfig struct {
	// SentryDSN enables the sentry hook when not empty.
	SentryDSN string `toml:",omitempty"`
}

var (
	telemetry     = newTelemetry()
	telemetryLock sync.Mutex
)

func newTelemetry() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(ioutil.Discard)
	l.SetFormatter(&logrus.JSONFormatter{})
	return l
}

// Telemetry returns the logger used for faults which must never happen
// (broken ledger invariants). It discards output until configured.
func Telemetry() *logrus.Logger {
	telemetryLock.Lock()
	defer telemetryLock.Unlock()
	return telemetry
}

// SetupTelemetry attaches the configured hooks.
func SetupTelemetry(cfg TelemetryConfig) error {
	if cfg.SentryDSN == "" {
		return nil
	}
	hook, err := logrus_sentry.NewSentryHook(cfg.SentryDSN, []logrus.Level{
		logrus.PanicLevel,
		logrus.FatalLevel,
		logrus.ErrorLevel,
	})
	if err != nil {
		return err
	}
	Telemetry().AddHook(hook)
	return nil
}

// ReportFault sends an internal fault to telemetry.
func ReportFault(module string, err error, fields logrus.Fields) {
	entry := Telemetry().WithField("module", module).WithError(err)
	if len(fields) != 0 {
		entry = entry.WithFields(fields)
	}
	entry.Error("internal fault")
}
