package logger

import (
	"testing"

	"github.com/ethereum/go-ethereum/log"
)

// SetTestMode sets test mode.
func SetTestMode(t testing.TB) {
	log.Root().SetHandler(
		log.CallerStackHandler("%v", TestHandler(t, log.LogfmtFormat())))
	Telemetry().SetOutput(testWriter{t})
}

// TestHandler writes into test log.
func TestHandler(t testing.TB, fmtr log.Format) log.Handler {
	return log.FuncHandler(func(r *log.Record) error {
		t.Log(string(fmtr.Format(r)))
		return nil
	})
}

type testWriter struct {
	t testing.TB
}

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(string(p))
	return len(p), nil
}
