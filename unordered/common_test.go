package unordered_test

import (
	"flag"
	"fmt"
	"iter"
	"os"
	"testing"
	"time"

	"github.com/ddirect/aged"
	"github.com/ddirect/aged/unordered"
)

type LogFunc func(t *testing.T, data []byte)

var logFile string

func init() {
	flag.StringVar(&logFile, "logfile", "", "logfile to use")
}

func makeLogFunc(logFile string) LogFunc {
	if logFile == "" {
		return func(t *testing.T, data []byte) {
			t.Logf("%s\n", data)
		}
	}

	logout, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		panic(fmt.Errorf("open: %w", err))
	}

	return func(t *testing.T, data []byte) {
		if _, err := logout.Write(append(data, '\n')); err != nil {
			panic(fmt.Errorf("write: %w", err))
		}
	}
}

func newClock() *aged.Manual {
	return aged.NewManual(time.Unix(0, 0))
}

func keys[K, V any](seq iter.Seq[*unordered.Item[K, V]]) []K {
	var ks []K
	for it := range seq {
		ks = append(ks, it.Key())
	}
	return ks
}
