package metricspkg

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestDeposits(t *testing.T) {
	reg := prometheus.NewRegistry()

	d, err := NewDeposits(reg)
	if err != nil {
		t.Fatalf("NewDeposits() returned error: %v", err)
	}

	d.ObserveDeposit(OutcomeCommitted, time.Millisecond)
	d.ObserveDeposit(OutcomeCommitted, time.Millisecond)
	d.ObserveDeposit(OutcomeRejected, time.Millisecond)
	d.ObserveRetry()

	if got := testutil.ToFloat64(d.total.WithLabelValues(OutcomeCommitted)); got != 2 {
		t.Errorf("committed deposits = %v, want 2", got)
	}

	if got := testutil.ToFloat64(d.total.WithLabelValues(OutcomeRejected)); got != 1 {
		t.Errorf("rejected deposits = %v, want 1", got)
	}

	if got := testutil.ToFloat64(d.retries); got != 1 {
		t.Errorf("retries = %v, want 1", got)
	}

	if got := testutil.CollectAndCount(d.duration); got != 2 {
		t.Errorf("duration series = %v, want 2", got)
	}
}

func TestNewDepositsDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()

	if _, err := NewDeposits(reg); err != nil {
		t.Fatalf("NewDeposits() returned error: %v", err)
	}

	if _, err := NewDeposits(reg); err == nil {
		t.Error("second NewDeposits() on the same registry returned nil error, want error")
	}
}
