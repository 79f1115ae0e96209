package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type reloaderStub struct {
	calls int
	err   error
}

func (r *reloaderStub) Reload(ctx context.Context) error {
	r.calls++
	return r.err
}

type sweeperStub struct {
	maxIdle time.Duration
}

func (s *sweeperStub) Sweep(maxIdle time.Duration) int {
	s.maxIdle = maxIdle
	return 2
}

type purgerStub struct {
	calls int
}

func (p *purgerStub) Purge() int {
	p.calls++
	return 0
}

func TestScheduler_Jobs(t *testing.T) {
	rates := &reloaderStub{}
	sessions := &sweeperStub{}
	purger := &purgerStub{}
	s := New(Config{SessionIdleTimeout: 30 * time.Minute}, rates, sessions, purger)

	s.RefreshRates()
	assert.Equal(t, 1, rates.calls)

	rates.err = errors.New("db down")
	assert.NotPanics(t, s.RefreshRates)
	assert.Equal(t, 2, rates.calls)

	s.Sweep()
	assert.Equal(t, 30*time.Minute, sessions.maxIdle)
	assert.Equal(t, 1, purger.calls)
}

func TestScheduler_SweepWithoutDeps(t *testing.T) {
	s := New(Config{}, nil, nil, nil)
	assert.NotPanics(t, s.Sweep)
}

func TestScheduler_StartStop(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := New(Config{
		RateRefreshSchedule:  "@every 1h",
		SessionSweepSchedule: "@every 1m",
	}, &reloaderStub{}, &sweeperStub{}, nil)
	require.NoError(t, s.Start())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}

func TestScheduler_BadSchedule(t *testing.T) {
	s := New(Config{RateRefreshSchedule: "every now and then"}, &reloaderStub{}, nil, nil)
	assert.Error(t, s.Start())
}
