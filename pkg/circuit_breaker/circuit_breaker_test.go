package circuit_breaker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }
func okService() error                   { return nil }
func failService() error                 { return errors.New("service error") }

func Test_circuitBreaker_Call(t *testing.T) {
	type fields struct {
		recordLength     int
		timeout          time.Duration
		percentile       float64
		recoveryRequests int
	}
	tests := []struct {
		name   string
		fields fields
		run    func(t *testing.T, cb *circuitBreaker, c *clock)
	}{
		{
			name:   "successful calls keep it closed",
			fields: fields{recordLength: 10, timeout: 2 * time.Second, percentile: 0.3, recoveryRequests: 3},
			run: func(t *testing.T, cb *circuitBreaker, _ *clock) {
				for i := 0; i < 80; i++ {
					require.NoError(t, cb.Call(okService))
				}
				require.Equal(t, Closed, cb.State())
			},
		},
		{
			name:   "opens on failure ratio and fails fast",
			fields: fields{recordLength: 10, timeout: 2 * time.Second, percentile: 0.3, recoveryRequests: 3},
			run: func(t *testing.T, cb *circuitBreaker, _ *clock) {
				for i := 0; i < 3; i++ {
					require.Error(t, cb.Call(failService))
				}
				require.Equal(t, Open, cb.State())

				called := false
				err := cb.Call(func() error { called = true; return nil })
				require.ErrorIs(t, err, ErrOpenCB)
				require.False(t, called)
			},
		},
		{
			name:   "recovers through half-open",
			fields: fields{recordLength: 10, timeout: 2 * time.Second, percentile: 0.3, recoveryRequests: 3},
			run: func(t *testing.T, cb *circuitBreaker, c *clock) {
				for i := 0; i < 3; i++ {
					_ = cb.Call(failService)
				}
				require.Equal(t, Open, cb.State())

				c.advance(3 * time.Second)
				require.NoError(t, cb.Call(okService))
				require.Equal(t, HalfOpen, cb.State())
				require.NoError(t, cb.Call(okService))
				require.NoError(t, cb.Call(okService))
				require.Equal(t, Closed, cb.State())
			},
		},
		{
			name:   "half-open failure opens again",
			fields: fields{recordLength: 10, timeout: 2 * time.Second, percentile: 0.3, recoveryRequests: 3},
			run: func(t *testing.T, cb *circuitBreaker, c *clock) {
				for i := 0; i < 3; i++ {
					_ = cb.Call(failService)
				}
				c.advance(3 * time.Second)
				require.Error(t, cb.Call(failService))
				require.Equal(t, Open, cb.State())
				require.ErrorIs(t, cb.Call(okService), ErrOpenCB)
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			c := &clock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
			cb := newCircuitBreaker(tt.fields.recordLength, tt.fields.timeout, tt.fields.percentile, tt.fields.recoveryRequests, c.now)
			tt.run(t, cb, c)
		})
	}
}
