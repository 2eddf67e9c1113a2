// internal/middleware/rate_limit_test.go
package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestClientLimiterExhaustsBurst(t *testing.T) {
	cl := newClientLimiter(rate.Every(time.Hour), 2)

	assert.True(t, cl.allow("10.0.0.1"))
	assert.True(t, cl.allow("10.0.0.1"))
	assert.False(t, cl.allow("10.0.0.1"))
}

func TestClientLimiterIsolatesClients(t *testing.T) {
	cl := newClientLimiter(rate.Every(time.Hour), 1)

	assert.True(t, cl.allow("10.0.0.1"))
	assert.False(t, cl.allow("10.0.0.1"))
	assert.True(t, cl.allow("10.0.0.2"))
}
