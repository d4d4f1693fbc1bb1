package httpserver

import (
	"fmt"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func TestClientLimiterIsolatesClients(t *testing.T) {
	l := NewClientLimiter(rate.Every(time.Hour), 2)

	for i := 0; i < 2; i++ {
		if !l.Allow("10.0.0.1") {
			t.Fatalf("attempt %d within burst rejected", i)
		}
	}
	if l.Allow("10.0.0.1") {
		t.Fatalf("attempt beyond burst allowed")
	}
	if !l.Allow("10.0.0.2") {
		t.Fatalf("second client throttled by the first")
	}
}

func TestClientLimiterRefills(t *testing.T) {
	now := time.Unix(1700000000, 0)
	l := NewClientLimiter(rate.Every(time.Second), 1)
	l.now = func() time.Time { return now }

	if !l.Allow("a") || l.Allow("a") {
		t.Fatalf("burst of 1 not enforced")
	}
	now = now.Add(time.Second)
	if !l.Allow("a") {
		t.Fatalf("token not refilled after one interval")
	}
}

func TestClientLimiterBoundsTable(t *testing.T) {
	now := time.Unix(1700000000, 0)
	l := NewClientLimiter(rate.Every(time.Second), 1)
	l.now = func() time.Time { return now }

	for i := 0; i < limiterMaxClients; i++ {
		l.Allow(fmt.Sprintf("old-%d", i))
	}
	now = now.Add(limiterIdle + time.Minute)
	l.Allow("fresh")

	if got := l.size(); got != 1 {
		t.Fatalf("idle clients not swept: %d left", got)
	}
}
