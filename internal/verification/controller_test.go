package verification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock advances instantly on After so poll loops run without waiting.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) After(d time.Duration) <-chan time.Time {
	f.now = f.now.Add(d)
	ch := make(chan time.Time, 1)
	ch <- f.now
	return ch
}

// scriptedGateway replays a fixed sequence of poll answers; the last answer
// repeats forever.
type scriptedGateway struct {
	challenge string
	answers   []func() (SessionState, error)
	polls     int
}

func (g *scriptedGateway) CreateSession(_ context.Context, _ RequestedAttributes) (CreatedSession, error) {
	return CreatedSession{ID: "sess-1", Challenge: g.challenge}, nil
}

func (g *scriptedGateway) GetSession(_ context.Context, _ string) (SessionState, error) {
	idx := g.polls
	if idx >= len(g.answers) {
		idx = len(g.answers) - 1
	}
	g.polls++
	return g.answers[idx]()
}

func pending() func() (SessionState, error) {
	return func() (SessionState, error) { return SessionState{Status: GatewayPending}, nil }
}

func succeededWith(claims map[string]any) func() (SessionState, error) {
	return func() (SessionState, error) {
		return SessionState{Status: GatewaySucceeded, Claims: claims}, nil
	}
}

func gatewayDown() func() (SessionState, error) {
	return func() (SessionState, error) { return SessionState{}, errors.New("connection refused") }
}

func newTestController(gw Gateway, clock Clock) *Controller {
	return NewController(gw, Config{
		PollInterval: 3 * time.Second,
		Ceiling:      30 * time.Second,
		RetryBackoff: 2 * time.Second,
		Clock:        clock,
	}, nil, nil)
}

var ageOver18 = RequestedAttributes{"ageOver18": {BoolPresence: true}}

func TestControllerHappyPath(t *testing.T) {
	gw := &scriptedGateway{
		challenge: "openid4vp://authorize?request=...",
		answers: []func() (SessionState, error){
			pending(),
			pending(),
			succeededWith(map[string]any{"age_over_18": true}),
		},
	}
	c := newTestController(gw, newFakeClock())

	challenge, err := c.Start(context.Background(), ageOver18)
	require.NoError(t, err)
	assert.Equal(t, gw.challenge, challenge)
	assert.Equal(t, StatusAwaitingPresentation, c.Status())

	outcome := c.Run(context.Background())

	assert.Equal(t, StatusSucceeded, outcome.Status)
	assert.Equal(t, StatusSucceeded, c.Status())
	assert.Equal(t, 3, gw.polls)
	assert.Contains(t, outcome.Claims, "age_over_18")
}

func TestControllerDowngradesGatewaySuccessOnPolicyMismatch(t *testing.T) {
	gw := &scriptedGateway{
		answers: []func() (SessionState, error){
			succeededWith(map[string]any{"age_over_18": "false"}),
		},
	}
	c := newTestController(gw, newFakeClock())

	_, err := c.Start(context.Background(), ageOver18)
	require.NoError(t, err)

	outcome := c.Run(context.Background())

	assert.Equal(t, StatusFailed, outcome.Status, "gateway success does not outrank local re-verification")
	assert.NotEmpty(t, outcome.Reason)
}

func TestControllerExpectedValueMismatch(t *testing.T) {
	gw := &scriptedGateway{
		answers: []func() (SessionState, error){
			succeededWith(map[string]any{"issuing_country": "DE"}),
		},
	}
	c := newTestController(gw, newFakeClock())

	_, err := c.Start(context.Background(), RequestedAttributes{
		"issuingCountry": {Expected: "FR"},
	})
	require.NoError(t, err)

	outcome := c.Run(context.Background())
	assert.Equal(t, StatusFailed, outcome.Status)
}

func TestControllerWalletFailure(t *testing.T) {
	gw := &scriptedGateway{
		answers: []func() (SessionState, error){
			func() (SessionState, error) { return SessionState{Status: GatewayFailed}, nil },
		},
	}
	c := newTestController(gw, newFakeClock())

	_, err := c.Start(context.Background(), ageOver18)
	require.NoError(t, err)

	outcome := c.Run(context.Background())
	assert.Equal(t, StatusFailed, outcome.Status)
}

func TestControllerTimesOutAtCeilingExactly(t *testing.T) {
	clock := newFakeClock()
	start := clock.Now()

	gw := &scriptedGateway{answers: []func() (SessionState, error){pending()}}
	c := newTestController(gw, clock)

	_, err := c.Start(context.Background(), ageOver18)
	require.NoError(t, err)

	outcome := c.Run(context.Background())

	assert.Equal(t, StatusTimedOut, outcome.Status)
	assert.Equal(t, start.Add(30*time.Second), clock.Now(), "wakes exactly at the ceiling, not after")
	// Polls at t=0,3,...,27; the last sleep is clamped to the ceiling.
	assert.Equal(t, 10, gw.polls)
}

func TestControllerRetriesGatewayErrorOnce(t *testing.T) {
	gw := &scriptedGateway{
		answers: []func() (SessionState, error){
			gatewayDown(),
			succeededWith(map[string]any{"age_over_18": "yes"}),
		},
	}
	c := newTestController(gw, newFakeClock())

	_, err := c.Start(context.Background(), ageOver18)
	require.NoError(t, err)

	outcome := c.Run(context.Background())
	assert.Equal(t, StatusSucceeded, outcome.Status)
	assert.Equal(t, 2, gw.polls)
}

func TestControllerSurfacesRepeatedGatewayErrorAsFailed(t *testing.T) {
	gw := &scriptedGateway{
		answers: []func() (SessionState, error){gatewayDown()},
	}
	c := newTestController(gw, newFakeClock())

	_, err := c.Start(context.Background(), ageOver18)
	require.NoError(t, err)

	outcome := c.Run(context.Background())
	assert.Equal(t, StatusFailed, outcome.Status)
	assert.Equal(t, 2, gw.polls, "exactly one retry before surfacing")
}

func TestControllerCancellation(t *testing.T) {
	gw := &scriptedGateway{answers: []func() (SessionState, error){pending()}}
	c := newTestController(gw, newFakeClock())

	_, err := c.Start(context.Background(), ageOver18)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcome := c.Run(ctx)
	assert.Equal(t, StatusCancelled, outcome.Status, "cancellation is distinct from timeout")
	assert.Zero(t, gw.polls, "cancellation is checked before the first poll")
}

func TestControllerStatusIsSafeDuringRun(t *testing.T) {
	answers := make([]func() (SessionState, error), 0, 6)
	for i := 0; i < 5; i++ {
		answers = append(answers, pending())
	}
	answers = append(answers, succeededWith(map[string]any{"age_over_18": true}))

	gw := &scriptedGateway{answers: answers}
	c := newTestController(gw, newFakeClock())

	_, err := c.Start(context.Background(), ageOver18)
	require.NoError(t, err)

	// A status reader races Run the way an HTTP poll handler does; run
	// with -race to catch unsynchronized state machine access.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for c.Status() != StatusSucceeded {
		}
	}()

	outcome := c.Run(context.Background())
	<-done

	assert.Equal(t, StatusSucceeded, outcome.Status)
	assert.Equal(t, StatusSucceeded, c.Status())
}

func TestControllerIsSingleUse(t *testing.T) {
	gw := &scriptedGateway{answers: []func() (SessionState, error){pending()}}
	c := newTestController(gw, newFakeClock())

	_, err := c.Start(context.Background(), ageOver18)
	require.NoError(t, err)

	_, err = c.Start(context.Background(), ageOver18)
	require.Error(t, err, "a flow retries by building a fresh controller")
}

func TestControllerRequiresAttributes(t *testing.T) {
	gw := &scriptedGateway{answers: []func() (SessionState, error){pending()}}
	c := newTestController(gw, newFakeClock())

	_, err := c.Start(context.Background(), nil)
	require.Error(t, err)
}
