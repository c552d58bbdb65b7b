package assistant

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aura/internal/launcher"
)

// harness wires an Assistant to recording fakes. Every collaborator
// succeeds unless the test overrides it.
type harness struct {
	a      *Assistant
	spoken []string
	opened []string
	apps   []string
	mails  int
}

func newHarness(t *testing.T, answers ...string) *harness {
	t.Helper()

	h := &harness{}
	i := 0
	h.a = New(Collaborators{
		Listen: func(_, _ time.Duration) string {
			if i >= len(answers) {
				return ""
			}
			a := answers[i]
			i++
			return a
		},
		Speak:   func(s string) { h.spoken = append(h.spoken, s) },
		OpenURL: func(u string) error { h.opened = append(h.opened, u); return nil },
		LaunchApp: func(k string) error {
			h.apps = append(h.apps, k)
			return nil
		},
		Summary: func(_ context.Context, topic string) (string, error) {
			return "summary of " + topic, nil
		},
		Weather: func(_ context.Context, city string) (string, error) {
			return "Weather in " + city + ": clear sky.", nil
		},
		SendMail: func(_, _, _ string) error { h.mails++; return nil },
		Now: func() time.Time {
			return time.Date(2024, 5, 4, 15, 4, 0, 0, time.UTC)
		},
	})
	return h
}

func TestDispatch_TimeAndDate(t *testing.T) {
	h := newHarness(t)

	h.a.Dispatch("what time is it")
	h.a.Dispatch("what day is it today")

	assert.Equal(t, []string{
		"The time is 03:04 PM",
		"Today is Saturday, May 04, 2024",
	}, h.spoken)
}

func TestDispatch_OpenWebsite(t *testing.T) {
	h := newHarness(t)

	h.a.Dispatch("open youtube")

	require.Equal(t, []string{"https://youtube.com"}, h.opened)
	assert.Contains(t, h.spoken, "Opening https://youtube.com")
}

func TestDispatch_OpenApp(t *testing.T) {
	h := newHarness(t)

	h.a.Dispatch("launch calculator now")
	assert.Equal(t, []string{"calculator"}, h.apps)
	assert.Contains(t, h.spoken, "Opening calculator")
}

func TestDispatch_OpenAppEmptyKeyRejected(t *testing.T) {
	h := newHarness(t)

	h.a.Dispatch("launch ")
	assert.Empty(t, h.apps, "empty app key must never reach the launcher")
	assert.Contains(t, h.spoken, "Please say the application name after launch.")
}

func TestDispatch_OpenAppFailures(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"unknown app", fmt.Errorf("%w: foo", launcher.ErrUnknownApp), "I don't have a mapping for notepad."},
		{"no platform command", fmt.Errorf("%w: foo", launcher.ErrNoCommand), "No command configured for your platform."},
		{"start failure", errors.New("exec: not found"), "Could not open the application."},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t)
			h.a.c.LaunchApp = func(string) error { return tc.err }

			h.a.Dispatch("launch notepad")
			assert.Contains(t, h.spoken, tc.want)
		})
	}
}

func TestDispatch_Encyclopedia(t *testing.T) {
	h := newHarness(t)

	h.a.Dispatch("who is ada lovelace")
	assert.Equal(t, []string{
		"Searching Wikipedia for ada lovelace",
		"summary of ada lovelace",
	}, h.spoken)
}

func TestDispatch_EncyclopediaFailure(t *testing.T) {
	h := newHarness(t)
	h.a.c.Summary = func(context.Context, string) (string, error) {
		return "", errors.New("404")
	}

	h.a.Dispatch("tell me about nonsense")
	assert.Contains(t, h.spoken, "Sorry, I couldn't find that on Wikipedia.")
}

func TestDispatch_Weather(t *testing.T) {
	h := newHarness(t)

	h.a.Dispatch("weather in london")
	assert.Contains(t, h.spoken, "Weather in london: clear sky.")
}

func TestDispatch_WeatherFailure(t *testing.T) {
	h := newHarness(t)
	h.a.c.Weather = func(context.Context, string) (string, error) {
		return "", errors.New("network down")
	}

	h.a.Dispatch("weather in london")
	assert.Contains(t, h.spoken, "Failed to get weather.")
}

func TestDispatch_WeatherMissingCityPrompts(t *testing.T) {
	h := newHarness(t)

	h.a.Dispatch("weather")
	assert.Contains(t, h.spoken, "Please include the city after 'in', e.g. 'weather in Delhi'.")
	assert.Empty(t, h.opened, "missing city must not fall back to web search")
}

func TestDispatch_FallbackSearch(t *testing.T) {
	h := newHarness(t)

	h.a.Dispatch("play some jazz")
	require.Len(t, h.opened, 1)
	assert.Equal(t, "https://www.google.com/search?q=play+some+jazz", h.opened[0])
}

func TestDispatch_ExitEndsSession(t *testing.T) {
	h := newHarness(t)

	done := h.a.Dispatch("goodbye")
	assert.True(t, done)
	assert.Contains(t, h.spoken, "Goodbye!")
}

// Compose email hands the microphone to the dialog controller until the
// conversation resolves; the next top-level turn only happens after.
func TestDispatch_ComposeEmail(t *testing.T) {
	h := newHarness(t, "a@b.com", "hi", "test body", "yes")

	done := h.a.Dispatch("send an email")
	assert.False(t, done)
	assert.Equal(t, 1, h.mails)
	assert.Contains(t, h.spoken, "Email sent successfully.")
}

func TestTurn_SilenceIsNoOp(t *testing.T) {
	h := newHarness(t) // listen always returns ""

	done := h.a.Turn()
	assert.False(t, done)
	assert.Empty(t, h.spoken, "silence must not be classified")
}

func TestRun_StopBetweenTurns(t *testing.T) {
	h := newHarness(t)
	h.a.Stop()

	finished := make(chan struct{})
	go func() {
		h.a.Run()
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not honor Stop")
	}
	assert.Contains(t, h.spoken, "Goodbye!")
}
