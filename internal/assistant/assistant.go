// Package assistant owns the turn loop: listen, classify, dispatch. All
// side effects go through the Collaborators bundle, constructed once at
// process start and threaded through every handler.
package assistant

import (
	"context"
	"errors"
	log "log/slog"
	"time"

	"aura/internal/dialog"
	"aura/internal/intent"
	"aura/internal/launcher"
)

// Default top-level listen window and the idle pause between turns.
const (
	listenTimeout = 5 * time.Second
	phraseLimit   = 8 * time.Second
	idleDelay     = 300 * time.Millisecond
)

// Collaborators bundles every side-effecting dependency of the turn loop.
// Listen returns the normalized utterance or "" when nothing usable was
// heard; Speak never reports failure to the core.
type Collaborators struct {
	Listen    func(timeout, phraseLimit time.Duration) string
	Speak     func(text string)
	OpenURL   func(target string) error
	LaunchApp func(key string) error
	Summary   func(ctx context.Context, topic string) (string, error)
	Weather   func(ctx context.Context, city string) (string, error)
	SendMail  func(to, subject, body string) error
	Now       func() time.Time
}

type Assistant struct {
	c    Collaborators
	stop chan struct{}
}

func New(c Collaborators) *Assistant {
	if c.Now == nil {
		c.Now = time.Now
	}
	return &Assistant{c: c, stop: make(chan struct{})}
}

// Stop requests a clean shutdown. It takes effect between turns; an
// in-progress listen is never interrupted.
func (a *Assistant) Stop() {
	select {
	case <-a.stop:
	default:
		close(a.stop)
	}
}

// Done is closed once Stop has been requested.
func (a *Assistant) Done() <-chan struct{} { return a.stop }

// Run executes turns until the Exit intent fires or Stop is called.
func (a *Assistant) Run() {
	a.c.Speak("Assistant online. Say 'hello' to start, or say a command.")

	for {
		select {
		case <-a.stop:
			a.c.Speak("Goodbye!")
			return
		default:
		}

		if done := a.Turn(); done {
			return
		}
		time.Sleep(idleDelay)
	}
}

// Turn runs one listen-classify-dispatch cycle. Silence is a no-op turn.
// The returned flag reports that the Exit intent ended the session.
func (a *Assistant) Turn() bool {
	text := a.c.Listen(listenTimeout, phraseLimit)
	if text == "" {
		return false
	}
	return a.Dispatch(text)
}

// Dispatch classifies one non-empty utterance and runs its handler. Every
// collaborator failure is reported with a fixed spoken message and ends
// the turn normally.
func (a *Assistant) Dispatch(text string) bool {
	res := intent.Classify(text)
	log.Info("classified", "intent", res.Intent, "args", res.Args)

	switch res.Intent {
	case intent.Greet:
		a.c.Speak("Hello! How can I help you?")

	case intent.TellTime:
		a.c.Speak("The time is " + a.c.Now().Format("03:04 PM"))

	case intent.TellDate:
		a.c.Speak("Today is " + a.c.Now().Format("Monday, January 02, 2006"))

	case intent.OpenWebsite:
		a.openWebsite(res.Arg("target"))

	case intent.OpenApp:
		a.openApp(res.Arg("app_key"))

	case intent.Encyclopedia:
		a.lookup(res.Arg("topic"))

	case intent.Weather:
		a.weather(res.Arg("city"))

	case intent.WeatherNoCity:
		a.c.Speak("Please include the city after 'in', e.g. 'weather in Delhi'.")

	case intent.ComposeEmail:
		a.composeEmail()

	case intent.Exit:
		a.c.Speak("Goodbye!")
		return true

	case intent.Unrecognized:
		a.fallbackSearch(res.Arg("query"))
	}

	return false
}

func (a *Assistant) openWebsite(target string) {
	url := launcher.NormalizeURL(target)
	a.c.Speak("Opening " + url)
	if err := a.c.OpenURL(url); err != nil {
		log.Error("open website failed", "url", url, "err", err)
		a.c.Speak("Sorry, I couldn't open the browser.")
	}
}

func (a *Assistant) openApp(key string) {
	if key == "" {
		a.c.Speak("Please say the application name after launch.")
		return
	}

	err := a.c.LaunchApp(key)
	switch {
	case err == nil:
		a.c.Speak("Opening " + key)
	case errors.Is(err, launcher.ErrUnknownApp):
		a.c.Speak("I don't have a mapping for " + key + ".")
	case errors.Is(err, launcher.ErrNoCommand):
		a.c.Speak("No command configured for your platform.")
	default:
		log.Error("launch failed", "app", key, "err", err)
		a.c.Speak("Could not open the application.")
	}
}

func (a *Assistant) lookup(topic string) {
	a.c.Speak("Searching Wikipedia for " + topic)
	summary, err := a.c.Summary(context.Background(), topic)
	if err != nil {
		log.Warn("summary lookup failed", "topic", topic, "err", err)
		a.c.Speak("Sorry, I couldn't find that on Wikipedia.")
		return
	}
	a.c.Speak(summary)
}

func (a *Assistant) weather(city string) {
	report, err := a.c.Weather(context.Background(), city)
	if err != nil {
		log.Warn("weather lookup failed", "city", city, "err", err)
		a.c.Speak("Failed to get weather.")
		return
	}
	a.c.Speak(report)
}

func (a *Assistant) composeEmail() {
	ctrl := &dialog.Controller{
		Listen: a.c.Listen,
		Speak:  a.c.Speak,
		Send:   a.c.SendMail,
	}
	out := ctrl.Run()
	log.Info("email dialog finished", "state", out.State, "reason", out.Reason)
}

func (a *Assistant) fallbackSearch(query string) {
	a.c.Speak("I didn't catch a command. Searching the web for your phrase.")
	url := launcher.SearchURL(query)
	if err := a.c.OpenURL(url); err != nil {
		log.Error("fallback search failed", "url", url, "err", err)
		a.c.Speak("Sorry, I couldn't open the browser.")
	}
}
