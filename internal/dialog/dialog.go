// Package dialog drives the multi-turn email composition conversation.
// Once the router selects the compose-email intent, a Controller owns the
// microphone until the draft is sent, cancelled, or a slot times out.
package dialog

import (
	log "log/slog"
	"strings"
	"time"
)

type State int

const (
	AwaitRecipient State = iota
	AwaitSubject
	AwaitBody
	AwaitConfirmation
	Sent
	Cancelled
)

var stateNames = map[State]string{
	AwaitRecipient:    "await_recipient",
	AwaitSubject:      "await_subject",
	AwaitBody:         "await_body",
	AwaitConfirmation: "await_confirmation",
	Sent:              "sent",
	Cancelled:         "cancelled",
}

func (s State) String() string { return stateNames[s] }

// Slot listen windows. Dictating a body takes longest; confirmation is a
// single word and gets the shortest window.
const (
	recipientTimeout = 8 * time.Second
	recipientPhrase  = 6 * time.Second
	subjectTimeout   = 8 * time.Second
	subjectPhrase    = 8 * time.Second
	bodyTimeout      = 12 * time.Second
	bodyPhrase       = 20 * time.Second
	confirmTimeout   = 5 * time.Second
	confirmPhrase    = 3 * time.Second
)

const defaultSubject = "No subject"

// Draft is the mutable record filled in over the conversation. It lives
// only for one Controller run and is discarded on any terminal state.
type Draft struct {
	To      string
	Subject string
	Body    string
}

// Outcome reports how a conversation ended. Reason is only set for
// Cancelled.
type Outcome struct {
	State  State
	Reason string
}

// Controller is the email composition state machine. Listen and Speak are
// the shared voice collaborators; Send delivers the finished draft.
type Controller struct {
	Listen func(timeout, phraseLimit time.Duration) string
	Speak  func(text string)
	Send   func(to, subject, body string) error
}

// Run walks the draft through every slot and returns the terminal outcome.
// Send is invoked at most once, and only after a captured confirmation
// containing "yes". Cancellation is final: the partial draft is dropped
// and the caller resumes its normal turn loop.
func (c *Controller) Run() Outcome {
	var draft Draft
	state := AwaitRecipient

	for {
		log.Debug("email dialog", "state", state)

		switch state {
		case AwaitRecipient:
			c.Speak("Who is the recipient? Please say the email address.")
			to := c.Listen(recipientTimeout, recipientPhrase)
			if to == "" {
				c.Speak("Recipient not provided. Cancelling.")
				return Outcome{State: Cancelled, Reason: "no recipient"}
			}
			draft.To = to
			state = AwaitSubject

		case AwaitSubject:
			c.Speak("What is the subject?")
			draft.Subject = c.Listen(subjectTimeout, subjectPhrase)
			if draft.Subject == "" {
				draft.Subject = defaultSubject
			}
			state = AwaitBody

		case AwaitBody:
			c.Speak("Tell me the message.")
			draft.Body = c.Listen(bodyTimeout, bodyPhrase)
			state = AwaitConfirmation

		case AwaitConfirmation:
			c.Speak("Sending email to " + draft.To + " with subject " + draft.Subject + ". Confirm by saying yes.")
			conf := c.Listen(confirmTimeout, confirmPhrase)
			if !affirmative(conf) {
				c.Speak("Email cancelled.")
				return Outcome{State: Cancelled, Reason: "not confirmed"}
			}
			if err := c.Send(draft.To, draft.Subject, draft.Body); err != nil {
				log.Error("send failed", "to", draft.To, "err", err)
				c.Speak("Failed to send email.")
			} else {
				c.Speak("Email sent successfully.")
			}
			// The send was attempted; a delivery failure is user
			// feedback, not a reason to re-prompt.
			return Outcome{State: Sent}
		}
	}
}

func affirmative(text string) bool {
	return text != "" && strings.Contains(text, "yes")
}
