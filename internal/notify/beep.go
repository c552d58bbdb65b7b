// Package notify plays the short earcon that tells the user the
// microphone just opened.
package notify

import (
	log "log/slog"
	"os"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
)

const cuePath = "assets/listen.mp3"

// Cue plays the listening earcon and blocks until it finishes. A missing
// or broken asset is logged and skipped; the turn must still proceed.
func Cue() {
	f, err := os.Open(cuePath)
	if err != nil {
		log.Debug("no earcon asset", "path", cuePath)
		return
	}

	streamer, format, err := mp3.Decode(f)
	if err != nil {
		log.Warn("failed to decode earcon", "err", err)
		f.Close()
		return
	}
	defer streamer.Close()

	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
		log.Warn("failed to init speaker", "err", err)
		return
	}

	done := make(chan bool)
	speaker.Play(beep.Seq(streamer, beep.Callback(func() {
		done <- true
	})))
	<-done
}
