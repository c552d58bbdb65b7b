// Package audio captures microphone input through portaudio and keeps
// other playback out of the way while the mic is open.
package audio

import (
	"math"
	"time"

	"github.com/gordonklaus/portaudio"
)

const (
	sampleRate = 16000
	frameSize  = 320 // 20ms @ 16kHz

	speechThreshRMS = 0.015
	trailingSilence = 600 * time.Millisecond
)

type Recorder struct{}

func NewRecorder() *Recorder { return &Recorder{} }

// Init acquires the portaudio host API once at startup.
func (r *Recorder) Init() error {
	return portaudio.Initialize()
}

func (r *Recorder) Close() {
	portaudio.Terminate()
}

// Record waits up to timeout for speech onset, then records until 600ms of
// trailing silence or until phraseLimit of speech has accumulated. The
// stream is opened per call and released on every exit path, so no device
// handle outlives a turn. A nil, nil return means nothing was heard.
func (r *Recorder) Record(timeout, phraseLimit time.Duration) ([]float32, error) {
	buf := make([]float32, frameSize)
	out := make([]float32, 0, sampleRate*3)

	stream, err := portaudio.OpenDefaultStream(1, 0, sampleRate, len(buf), buf)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return nil, err
	}
	defer stream.Stop()

	const frameDur = 20 * time.Millisecond
	var (
		speaking      bool
		silenceFrames int
		waited        time.Duration
		spoken        time.Duration
	)

	for {
		if err := stream.Read(); err != nil {
			return nil, err
		}

		if frameRMS(buf) > speechThreshRMS {
			speaking = true
			silenceFrames = 0
		} else if !speaking {
			waited += frameDur
			if waited >= timeout {
				return nil, nil // silence the whole window
			}
			continue
		} else {
			silenceFrames++
			if time.Duration(silenceFrames)*frameDur >= trailingSilence {
				break
			}
		}

		out = append(out, buf...)
		spoken += frameDur
		if spoken >= phraseLimit {
			break
		}
	}

	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

func frameRMS(f []float32) float64 {
	var s float64
	for _, x := range f {
		s += float64(x * x)
	}
	return math.Sqrt(s / float64(len(f)))
}
