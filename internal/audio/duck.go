package audio

import (
	"context"
	"fmt"
	"math"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"
)

var percentRe = regexp.MustCompile(`(\d+)\s*%`)

type streamInfo struct {
	ID      int
	Volume  int
	AppName string
}

// Ducker fades down every PulseAudio playback stream that is not ours
// while the microphone is open, and restores the original volumes after.
// Streams whose application.name is in selfNames are left alone.
type Ducker struct {
	mu        sync.Mutex
	active    bool
	selfNames []string
	original  map[int]int // sink-input id -> volume % before ducking
	minVolume int
}

func NewDucker(selfNames []string, minVolume int) *Ducker {
	if minVolume < 0 {
		minVolume = 0
	}
	if minVolume > 150 {
		minVolume = 150
	}
	return &Ducker{
		selfNames: append([]string(nil), selfNames...),
		original:  make(map[int]int),
		minVolume: minVolume,
	}
}

// Duck lowers foreign streams to current*factor, clamped to minVolume.
// Calling Duck while already active is a no-op.
func (d *Ducker) Duck(ctx context.Context, factor float64, fade time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.active {
		return nil
	}

	streams, err := listStreams(ctx)
	if err != nil {
		return fmt.Errorf("list sink inputs: %w", err)
	}

	d.original = make(map[int]int)
	for _, s := range streams {
		if d.isSelf(s) {
			continue
		}
		d.original[s.ID] = s.Volume

		target := math.Max(float64(s.Volume)*factor, float64(d.minVolume))
		if err := rampVolume(ctx, s.ID, s.Volume, int(math.Round(target)), fade); err != nil {
			return err
		}
	}

	d.active = true
	return nil
}

// Restore brings every stream ducked earlier back to its original volume.
// Streams that appeared after Duck are untouched.
func (d *Ducker) Restore(ctx context.Context, fade time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.active {
		return nil
	}

	streams, err := listStreams(ctx)
	if err != nil {
		return fmt.Errorf("list sink inputs: %w", err)
	}

	for _, s := range streams {
		orig, ok := d.original[s.ID]
		if !ok {
			continue
		}
		if err := rampVolume(ctx, s.ID, s.Volume, orig, fade); err != nil {
			return err
		}
	}

	d.original = make(map[int]int)
	d.active = false
	return nil
}

func (d *Ducker) isSelf(s streamInfo) bool {
	for _, name := range d.selfNames {
		if s.AppName == name {
			return true
		}
	}
	return false
}

// rampVolume steps one sink input from one volume to another over fade.
func rampVolume(ctx context.Context, id, from, to int, fade time.Duration) error {
	const step = 10 * time.Millisecond

	steps := int(fade / step)
	if steps < 1 {
		return setSinkInputVolume(ctx, id, to)
	}

	for i := 1; i <= steps; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		frac := float64(i) / float64(steps)
		v := int(math.Round(float64(from) + float64(to-from)*frac))
		if err := setSinkInputVolume(ctx, id, v); err != nil {
			return fmt.Errorf("set volume id=%d: %w", id, err)
		}
		if i < steps {
			time.Sleep(fade / time.Duration(steps))
		}
	}
	return nil
}

// listStreams parses `pactl list sink-inputs` output.
func listStreams(ctx context.Context) ([]streamInfo, error) {
	out, err := exec.CommandContext(ctx, "pactl", "list", "sink-inputs").Output()
	if err != nil {
		return nil, fmt.Errorf("pactl list sink-inputs: %w", err)
	}

	blocks := strings.Split(string(out), "Sink Input #")
	var res []streamInfo
	for _, block := range blocks[1:] {
		newline := strings.IndexByte(block, '\n')
		if newline <= 0 {
			continue
		}
		id, err := strconv.Atoi(strings.TrimSpace(block[:newline]))
		if err != nil {
			continue
		}

		s := streamInfo{ID: id}
		for _, line := range strings.Split(block[newline+1:], "\n") {
			line = strings.TrimSpace(line)
			if strings.HasPrefix(line, "Volume:") && s.Volume == 0 {
				if m := percentRe.FindStringSubmatch(line); len(m) >= 2 {
					s.Volume, _ = strconv.Atoi(m[1])
				}
			}
			if strings.HasPrefix(line, "application.name =") && s.AppName == "" {
				s.AppName = quotedValue(line)
			}
		}

		if s.Volume == 0 && s.AppName == "" {
			continue
		}
		res = append(res, s)
	}
	return res, nil
}

// quotedValue pulls the content of the first "..." span in line.
func quotedValue(line string) string {
	i := strings.IndexByte(line, '"')
	if i < 0 {
		return ""
	}
	rest := line[i+1:]
	j := strings.IndexByte(rest, '"')
	if j < 0 {
		return ""
	}
	return rest[:j]
}

func setSinkInputVolume(ctx context.Context, id, percent int) error {
	if percent < 0 {
		percent = 0
	}
	if percent > 150 {
		percent = 150
	}
	return exec.CommandContext(ctx, "pactl", "set-sink-input-volume",
		strconv.Itoa(id), fmt.Sprintf("%d%%", percent)).Run()
}
