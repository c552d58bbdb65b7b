package launcher

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeURL(t *testing.T) {
	assert.Equal(t, "https://youtube.com", NormalizeURL("youtube.com"))
	assert.Equal(t, "http://example.org", NormalizeURL("http://example.org"))
	assert.Equal(t, "https://example.org", NormalizeURL("https://example.org"))
}

func TestSearchURL(t *testing.T) {
	assert.Equal(t, "https://www.google.com/search?q=play+some+jazz", SearchURL("play some jazz"))
	assert.Equal(t, "https://www.google.com/search?q=c%2B%2B", SearchURL("c++"))
}

func TestLaunchAppOn_TableMisses(t *testing.T) {
	err := launchAppOn("spreadsheet", "linux")
	assert.True(t, errors.Is(err, ErrUnknownApp))

	// notepad has no darwin command configured.
	err = launchAppOn("notepad", "darwin")
	assert.True(t, errors.Is(err, ErrNoCommand))
}

func TestSplitCommand(t *testing.T) {
	assert.Equal(t, []string{"gnome-calculator"}, splitCommand("gnome-calculator"))
	assert.Equal(t,
		[]string{"open", "-a", "Visual Studio Code"},
		splitCommand("open -a 'Visual Studio Code'"))
}
