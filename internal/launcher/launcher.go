// Package launcher opens websites in the default browser and starts local
// applications resolved through a per-platform command table.
package launcher

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"

	"github.com/pkg/browser"
)

// appCommands maps a spoken app key to the launch command per GOOS.
// Read-only after init; extend it here to teach the assistant new apps.
var appCommands = map[string]map[string]string{
	"notepad": {
		"windows": "notepad.exe",
		"linux":   "gedit",
	},
	"calculator": {
		"windows": "calc.exe",
		"darwin":  "open -a Calculator",
		"linux":   "gnome-calculator",
	},
	"code": {
		"windows": "code",
		"darwin":  "open -a 'Visual Studio Code'",
		"linux":   "code",
	},
}

var (
	ErrUnknownApp = fmt.Errorf("no mapping for app")
	ErrNoCommand  = fmt.Errorf("no command for this platform")
)

// NormalizeURL prefixes a scheme when the spoken target lacks one.
func NormalizeURL(target string) string {
	if !strings.HasPrefix(target, "http") {
		return "https://" + target
	}
	return target
}

// OpenURL opens the target in the default browser, normalizing first.
func OpenURL(target string) error {
	return browser.OpenURL(NormalizeURL(target))
}

// SearchURL builds the fallback web search for an unclassified utterance.
func SearchURL(query string) string {
	v := url.Values{"q": {query}}
	return "https://www.google.com/search?" + v.Encode()
}

// LaunchApp resolves key through the command table for the current GOOS
// and starts the process detached. ErrUnknownApp means the key itself has
// no entry; ErrNoCommand means the key exists but not for this platform.
func LaunchApp(key string) error {
	return launchAppOn(key, runtime.GOOS)
}

func launchAppOn(key, goos string) error {
	perOS, ok := appCommands[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownApp, key)
	}
	cmdline, ok := perOS[goos]
	if !ok || cmdline == "" {
		return fmt.Errorf("%w: %s on %s", ErrNoCommand, key, goos)
	}

	argv := splitCommand(cmdline)
	cmd := exec.Command(argv[0], argv[1:]...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", key, err)
	}
	// Reap the child when it exits so launches never accumulate zombies.
	go func() { _ = cmd.Wait() }()
	return nil
}

// splitCommand splits a table command on whitespace, keeping single-quoted
// spans together ("open -a 'Visual Studio Code'" is three argv entries).
func splitCommand(s string) []string {
	var (
		out    []string
		cur    strings.Builder
		quoted bool
	)
	for _, r := range s {
		switch {
		case r == '\'':
			quoted = !quoted
		case r == ' ' && !quoted:
			if cur.Len() > 0 {
				out = append(out, cur.String())
				cur.Reset()
			}
		default:
			cur.WriteRune(r)
		}
	}
	if cur.Len() > 0 {
		out = append(out, cur.String())
	}
	return out
}
