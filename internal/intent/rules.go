package intent

import "strings"

// quickSites maps short spoken aliases to real domains, so "open youtube"
// lands on youtube.com instead of a literal "youtube" URL.
var quickSites = map[string]string{
	"youtube": "youtube.com",
	"google":  "google.com",
	"gmail":   "mail.google.com",
}

var (
	greetWords = []string{"hello", "hi", "hey"}
	exitWords  = []string{"quit", "exit", "shutdown", "stop assistant", "goodbye"}

	appPrefixes  = []string{"launch ", "open app ", "open application "}
	wikiPrefixes = []string{"who is ", "what is ", "tell me about "}
)

// rule pairs a match predicate with an argument extractor. Rules are tried
// in order and the first match wins; keyword specificity never overrides
// list position.
type rule struct {
	match   func(text string) bool
	extract func(text string) Result
}

var rules = []rule{
	{
		match:   containsAny(greetWords),
		extract: plain(Greet),
	},
	{
		match:   contains("time"),
		extract: plain(TellTime),
	},
	{
		match: func(t string) bool {
			return strings.Contains(t, "date") || strings.Contains(t, "day")
		},
		extract: plain(TellDate),
	},
	{
		match:   prefixed("open "),
		extract: extractWebsite,
	},
	{
		match:   containsAny(appPrefixes),
		extract: extractApp,
	},
	{
		match: func(t string) bool {
			for _, p := range wikiPrefixes {
				if strings.HasPrefix(t, p) {
					return true
				}
			}
			return false
		},
		extract: extractTopic,
	},
	{
		match:   contains("weather"),
		extract: extractWeather,
	},
	{
		match: func(t string) bool {
			return strings.Contains(t, "send email") || strings.Contains(t, "send an email")
		},
		extract: plain(ComposeEmail),
	},
	{
		match:   containsAny(exitWords),
		extract: plain(Exit),
	},
}

// Classify maps a normalized (lower-cased, non-empty) utterance to an
// intent and its arguments. Pure: no I/O, no state, same input always
// yields the same Result. Callers must treat an empty utterance as a
// no-op turn and never pass it here.
func Classify(text string) Result {
	for _, r := range rules {
		if r.match(text) {
			return r.extract(text)
		}
	}
	return Result{Intent: Unrecognized, Args: map[string]string{"query": text}}
}

func extractWebsite(text string) Result {
	target := strings.TrimSpace(strings.TrimPrefix(text, "open "))
	if mapped, ok := quickSites[target]; ok {
		target = mapped
	}
	return Result{Intent: OpenWebsite, Args: map[string]string{"target": target}}
}

// extractApp takes the first whitespace token after whichever launch prefix
// occurs first in the prefix list. An empty app key still classifies as
// OpenApp; the handler rejects it with a corrective prompt.
func extractApp(text string) Result {
	key := ""
	for _, p := range appPrefixes {
		idx := strings.Index(text, p)
		if idx < 0 {
			continue
		}
		fields := strings.Fields(text[idx+len(p):])
		if len(fields) > 0 {
			key = fields[0]
		}
		break
	}
	return Result{Intent: OpenApp, Args: map[string]string{"app_key": key}}
}

// extractTopic strips every wiki prefix, in order, wherever it occurs.
// "who is what is x" therefore loses both prefixes.
func extractTopic(text string) Result {
	topic := text
	for _, p := range wikiPrefixes {
		topic = strings.ReplaceAll(topic, p, "")
	}
	return Result{Intent: Encyclopedia, Args: map[string]string{"topic": strings.TrimSpace(topic)}}
}

// extractWeather reads the city as everything after the last "in" token.
func extractWeather(text string) Result {
	words := strings.Fields(text)
	for i := len(words) - 1; i >= 0; i-- {
		if words[i] != "in" {
			continue
		}
		city := strings.Join(words[i+1:], " ")
		if city != "" {
			return Result{Intent: Weather, Args: map[string]string{"city": city}}
		}
		break
	}
	return Result{Intent: WeatherNoCity}
}

func plain(i Intent) func(string) Result {
	return func(string) Result { return Result{Intent: i} }
}

func contains(kw string) func(string) bool {
	return func(t string) bool { return strings.Contains(t, kw) }
}

func containsAny(kws []string) func(string) bool {
	return func(t string) bool {
		for _, kw := range kws {
			if strings.Contains(t, kw) {
				return true
			}
		}
		return false
	}
}

func prefixed(p string) func(string) bool {
	return func(t string) bool { return strings.HasPrefix(t, p) }
}
