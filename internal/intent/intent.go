package intent

// Intent is the classified purpose of one utterance. Closed set: adding a
// new intent means adding a rule here and a handler in the dispatcher.
type Intent int

const (
	Greet Intent = iota
	TellTime
	TellDate
	OpenWebsite
	OpenApp
	Encyclopedia
	Weather
	// WeatherNoCity fires when "weather" was heard but no city followed
	// "in". It prompts for the required phrasing instead of falling back
	// to web search.
	WeatherNoCity
	ComposeEmail
	Exit
	Unrecognized
)

var intentNames = map[Intent]string{
	Greet:         "greet",
	TellTime:      "tell_time",
	TellDate:      "tell_date",
	OpenWebsite:   "open_website",
	OpenApp:       "open_app",
	Encyclopedia:  "encyclopedia",
	Weather:       "weather",
	WeatherNoCity: "weather_no_city",
	ComposeEmail:  "compose_email",
	Exit:          "exit",
	Unrecognized:  "unrecognized",
}

func (i Intent) String() string {
	if s, ok := intentNames[i]; ok {
		return s
	}
	return "unknown"
}

// Result is a classified utterance: the intent plus its extracted
// arguments (city, app key, topic, ...). Args is empty for intents
// that carry none.
type Result struct {
	Intent Intent
	Args   map[string]string
}

func (r Result) Arg(name string) string {
	return r.Args[name]
}
