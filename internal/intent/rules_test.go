package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_RuleTable(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Intent
		args map[string]string
	}{
		{name: "greet hello", text: "hello there", want: Greet},
		{name: "greet hey", text: "hey you", want: Greet},
		{name: "time", text: "what time is it", want: TellTime},
		{name: "date", text: "today's date please", want: TellDate},
		{name: "day", text: "what day is it today", want: TellDate},
		// Bare substring match: "hi" inside "which" wins the greet rule.
		{name: "greet substring quirk", text: "which day is it", want: Greet},
		{
			name: "open quick alias",
			text: "open youtube",
			want: OpenWebsite,
			args: map[string]string{"target": "youtube.com"},
		},
		{
			name: "open raw domain",
			text: "open example.org",
			want: OpenWebsite,
			args: map[string]string{"target": "example.org"},
		},
		{
			name: "launch keeps first token only",
			text: "launch calculator now",
			want: OpenApp,
			args: map[string]string{"app_key": "calculator"},
		},
		{
			name: "launch with nothing after prefix",
			text: "launch ",
			want: OpenApp,
			args: map[string]string{"app_key": ""},
		},
		{
			name: "who is",
			text: "who is ada lovelace",
			want: Encyclopedia,
			args: map[string]string{"topic": "ada lovelace"},
		},
		{
			name: "tell me about",
			text: "tell me about go",
			want: Encyclopedia,
			args: map[string]string{"topic": "go"},
		},
		{
			name: "weather with city",
			text: "weather in new york",
			want: Weather,
			args: map[string]string{"city": "new york"},
		},
		{
			name: "weather city after last in",
			text: "weather in france in paris",
			want: Weather,
			args: map[string]string{"city": "paris"},
		},
		{name: "weather without city", text: "weather", want: WeatherNoCity},
		{name: "weather trailing in", text: "weather in", want: WeatherNoCity},
		{name: "send email", text: "please send email", want: ComposeEmail},
		{name: "send an email", text: "can you send an email", want: ComposeEmail},
		{name: "exit quit", text: "quit", want: Exit},
		{name: "exit goodbye", text: "goodbye", want: Exit},
		{
			name: "fallback carries raw query",
			text: "play some jazz",
			want: Unrecognized,
			args: map[string]string{"query": "play some jazz"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(tc.text)
			assert.Equal(t, tc.want, got.Intent)
			for k, v := range tc.args {
				assert.Equal(t, v, got.Arg(k), "arg %q", k)
			}
		})
	}
}

// Rule order, not keyword specificity, decides ties. These pin the
// precedence down so a reordering shows up as a test failure.
func TestClassify_Precedence(t *testing.T) {
	// "what is the weather" matches the encyclopedia prefix before the
	// weather keyword is ever consulted.
	got := Classify("what is the weather in paris")
	assert.Equal(t, Encyclopedia, got.Intent)
	assert.Equal(t, "the weather in paris", got.Arg("topic"))

	// An exit word after "open " never reaches the exit rule.
	got = Classify("goodbye, open youtube")
	assert.Equal(t, Exit, got.Intent)
	got = Classify("open youtube goodbye")
	assert.Equal(t, OpenWebsite, got.Intent)

	// "open app X" starts with "open " and is shadowed by the website
	// rule; only a non-leading launch phrase reaches OpenApp.
	got = Classify("open app calculator")
	assert.Equal(t, OpenWebsite, got.Intent)
	assert.Equal(t, "app calculator", got.Arg("target"))
	got = Classify("please open app calculator")
	assert.Equal(t, OpenApp, got.Intent)
	assert.Equal(t, "calculator", got.Arg("app_key"))

	// Greeting outranks everything, including exit words.
	got = Classify("hello goodbye")
	assert.Equal(t, Greet, got.Intent)
}

func TestClassify_Pure(t *testing.T) {
	first := Classify("weather in london")
	second := Classify("weather in london")
	require.Equal(t, first, second)
}
