package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	cli "github.com/spf13/pflag"

	"github.com/lmittmann/tint"
	log "log/slog"

	"aura/internal/assistant"
	"aura/internal/audio"
	"aura/internal/bus"
	"aura/internal/config"
	"aura/internal/ipc"
	"aura/internal/launcher"
	"aura/internal/mail"
	"aura/internal/notify"
	"aura/internal/proxy"
	"aura/internal/tts"
	"aura/internal/weather"
	"aura/internal/wiki"
	"aura/pkg/audiofile"
	"aura/pkg/stt"
)

var logLevelMap = map[string]log.Level{
	"debug": log.LevelDebug,
	"info":  log.LevelInfo,
	"warn":  log.LevelWarn,
	"error": log.LevelError,
}

func main() {
	envFile := cli.StringP("env", "e", ".env", "Env file path")
	proxyAddr := cli.StringP("proxy", "p", "", "Socks proxy address for outbound lookups")
	logLevel := cli.StringP("log", "l", "info", "Log level")
	modelPath := cli.StringP("model", "m", "third_party/whisper.cpp/models/ggml-base.en.bin", "Whisper model path")
	utteranceFile := cli.StringP("utterance-file", "f", "", "Run one turn from a recorded audio file and exit")
	pushToTalk := cli.BoolP("push-to-talk", "t", false, "Listen only when triggered over the control socket")
	cli.Parse()

	log.SetDefault(log.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level: logLevelMap[*logLevel],
	})))

	log.Info("Booting up")

	godotenv.Load(*envFile)
	cfg, err := config.Load()
	if err != nil {
		log.Error("Failed to load config", "err", err)
		os.Exit(1)
	}

	httpc, err := newHTTPClient(*proxyAddr)
	if err != nil {
		log.Error("Failed to dial socks proxy", "proxy", *proxyAddr, "err", err)
		os.Exit(1)
	}

	whisper, err := stt.NewTranscriber(*modelPath)
	if err != nil {
		log.Error("Failed to init whisper", "err", err)
		os.Exit(1)
	}
	defer whisper.Close()

	log.Debug("Loaded whisper")

	var transcriptBus *bus.Bus
	if cfg.BusURL != "" {
		transcriptBus, err = bus.Dial(cfg.BusURL)
		if err != nil {
			log.Warn("Bus unreachable, transcripts stay local", "url", cfg.BusURL, "err", err)
		} else {
			defer transcriptBus.Close()
		}
	}

	weatherc := weather.New(cfg.WeatherKey, httpc)
	wikic := wiki.New(httpc)
	sender := mail.NewSender(cfg.SMTPHost, cfg.SMTPPort, cfg.EmailUser, cfg.EmailPass)

	speak := func(text string) {
		transcriptBus.Publish(bus.KindReply, text)
		if err := tts.Speak(text); err != nil {
			log.Error("Failed to voice out", "err", err)
		}
	}

	collab := assistant.Collaborators{
		Speak:     speak,
		OpenURL:   launcher.OpenURL,
		LaunchApp: launcher.LaunchApp,
		Summary:   wikic.Summary,
		Weather:   weatherc.Current,
		SendMail:  sender.Send,
	}

	// The one-shot file mode needs no microphone at all.
	if *utteranceFile != "" {
		runFromFile(*utteranceFile, whisper, collab)
		return
	}

	rec := audio.NewRecorder()
	if err := rec.Init(); err != nil {
		log.Error("Failed to init audio", "err", err)
		os.Exit(1)
	}
	defer rec.Close()

	log.Debug("Loaded recorder")

	collab.Listen = newListenFunc(rec, whisper, transcriptBus)

	a := assistant.New(collab)

	// One utterance is fully resolved before the next is accepted, even
	// when trigger requests overlap.
	var turnMu sync.Mutex

	if err := ipc.StartServer(func(msg ipc.ControlMessage) {
		switch msg.Cmd {
		case ipc.CmdStop:
			log.Info("Stop requested over control socket")
			a.Stop()
		case ipc.CmdTrigger:
			if !*pushToTalk {
				return
			}
			turnMu.Lock()
			done := a.Turn()
			turnMu.Unlock()
			if done {
				a.Stop()
			}
		default:
			log.Warn("Unknown command", "cmd", msg.Cmd)
		}
	}); err != nil {
		log.Error("Failed ipc server", "err", err)
		os.Exit(1)
	}

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		speak("Shutting down. Bye!")
		os.Exit(0)
	}()

	log.Info("Boot up - successful")

	if *pushToTalk {
		speak("Assistant online. Trigger me when you want to talk.")
		<-a.Done()
		return
	}

	a.Run()
}

// newHTTPClient returns a SOCKS-backed client when a proxy is configured,
// or nil so each lookup client uses its own direct default.
func newHTTPClient(proxyAddr string) (*http.Client, error) {
	if proxyAddr == "" {
		return nil, nil
	}
	return proxy.NewSocksClient(proxyAddr)
}

// newListenFunc builds the listen collaborator: earcon, duck other audio,
// record, transcribe. Every failure normalizes to "" so a bad capture is
// just a silent turn.
func newListenFunc(rec *audio.Recorder, whisper *stt.Transcriber, transcriptBus *bus.Bus) func(timeout, phrase time.Duration) string {
	ducker := audio.NewDucker([]string{"aura"}, 20)

	return func(timeout, phrase time.Duration) string {
		notify.Cue()

		ctx, cancel := context.WithTimeout(context.Background(), timeout+phrase+30*time.Second)
		defer cancel()

		if err := ducker.Duck(ctx, 0.3, 150*time.Millisecond); err != nil {
			log.Debug("duck failed", "err", err)
		}
		defer func() {
			if err := ducker.Restore(ctx, 150*time.Millisecond); err != nil {
				log.Debug("restore failed", "err", err)
			}
		}()

		log.Info("Listening")

		pcm, err := rec.Record(timeout, phrase)
		if err != nil {
			log.Error("Failed to record", "err", err)
			return ""
		}
		if len(pcm) == 0 {
			log.Info("No speech detected")
			return ""
		}

		text, err := whisper.Transcribe(ctx, pcm, stt.Options{Language: "en"})
		if err != nil {
			log.Error("Failed to transcribe", "err", err)
			return ""
		}

		if text != "" {
			log.Info("Heard", "text", text)
			transcriptBus.Publish(bus.KindUtterance, text)
		}
		return text
	}
}

// runFromFile dispatches a single turn decoded from an audio file. Multi
// slot dialogs are not reachable this way, so the email intent would just
// cancel on its first listen.
func runFromFile(path string, whisper *stt.Transcriber, collab assistant.Collaborators) {
	collab.Listen = func(_, _ time.Duration) string { return "" }

	pcm, err := audiofile.Decode(path)
	if err != nil {
		log.Error("Failed to decode utterance file", "path", path, "err", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	text, err := whisper.Transcribe(ctx, pcm, stt.Options{Language: "en"})
	if err != nil {
		log.Error("Failed to transcribe", "err", err)
		os.Exit(1)
	}
	if text == "" {
		log.Info("Nothing understood in file", "path", path)
		return
	}

	log.Info("Heard", "text", text)
	assistant.New(collab).Dispatch(text)
}
