// Package tts renders outgoing speech through espeak-ng.
package tts

/*
#cgo LDFLAGS: -lespeak-ng
#include <stdlib.h>
#include <espeak-ng/speak_lib.h>

int
espeak_say(const char *text)
{
	if (!text)
	{ return -1; }

	espeak_Initialize(AUDIO_OUTPUT_SYNCH_PLAYBACK, 500, NULL, 0);
	espeak_VOICE specs = { .languages = "en" };
	espeak_SetVoiceByProperties(&specs);
	espeak_SetParameter(espeakRATE, 165, 0);

	espeak_Synth(text, 500, 0, 0, 0, espeakCHARS_AUTO, NULL, NULL);
	espeak_Synchronize();
	espeak_Terminate();

	return 0;
}
*/
import "C"

import (
	"fmt"
	log "log/slog"
	"unsafe"
)

// Speak voices text synchronously and logs the outgoing line. The engine
// is initialized and torn down per call, so no handle survives the turn.
func Speak(text string) error {
	if text == "" {
		return nil
	}

	log.Info("assistant", "say", text)

	ctext := C.CString(text)
	defer C.free(unsafe.Pointer(ctext))

	if rc := C.espeak_say(ctext); rc != 0 {
		return fmt.Errorf("espeak_say failed: %d", int(rc))
	}
	return nil
}
