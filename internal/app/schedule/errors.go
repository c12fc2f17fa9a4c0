package schedule

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

const previewLimit = 256

// ParseError reports a successfully fetched payload that does not match the
// shape the adapter expects. It is never retried; retrying will not fix a
// structural mismatch. Preview carries a bounded snippet of the offending
// payload for diagnosis.
type ParseError struct {
	Source  string
	Msg     string
	Preview string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Source, e.Msg)
}

func preview(payload []byte) string {
	if len(payload) <= previewLimit {
		return string(payload)
	}

	// The payloads are mostly Japanese text; a byte-boundary cut can land
	// mid-rune and put invalid UTF-8 into a log line. Back the cut off to
	// the last complete rune.
	cut := payload[:previewLimit]
	for i := 0; i < utf8.UTFMax-1 && len(cut) > 0 && !utf8.RuneStart(cut[len(cut)-1]); i++ {
		cut = cut[:len(cut)-1]
	}
	if r, size := utf8.DecodeLastRune(cut); r == utf8.RuneError && size == 1 {
		cut = cut[:len(cut)-1]
	}
	return string(cut)
}

// withPreview attaches a payload preview to a ParseError that does not carry
// one yet. Other errors pass through untouched.
func withPreview(err error, payload []byte) error {
	var perr *ParseError
	if errors.As(err, &perr) && perr.Preview == "" {
		perr.Preview = preview(payload)
	}
	return err
}
