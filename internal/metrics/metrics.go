// Package metrics computes typing statistics from a typed-prefix
// snapshot. Everything here is pure computation, safe to call
// concurrently without synchronization.
package metrics

import (
	"math"
	"time"
)

// Result holds the statistics for one progress snapshot
type Result struct {
	WPM          int
	Accuracy     float64 // percent, one decimal, [0,100]
	Errors       int
	CorrectChars int
}

// Compute derives WPM, accuracy and error count from the race text,
// the player's typed prefix and the elapsed race time.
//
// The caller must bound typed to the text's length before calling
// (see Truncate) and is responsible for detecting completion by
// comparing typed against the full text.
func Compute(text, typed string, elapsed time.Duration) Result {
	textRunes := []rune(text)
	typedRunes := []rune(typed)

	correct := 0
	for i, r := range typedRunes {
		if i < len(textRunes) && textRunes[i] == r {
			correct++
		}
	}

	res := Result{
		CorrectChars: correct,
		Errors:       len(typedRunes) - correct,
		Accuracy:     100,
	}

	if len(typedRunes) > 0 {
		res.Accuracy = round1(float64(correct) / float64(len(typedRunes)) * 100)
	}

	minutes := elapsed.Minutes()
	if minutes > 0 {
		wpm := int(math.Round(float64(correct) / 5 / minutes))
		if wpm > 0 {
			res.WPM = wpm
		}
	}

	return res
}

// Progress returns the percentage of the race text covered by a typed
// prefix of the given rune length.
func Progress(text string, typedLen int) float64 {
	total := len([]rune(text))
	if total == 0 {
		return 0
	}
	if typedLen >= total {
		return 100
	}
	return round1(float64(typedLen) / float64(total) * 100)
}

// Truncate bounds typed to at most the length of the race text,
// tolerating over-long client input instead of rejecting it.
func Truncate(text, typed string) string {
	textRunes := []rune(text)
	typedRunes := []rune(typed)
	if len(typedRunes) <= len(textRunes) {
		return typed
	}
	return string(typedRunes[:len(textRunes)])
}

// round1 rounds to one decimal place
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
