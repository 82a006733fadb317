package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeCleanPrefix(t *testing.T) {
	res := Compute("hello world", "hello", time.Minute)

	assert.Equal(t, 5, res.CorrectChars)
	assert.Equal(t, 0, res.Errors)
	assert.Equal(t, 100.0, res.Accuracy)
	assert.Equal(t, 1, res.WPM)
}

func TestComputeTransposedLetters(t *testing.T) {
	// "quikc" mismatches "quick" at exactly two positions; comparison
	// is strictly positional.
	res := Compute("The quick brown fox", "The quikc brown fox", 30*time.Second)

	assert.Equal(t, 17, res.CorrectChars)
	assert.Equal(t, 2, res.Errors)
	assert.Equal(t, 89.5, res.Accuracy)
}

func TestComputeScenarioFourErrors(t *testing.T) {
	// Reference scenario: 16 of 20 positions correct after half a
	// minute gives 80.0% accuracy and (16/5)/0.5 = 6 wpm (rounded).
	text := "The quick brown fox."
	typed := "The quikc brwon fox."
	res := Compute(text, typed, 30*time.Second)

	assert.Equal(t, 16, res.CorrectChars)
	assert.Equal(t, 4, res.Errors)
	assert.Equal(t, 80.0, res.Accuracy)
	assert.Equal(t, 6, res.WPM)
}

func TestComputeEmptyPrefix(t *testing.T) {
	res := Compute("abc", "", time.Minute)

	assert.Equal(t, 0, res.Errors)
	assert.Equal(t, 100.0, res.Accuracy)
	assert.Equal(t, 0, res.WPM)
}

func TestComputeZeroElapsed(t *testing.T) {
	res := Compute("abc", "abc", 0)
	assert.Equal(t, 0, res.WPM)

	res = Compute("abc", "abc", -time.Second)
	assert.Equal(t, 0, res.WPM)
}

func TestComputeAllWrong(t *testing.T) {
	res := Compute("aaaa", "bbbb", time.Minute)

	assert.Equal(t, 0, res.CorrectChars)
	assert.Equal(t, 4, res.Errors)
	assert.Equal(t, 0.0, res.Accuracy)
	assert.Equal(t, 0, res.WPM)
}

func TestComputeBoundsHold(t *testing.T) {
	text := "the rain in spain stays mainly on the plain"
	prefixes := []string{"", "t", "the r", "the rain im spain", text}

	for _, p := range prefixes {
		res := Compute(text, p, 17*time.Second)
		assert.GreaterOrEqual(t, res.Accuracy, 0.0)
		assert.LessOrEqual(t, res.Accuracy, 100.0)
		assert.GreaterOrEqual(t, res.WPM, 0)
		assert.Equal(t, len([]rune(p)), res.CorrectChars+res.Errors)
	}
}

func TestProgress(t *testing.T) {
	assert.Equal(t, 0.0, Progress("abcd", 0))
	assert.Equal(t, 50.0, Progress("abcd", 2))
	assert.Equal(t, 100.0, Progress("abcd", 4))
	assert.Equal(t, 100.0, Progress("abcd", 9))
	assert.Equal(t, 0.0, Progress("", 3))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", "abcdef"))
	assert.Equal(t, "ab", Truncate("abc", "ab"))
	assert.Equal(t, "", Truncate("abc", ""))
}
