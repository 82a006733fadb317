package mocks

import (
	"github.com/fastfingers/typerace/internal/dependencies/random"
)

// MockRandom is a scripted implementation of Random for testing
type MockRandom struct {
	intns     []int
	intnNext  int
	codes     []string
	codesNext int
}

var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates an empty MockRandom; queue results before use
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// Intn returns the next queued value, or 0 when the queue is empty
func (r *MockRandom) Intn(n int) int {
	if r.intnNext >= len(r.intns) {
		return 0
	}
	v := r.intns[r.intnNext]
	r.intnNext++
	return v
}

// Code returns the next queued code, or the empty string
func (r *MockRandom) Code(n int, alphabet string) string {
	if r.codesNext >= len(r.codes) {
		return ""
	}
	v := r.codes[r.codesNext]
	r.codesNext++
	return v
}

// QueueIntn appends values to the Intn queue
func (r *MockRandom) QueueIntn(values ...int) {
	r.intns = append(r.intns, values...)
}

// QueueCode appends values to the Code queue
func (r *MockRandom) QueueCode(values ...string) {
	r.codes = append(r.codes, values...)
}
