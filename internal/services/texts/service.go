// Package texts supplies the race paragraphs. Text selection is a
// collaborator of the race engine, not part of it: rooms only ever see
// the single string they were created with.
package texts

import (
	"bufio"
	"os"
	"strings"
	"sync"

	"github.com/fastfingers/typerace/internal/dependencies/random"
)

// defaultTexts are the built-in practice paragraphs used when no text
// file is configured
var defaultTexts = []string{
	"The quick brown fox jumps over the lazy dog. This pangram contains every letter of the alphabet at least once, making it perfect for typing practice and testing keyboard layouts.",
	"In a hole in the ground there lived a hobbit. Not a nasty, dirty, wet hole, filled with the ends of worms and an oozy smell, nor yet a dry, bare, sandy hole with nothing in it to sit down on or to eat.",
	"Technology has revolutionized the way we communicate, work, and live our daily lives. From smartphones to artificial intelligence, these innovations continue to shape our future in remarkable ways.",
	"The art of typing quickly and accurately requires practice, patience, and proper finger placement. Regular practice sessions can significantly improve your words per minute and reduce typing errors over time.",
}

// Service hands out race paragraphs
type Service struct {
	random random.Random

	mu    sync.RWMutex
	texts []string
}

// New creates a texts service seeded with the built-in paragraphs
func New(rnd random.Random) *Service {
	return &Service{
		random: rnd,
		texts:  defaultTexts,
	}
}

// LoadFromFile replaces the paragraph set with the contents of a file,
// one paragraph per line. Blank lines are skipped.
func (s *Service) LoadFromFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var texts []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			texts = append(texts, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	if len(texts) > 0 {
		s.mu.Lock()
		s.texts = texts
		s.mu.Unlock()
	}
	return nil
}

// LoadTexts directly replaces the paragraph set (useful for testing)
func (s *Service) LoadTexts(texts []string) {
	if len(texts) == 0 {
		return
	}
	s.mu.Lock()
	s.texts = texts
	s.mu.Unlock()
}

// Pick returns a random paragraph
func (s *Service) Pick() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.texts[s.random.Intn(len(s.texts))]
}

// Count returns the number of loaded paragraphs
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.texts)
}
