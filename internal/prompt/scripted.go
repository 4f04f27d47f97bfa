package prompt

import (
	"fmt"
	"sync"
)

// Cancel, used as a scripted pick, answers the question with ErrCancelled.
const Cancel = -1

// Scripted answers questions from queues, consuming one answer per question.
// A question asked after its queue is empty fails with ErrNotInteractive.
type Scripted struct {
	Picks      []int
	MultiPicks [][]int
	Inputs     []string

	mu    sync.Mutex
	asked []string
}

func (s *Scripted) SelectOne(message string, options []Option) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.asked = append(s.asked, message)

	if len(s.Picks) == 0 {
		return -1, ErrNotInteractive
	}
	pick := s.Picks[0]
	s.Picks = s.Picks[1:]

	if pick == Cancel {
		return -1, ErrCancelled
	}
	if pick < 0 || pick >= len(options) {
		return -1, fmt.Errorf("scripted pick %d out of range for %d options", pick, len(options))
	}
	return pick, nil
}

func (s *Scripted) SelectMany(message string, options []Option) ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.asked = append(s.asked, message)

	if len(s.MultiPicks) == 0 {
		return nil, ErrNotInteractive
	}
	picks := s.MultiPicks[0]
	s.MultiPicks = s.MultiPicks[1:]

	if picks == nil {
		return nil, ErrCancelled
	}
	for _, p := range picks {
		if p < 0 || p >= len(options) {
			return nil, fmt.Errorf("scripted pick %d out of range for %d options", p, len(options))
		}
	}
	return picks, nil
}

func (s *Scripted) Input(message, def string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.asked = append(s.asked, message)

	if len(s.Inputs) == 0 {
		return "", ErrNotInteractive
	}
	answer := s.Inputs[0]
	s.Inputs = s.Inputs[1:]

	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// Asked returns the messages of every question asked so far.
func (s *Scripted) Asked() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.asked...)
}
