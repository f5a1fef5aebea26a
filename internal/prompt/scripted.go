package prompt

import "fmt"

// Scripted answers questions from a fixed list, in order. Choice answers are
// option values, Confirm answers are "y" or "n". A Text answer rejected by
// the validator is consumed and the next answer is tried, the same way a
// user would be asked again.
type Scripted struct {
	answers []string

	// Asked records every label presented, including re-asks.
	Asked []string
	// Rejected records Text answers the validator refused.
	Rejected []string
}

// NewScripted returns a Scripted source that replays answers.
func NewScripted(answers ...string) *Scripted {
	return &Scripted{answers: answers}
}

// Remaining reports how many answers have not been consumed.
func (s *Scripted) Remaining() int {
	return len(s.answers)
}

func (s *Scripted) next(label string) (string, error) {
	s.Asked = append(s.Asked, label)
	if len(s.answers) == 0 {
		return "", fmt.Errorf("no scripted answer for %q: %w", label, ErrCancelled)
	}
	a := s.answers[0]
	s.answers = s.answers[1:]
	return a, nil
}

// Choice implements Source.
func (s *Scripted) Choice(label string, options []Option) (string, error) {
	a, err := s.next(label)
	if err != nil {
		return "", err
	}
	for _, opt := range options {
		if opt.Value == a {
			return a, nil
		}
	}
	return "", fmt.Errorf("scripted answer %q is not an option for %q", a, label)
}

// Text implements Source.
func (s *Scripted) Text(label string, validate func(string) error) (string, error) {
	for {
		a, err := s.next(label)
		if err != nil {
			return "", err
		}
		if validate != nil && validate(a) != nil {
			s.Rejected = append(s.Rejected, a)
			continue
		}
		return a, nil
	}
}

// Confirm implements Source.
func (s *Scripted) Confirm(label string, def bool) (bool, error) {
	a, err := s.next(label)
	if err != nil {
		return false, err
	}
	switch a {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	}
	return false, fmt.Errorf("scripted answer %q is not y/n for %q", a, label)
}
