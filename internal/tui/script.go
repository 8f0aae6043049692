package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Script is a Driver that answers prompts from a fixed list, in order.
// Input and Password answers pass through the prompt's validator; a rejected
// answer is recorded and the next answer is tried, the way a user retypes.
// Select answers name the option label. Confirm answers are "y" or "n".
// When the answers run out every prompt returns ErrAborted.
type Script struct {
	mu       sync.Mutex
	answers  []string
	prompts  []string
	output   []string
	rejected []string
}

// NewScript returns a driver that replays answers.
func NewScript(answers ...string) *Script {
	return &Script{answers: answers}
}

// Push appends answers to the script.
func (s *Script) Push(answers ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.answers = append(s.answers, answers...)
}

func (s *Script) next(message string) (string, error) {
	s.prompts = append(s.prompts, message)
	if len(s.answers) == 0 {
		return "", ErrAborted
	}
	a := s.answers[0]
	s.answers = s.answers[1:]
	return a, nil
}

func (s *Script) input(cfg InputConfig) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for {
		a, err := s.next(cfg.Message)
		if err != nil {
			return "", err
		}
		if a == "" && cfg.Default != "" {
			a = cfg.Default
		}
		if cfg.Validator != nil {
			if verr := cfg.Validator(a); verr != nil {
				s.rejected = append(s.rejected, verr.Error())
				continue
			}
		}
		return a, nil
	}
}

func (s *Script) Input(ctx context.Context, cfg InputConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return s.input(cfg)
}

func (s *Script) Password(ctx context.Context, cfg InputConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return s.input(cfg)
}

func (s *Script) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a, err := s.next(cfg.Message)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(a)) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	case "":
		return cfg.Default, nil
	default:
		return false, fmt.Errorf("script: %q is not a confirm answer", a)
	}
}

func (s *Script) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a, err := s.next(cfg.Message)
	if err != nil {
		return 0, err
	}
	idx := indexOf(cfg.Options, a)
	if idx < 0 {
		return 0, fmt.Errorf("script: %q is not one of %q", a, cfg.Options)
	}
	return idx, nil
}

func (s *Script) Info(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.output = append(s.output, msg)
	return nil
}

// Output returns every Info message.
func (s *Script) Output() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.output...)
}

// Transcript is Output joined by newlines.
func (s *Script) Transcript() string {
	return strings.Join(s.Output(), "\n")
}

// Rejected returns the validator messages of rejected answers.
func (s *Script) Rejected() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.rejected...)
}

// Prompts returns the message of every prompt shown.
func (s *Script) Prompts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.prompts...)
}

// Remaining reports how many answers were not consumed.
func (s *Script) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.answers)
}
