package awekas

import "sync"

// settings holds the values the poller reads on every tick.
type settings struct {
	mu       sync.RWMutex
	apiKey   string
	language string
}

func (s *settings) APIKey() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.apiKey
}

func (s *settings) RequestLanguage() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ResolveRequestLanguage(s.language)
}

func (s *settings) LabelLanguage() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ResolveLabelLanguage(s.language)
}

func (s *settings) setAPIKey(key string) {
	s.mu.Lock()
	s.apiKey = key
	s.mu.Unlock()
}

func (s *settings) setLanguage(lang string) {
	s.mu.Lock()
	s.language = lang
	s.mu.Unlock()
}
