package templates

import (
	"sort"
	"sync"

	"github.com/printerm/printerm/pkg/errors"
	"github.com/printerm/printerm/pkg/logging"
)

// Store resolves templates by name. Definitions in the user template
// directory shadow builtins with the same name. Loading happens once,
// on first use; the cache is safe for concurrent readers.
type Store struct {
	mu      sync.RWMutex
	userDir string
	byName  map[string]*Template
	loaded  bool
}

// NewStore creates a store reading user definitions from userDir.
// An empty userDir serves builtins only.
func NewStore(userDir string) *Store {
	return &Store{userDir: userDir}
}

// Load returns the template with the given name.
func (s *Store) Load(name string) (*Template, error) {
	if err := s.ensure(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	tmpl, ok := s.byName[name]
	if !ok {
		return nil, errors.Newf(errors.ErrTemplateNotFound, "Template '%s' not found.", name)
	}
	return tmpl, nil
}

// List returns the name and description of every known template,
// sorted by name.
func (s *Store) List() ([]Summary, error) {
	if err := s.ensure(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	summaries := make([]Summary, 0, len(s.byName))
	for _, tmpl := range s.byName {
		summaries = append(summaries, tmpl.Summary())
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Name < summaries[j].Name
	})
	return summaries, nil
}

// Names returns every known template name, sorted.
func (s *Store) Names() ([]string, error) {
	summaries, err := s.List()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(summaries))
	for i, sum := range summaries {
		names[i] = sum.Name
	}
	return names, nil
}

// Reload discards the cache and re-reads all definitions.
func (s *Store) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reloadLocked()
}

func (s *Store) ensure() error {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()
	if loaded {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return nil
	}
	return s.reloadLocked()
}

func (s *Store) reloadLocked() error {
	logger := logging.GetLogger("templates")

	byName := make(map[string]*Template)

	if s.userDir != "" {
		userTemplates, err := LoadTemplatesFromDir(s.userDir)
		if err != nil {
			return err
		}
		for _, tmpl := range userTemplates {
			if _, exists := byName[tmpl.Name]; exists {
				logger.Warn().
					Str("template", tmpl.Name).
					Str("source", tmpl.Source).
					Msg("duplicate template name in user directory, keeping first")
				continue
			}
			byName[tmpl.Name] = tmpl
		}
	}

	builtins, err := LoadBuiltinTemplates()
	if err != nil {
		return err
	}
	for _, tmpl := range builtins {
		if _, exists := byName[tmpl.Name]; exists {
			// user definition shadows the builtin
			continue
		}
		byName[tmpl.Name] = tmpl
	}

	logger.Debug().
		Int("count", len(byName)).
		Str("userDir", s.userDir).
		Msg("templates loaded")

	s.byName = byName
	s.loaded = true
	return nil
}
