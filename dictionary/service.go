// Package dictionary wires the dicofr components into one service: word
// lookups backed by the history store, fragment parsing, and autocomplete.
// The same operations are exposed over HTTP (Handler) and MCP (RegisterMCP).
package dictionary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"

	"github.com/hazyhaar/dicofr/definition"
	"github.com/hazyhaar/dicofr/history"
	"github.com/hazyhaar/dicofr/larousse"
	"github.com/hazyhaar/dicofr/sanitize"
	"github.com/hazyhaar/dicofr/wordlist"
)

// ErrWordRequired is returned when a lookup has no word.
var ErrWordRequired = errors.New("dictionary: word required")

// Fetcher retrieves the definition fragment of a word.
// *larousse.Client implements it.
type Fetcher interface {
	Fetch(ctx context.Context, word string) (*larousse.Result, error)
	Close() error
}

// Entry is the answer to one lookup.
type Entry struct {
	Word        string            `json:"word"`
	Found       bool              `json:"found"`
	FromHistory bool              `json:"from_history"`
	Definition  string            `json:"definition"` // sanitized fragment
	Parsed      definition.Result `json:"parsed"`
	Examples    []string          `json:"examples"`
	Markdown    string            `json:"markdown,omitempty"`
}

// Option configures a Service.
type Option func(*Service)

// WithFetcher replaces the upstream client.
func WithFetcher(f Fetcher) Option {
	return func(s *Service) { s.fetcher = f }
}

// WithStore uses an already opened history store instead of Config.DBPath.
// The Service closes it on Close.
func WithStore(st *history.Store) Option {
	return func(s *Service) { s.store = st }
}

// WithWords uses an in-memory word list instead of Config.WordsPath.
func WithWords(l *wordlist.List) Option {
	return func(s *Service) { s.words = l }
}

// Service is the dicofr application. Safe for concurrent use.
type Service struct {
	cfg         Config
	logger      *slog.Logger
	store       *history.Store
	fetcher     Fetcher
	words       *wordlist.List
	mdConverter *converter.Converter
}

// New builds a Service from cfg. Components not supplied through options
// are created from the configuration.
func New(cfg *Config, logger *slog.Logger, opts ...Option) (*Service, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	c := *cfg
	c.defaults()
	if logger == nil {
		logger = slog.Default()
	}

	s := &Service{
		cfg:         c,
		logger:      logger,
		mdConverter: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
	for _, o := range opts {
		o(s)
	}

	if s.store == nil {
		st, err := history.Open(c.DBPath, history.WithMkdirAll())
		if err != nil {
			return nil, err
		}
		s.store = st
	}
	if s.fetcher == nil {
		up := c.Upstream
		if up.Logger == nil {
			up.Logger = logger.With("component", "larousse")
		}
		s.fetcher = larousse.New(up)
	}
	if s.words == nil {
		wopts := wordlist.Options{
			Limit:  c.Search.Limit,
			MinLen: c.Search.MinLen,
			Logger: logger.With("component", "wordlist"),
		}
		if c.WordsPath != "" {
			l, err := wordlist.Load(c.WordsPath, wopts)
			if err != nil {
				s.store.Close()
				return nil, err
			}
			s.words = l
		} else {
			s.words = wordlist.New(nil, wopts)
		}
	}
	return s, nil
}

// Start launches background work: the word-list file watcher.
func (s *Service) Start(ctx context.Context) error {
	if s.cfg.WordsPath == "" {
		return nil
	}
	if err := s.words.Watch(ctx); err != nil {
		return fmt.Errorf("dictionary: watch words: %w", err)
	}
	s.logger.Info("dictionary: watching word list", "path", s.cfg.WordsPath, "words", s.words.Len())
	return nil
}

// Close releases the upstream client and the history store.
func (s *Service) Close() error {
	return errors.Join(s.fetcher.Close(), s.store.Close())
}

// Config returns the effective configuration.
func (s *Service) Config() Config { return s.cfg }

func normalizeWord(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// DefaultSenses asks Lookup and Parse for the configured number of senses.
// Any negative value does the same; 0 parses the header only.
const DefaultSenses = -1

func (s *Service) senses(maxSenses int) int {
	if maxSenses < 0 {
		return s.cfg.Parser.MaxSenses
	}
	return maxSenses
}

// Lookup returns the definition of word. A word already in the history is
// served from it; otherwise the fragment is fetched and, when the page had
// a definition, stored sanitized.
func (s *Service) Lookup(ctx context.Context, word string, maxSenses int) (*Entry, error) {
	key := normalizeWord(word)
	if key == "" {
		return nil, ErrWordRequired
	}
	maxSenses = s.senses(maxSenses)

	e := &Entry{Word: key}
	var fragment string

	stored, err := s.store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("dictionary: history get: %w", err)
	}
	if stored != nil {
		fragment = stored.Definition
		e.FromHistory = true
		e.Found = true
	} else {
		res, err := s.fetcher.Fetch(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("dictionary: fetch %q: %w", key, err)
		}
		fragment = sanitize.Fragment(res.Fragment)
		e.Found = res.Found
		if res.Found {
			if _, err := s.store.Add(ctx, key, fragment); err != nil {
				return nil, fmt.Errorf("dictionary: history add: %w", err)
			}
		}
	}

	e.Definition = sanitize.Fragment(fragment)
	e.Parsed = definition.Parse(e.Definition, maxSenses)
	e.Examples = definition.ExtractExamples(e.Definition)
	if e.Examples == nil {
		e.Examples = []string{}
	}
	if mdText, err := s.mdConverter.ConvertString(e.Definition); err != nil {
		s.logger.Warn("dictionary: markdown conversion failed", "word", key, "error", err)
	} else {
		e.Markdown = strings.TrimSpace(mdText)
	}

	s.logger.Debug("dictionary: lookup", "word", key, "found", e.Found,
		"from_history", e.FromHistory, "senses", len(e.Parsed.Senses))
	return e, nil
}

// Parse sanitizes fragment and extracts its header and at most maxSenses
// senses.
func (s *Service) Parse(fragment string, maxSenses int) definition.Result {
	return definition.Parse(sanitize.Fragment(fragment), s.senses(maxSenses))
}

// Suggest returns autocomplete candidates for term.
func (s *Service) Suggest(term string) []string {
	return s.words.Search(term)
}

// History returns every stored lookup, newest first. Definitions are
// sanitized again so rows written by older versions are safe to render.
func (s *Service) History(ctx context.Context) ([]*history.Entry, error) {
	items, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("dictionary: history list: %w", err)
	}
	for _, e := range items {
		e.Definition = sanitize.Fragment(e.Definition)
	}
	return items, nil
}

// DeleteHistory removes word from the history. Returns false when it was
// not stored.
func (s *Service) DeleteHistory(ctx context.Context, word string) (bool, error) {
	key := normalizeWord(word)
	if key == "" {
		return false, ErrWordRequired
	}
	ok, err := s.store.Delete(ctx, key)
	if err != nil {
		return false, fmt.Errorf("dictionary: history delete: %w", err)
	}
	return ok, nil
}

// ClearHistory removes every stored lookup.
func (s *Service) ClearHistory(ctx context.Context) (int64, error) {
	n, err := s.store.Clear(ctx)
	if err != nil {
		return 0, fmt.Errorf("dictionary: history clear: %w", err)
	}
	return n, nil
}
