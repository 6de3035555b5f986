// Package wordlist serves autocomplete suggestions from a dictionary file.
//
// The file is a JSON object whose keys are the known words; values are
// ignored. Matching is a case-insensitive prefix match on the NFC form, so
// a decomposed "e + combining acute" typed by the user finds "écouter".
package wordlist

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/text/unicode/norm"
)

// Options tunes search behaviour.
type Options struct {
	Limit  int          // max suggestions. Default: 10.
	MinLen int          // minimum term length in runes. Default: 2.
	Logger *slog.Logger // default slog.Default()
}

func (o *Options) defaults() {
	if o.Limit <= 0 {
		o.Limit = 10
	}
	if o.MinLen <= 0 {
		o.MinLen = 2
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
}

type entry struct {
	word string
	key  string // lower-cased NFC form
}

// List is an in-memory word list. Safe for concurrent use.
type List struct {
	path string
	opts Options

	mu      sync.RWMutex
	entries []entry
}

// New returns a List built from words, not backed by a file.
func New(words []string, opts Options) *List {
	opts.defaults()
	l := &List{opts: opts}
	l.set(words)
	return l
}

// Load reads the JSON object at path.
func Load(path string, opts Options) (*List, error) {
	opts.defaults()
	words, err := readWords(path)
	if err != nil {
		return nil, err
	}
	l := &List{path: path, opts: opts}
	l.set(words)
	return l, nil
}

func readWords(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("wordlist: read %s: %w", path, err)
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("wordlist: decode %s: %w", path, err)
	}
	words := make([]string, 0, len(obj))
	for w := range obj {
		words = append(words, w)
	}
	return words, nil
}

func (l *List) set(words []string) {
	entries := make([]entry, 0, len(words))
	for _, w := range words {
		if w == "" {
			continue
		}
		entries = append(entries, entry{word: w, key: fold(w)})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].key != entries[j].key {
			return entries[i].key < entries[j].key
		}
		return entries[i].word < entries[j].word
	})

	l.mu.Lock()
	l.entries = entries
	l.mu.Unlock()
}

func fold(s string) string {
	return strings.ToLower(norm.NFC.String(s))
}

// Len returns the number of words.
func (l *List) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Search returns up to Limit words starting with term. Terms shorter than
// MinLen runes return an empty slice.
func (l *List) Search(term string) []string {
	out := []string{}
	key := fold(strings.TrimSpace(term))
	if utf8.RuneCountInString(key) < l.opts.MinLen {
		return out
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	// Entries are sorted by key, so all matches are contiguous.
	i := sort.Search(len(l.entries), func(i int) bool { return l.entries[i].key >= key })
	for ; i < len(l.entries) && len(out) < l.opts.Limit; i++ {
		if !strings.HasPrefix(l.entries[i].key, key) {
			break
		}
		out = append(out, l.entries[i].word)
	}
	return out
}

// Reload re-reads the backing file. On error the current list is kept.
func (l *List) Reload() error {
	if l.path == "" {
		return fmt.Errorf("wordlist: no backing file")
	}
	words, err := readWords(l.path)
	if err != nil {
		return err
	}
	l.set(words)
	return nil
}

// Watch reloads the list whenever its file is written, created or renamed
// into place, until ctx is done. The parent directory is watched so that
// editors replacing the file atomically are handled.
func (l *List) Watch(ctx context.Context) error {
	if l.path == "" {
		return fmt.Errorf("wordlist: no backing file")
	}
	abs, err := filepath.Abs(l.path)
	if err != nil {
		return err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("wordlist: watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return fmt.Errorf("wordlist: watch %s: %w", filepath.Dir(abs), err)
	}

	go func() {
		defer fw.Close()
		log := l.opts.Logger.With("path", abs)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-fw.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
					continue
				}
				if err := l.Reload(); err != nil {
					log.Warn("wordlist: reload failed, keeping previous list", "error", err)
					continue
				}
				log.Info("wordlist: reloaded", "words", l.Len())
			case err, ok := <-fw.Errors:
				if !ok {
					return
				}
				log.Warn("wordlist: watcher error", "error", err)
			}
		}
	}()
	return nil
}
