package crossword

import (
	"bufio"
	"embed"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"sync"
)

// DefaultDifficulty is used when a requested difficulty has no word list.
const DefaultDifficulty = "medium"

// ErrEmptyWordList is returned when a list has no usable word.
var ErrEmptyWordList = errors.New("word list has no usable word")

// ErrWordListExists is returned by RegisterNewWordList for a taken name.
var ErrWordListExists = errors.New("word list already registered")

// Entry is a candidate word and the clue shown for it.
type Entry struct {
	Word       string `json:"word"`
	Definition string `json:"definition"`
}

//go:embed wordlists/*.txt
var wordlistFS embed.FS

var lists = struct {
	sync.RWMutex
	byName map[string][]Entry
}{byName: loadEmbedded()}

func loadEmbedded() map[string][]Entry {
	files, err := wordlistFS.ReadDir("wordlists")
	if err != nil {
		panic(err)
	}
	out := make(map[string][]Entry, len(files))
	for _, f := range files {
		r, err := wordlistFS.Open(path.Join("wordlists", f.Name()))
		if err != nil {
			panic(err)
		}
		entries, err := ParseWordList(r)
		r.Close()
		if err != nil {
			panic(fmt.Sprintf("embedded word list %s: %v", f.Name(), err))
		}
		out[strings.TrimSuffix(f.Name(), ".txt")] = entries
	}
	return out
}

// ParseWordList reads one "WORD; definition" pair per line. Blank lines and
// lines starting with '#' are skipped. Words are upper-cased and must only
// contain letters A-Z.
func ParseWordList(r io.Reader) ([]Entry, error) {
	var entries []Entry
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		word, def, _ := strings.Cut(line, ";")
		w, ok := normalizeWord(word)
		if !ok {
			return nil, fmt.Errorf("line %d: invalid word %q", n, strings.TrimSpace(word))
		}
		entries = append(entries, Entry{Word: w, Definition: strings.TrimSpace(def)})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read word list: %w", err)
	}
	return entries, nil
}

// WordList returns a copy of the list registered for difficulty, falling
// back to DefaultDifficulty.
func WordList(difficulty string) []Entry {
	lists.RLock()
	defer lists.RUnlock()

	l, ok := lists.byName[difficulty]
	if !ok {
		l = lists.byName[DefaultDifficulty]
	}
	return append([]Entry(nil), l...)
}

// HasWordList reports whether a list is registered under name.
func HasWordList(name string) bool {
	lists.RLock()
	defer lists.RUnlock()
	_, ok := lists.byName[name]
	return ok
}

// Difficulties returns the registered list names in alphabetical order.
func Difficulties() []string {
	lists.RLock()
	defer lists.RUnlock()

	names := make([]string, 0, len(lists.byName))
	for name := range lists.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RegisterWordList adds or replaces the list for name. Invalid words are
// dropped; a list left empty is rejected.
func RegisterWordList(name string, entries []Entry) error {
	return register(name, entries, true)
}

// RegisterNewWordList is RegisterWordList for a name not taken yet. It
// returns ErrWordListExists when a list is already registered under name.
func RegisterNewWordList(name string, entries []Entry) error {
	return register(name, entries, false)
}

func register(name string, entries []Entry, replace bool) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("word list name is empty")
	}
	clean := normalizeEntries(entries)
	if len(clean) == 0 {
		return ErrEmptyWordList
	}

	lists.Lock()
	defer lists.Unlock()
	if _, ok := lists.byName[name]; ok && !replace {
		return fmt.Errorf("%w: %s", ErrWordListExists, name)
	}
	lists.byName[name] = clean
	return nil
}

// normalizeEntries upper-cases words and drops invalid ones and duplicates,
// keeping the first definition seen.
func normalizeEntries(entries []Entry) []Entry {
	seen := make(map[string]bool, len(entries))
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		w, ok := normalizeWord(e.Word)
		if !ok || seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, Entry{Word: w, Definition: strings.TrimSpace(e.Definition)})
	}
	return out
}

func normalizeWord(s string) (string, bool) {
	w := strings.ToUpper(strings.TrimSpace(s))
	if w == "" {
		return "", false
	}
	for i := 0; i < len(w); i++ {
		if w[i] < 'A' || w[i] > 'Z' {
			return "", false
		}
	}
	return w, true
}
