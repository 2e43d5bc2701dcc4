// Package lexicon implements dictionary-based category scoring: a parser
// for LIWC-format .dic files and a word-count scorer producing one scalar
// per category. The same machinery serves the linguistic-category dictionary
// and the moral-foundations dictionary.
package lexicon

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/SabreenNoorAli/final-project-EDLD654/internal/errors"
)

// entry is one dictionary pattern with its category memberships.
type entry struct {
	pattern    string
	prefix     bool // trailing * matched as prefix
	categories []string
}

// Dictionary is a parsed category lexicon.
type Dictionary struct {
	Name       string
	categories []string // sorted, deterministic column order
	exact      map[string][]string
	prefixes   []entry // longest-first for most-specific match
}

// Categories returns the category names in sorted order.
func (d *Dictionary) Categories() []string {
	out := make([]string, len(d.categories))
	copy(out, d.categories)
	return out
}

// LoadDictionary parses a LIWC-format .dic file: a category section between
// two % marker lines (id<TAB>name per line), then word entries
// (pattern<TAB>id...). A missing file is fatal to the feature block.
func LoadDictionary(name, path string) (*Dictionary, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ArtifactMissing(path)
		}
		return nil, fmt.Errorf("failed to open dictionary %s: %w", path, err)
	}
	defer file.Close()
	return parseDictionary(name, file)
}

func parseDictionary(name string, file *os.File) (*Dictionary, error) {
	dict := &Dictionary{Name: name, exact: make(map[string][]string)}
	idToName := make(map[string]string)

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	markers := 0 // between the first and second % lines lies the category section
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "%" {
			markers++
			continue
		}

		fields := strings.Fields(line)
		if markers == 1 {
			if len(fields) < 2 {
				return nil, errors.InvalidInput(fmt.Sprintf("%s line %d: malformed category definition", name, lineNo))
			}
			idToName[fields[0]] = strings.ToLower(fields[1])
			continue
		}

		if len(fields) < 2 {
			// A pattern with no categories scores nothing; skip it.
			continue
		}
		pattern := strings.ToLower(fields[0])
		var cats []string
		for _, id := range fields[1:] {
			catName, ok := idToName[id]
			if !ok {
				return nil, errors.InvalidInput(fmt.Sprintf("%s line %d: unknown category id %q", name, lineNo, id))
			}
			cats = append(cats, catName)
		}
		if strings.HasSuffix(pattern, "*") {
			dict.prefixes = append(dict.prefixes, entry{
				pattern:    strings.TrimSuffix(pattern, "*"),
				prefix:     true,
				categories: cats,
			})
		} else {
			dict.exact[pattern] = cats
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dictionary %s: %w", name, err)
	}
	if len(idToName) == 0 {
		return nil, errors.InvalidInput(fmt.Sprintf("dictionary %s has no category section", name))
	}

	// Longest prefix wins when several match.
	sort.Slice(dict.prefixes, func(i, j int) bool {
		return len(dict.prefixes[i].pattern) > len(dict.prefixes[j].pattern)
	})

	seen := make(map[string]bool)
	for _, catName := range idToName {
		if !seen[catName] {
			seen[catName] = true
			dict.categories = append(dict.categories, catName)
		}
	}
	sort.Strings(dict.categories)
	return dict, nil
}

// lookup returns the categories a token scores into, or nil.
func (d *Dictionary) lookup(token string) []string {
	if cats, ok := d.exact[token]; ok {
		return cats
	}
	for _, e := range d.prefixes {
		if strings.HasPrefix(token, e.pattern) {
			return e.categories
		}
	}
	return nil
}
