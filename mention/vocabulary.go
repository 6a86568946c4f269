package mention

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidCode = errors.New("invalid department code")
	ErrAliasChain  = errors.New("alias target is itself an alias")
)

// Department codes recognized by default, as listed by the UCSC registrar.
var defaultCodes = []string{
	"acen", "ams", "anth", "aplx", "art", "artg", "astr", "bioc", "bme", "ce", "chem", "chin", "clei",
	"clni", "clte", "cmmu", "cmpe", "cmpm", "cmps", "cowl", "cres", "crwn", "cs", "danm", "eart", "econ",
	"educ", "ee", "eeb", "envs", "film", "fmst", "fren", "game", "germ", "gree", "havc", "hebr", "his",
	"hisc", "ital", "japn", "jwst", "krsg", "laad", "lals", "latn", "lgst", "ling", "lit", "ltcr", "ltel",
	"ltfr", "ltge", "ltgr", "ltin", "ltit", "ltmo", "ltpr", "ltsp", "ltwl", "math", "mcdb", "merr", "metx",
	"musc", "oaks", "ocea", "phil", "phye", "phys", "poli", "port", "prtr", "psyc", "punj", "russ", "scic",
	"socd", "socy", "span", "sphs", "stev", "thea", "tim", "ucdc", "writ", "yidd",
}

var defaultAliases = map[string]string{
	"cs": "cmps",
	"ce": "cmpe",
}

// AliasTable rewrites informal department codes to the catalog's code.
type AliasTable struct {
	aliases map[string]string
}

func NewAliasTable(aliases map[string]string) (AliasTable, error) {
	table := AliasTable{aliases: make(map[string]string, len(aliases))}
	for from, to := range aliases {
		from, err := cleanCode(from)
		if err != nil {
			return AliasTable{}, err
		}
		to, err := cleanCode(to)
		if err != nil {
			return AliasTable{}, err
		}
		if from == to {
			continue
		}
		table.aliases[from] = to
	}

	for from, to := range table.aliases {
		if _, found := table.aliases[to]; found {
			return AliasTable{}, fmt.Errorf("%w: %v -> %v", ErrAliasChain, from, to)
		}
	}

	return table, nil
}

// Apply returns the canonical code for code, or code itself.
func (a AliasTable) Apply(code string) string {
	if canonical, found := a.aliases[code]; found {
		return canonical
	}
	return code
}

func (a AliasTable) Sources() []string {
	sources := make([]string, 0, len(a.aliases))
	for from := range a.aliases {
		sources = append(sources, from)
	}
	sort.Strings(sources)
	return sources
}

func (a AliasTable) Len() int {
	return len(a.aliases)
}

// Vocabulary is the closed set of department codes the scanner recognizes, together
// with the aliases applied during normalization. A Vocabulary is immutable and safe
// for concurrent use.
type Vocabulary struct {
	codes   map[string]struct{}
	aliases AliasTable
	minLen  int
	maxLen  int
}

func NewVocabulary(codes []string, aliases AliasTable) (*Vocabulary, error) {
	vocabulary := &Vocabulary{codes: make(map[string]struct{}, len(codes)+aliases.Len()), aliases: aliases}

	for _, code := range codes {
		code, err := cleanCode(code)
		if err != nil {
			return nil, err
		}
		vocabulary.add(code)
	}

	// Informal codes must be recognizable in text even when the list omits them
	for _, code := range aliases.Sources() {
		vocabulary.add(code)
	}

	return vocabulary, nil
}

func (v *Vocabulary) add(code string) {
	v.codes[code] = struct{}{}
	if v.minLen == 0 || len(code) < v.minLen {
		v.minLen = len(code)
	}
	if len(code) > v.maxLen {
		v.maxLen = len(code)
	}
}

func DefaultVocabulary() *Vocabulary {
	aliases, err := NewAliasTable(defaultAliases)
	if err != nil {
		panic(err)
	}
	vocabulary, err := NewVocabulary(defaultCodes, aliases)
	if err != nil {
		panic(err)
	}
	return vocabulary
}

type vocabularyFile struct {
	Departments []string          `yaml:"departments"`
	Aliases     map[string]string `yaml:"aliases"`
}

// LoadVocabulary reads a YAML document of the form
//
//	departments: [acen, ams, cmps]
//	aliases:
//	  cs: cmps
func LoadVocabulary(r io.Reader) (*Vocabulary, error) {
	var file vocabularyFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("decode vocabulary: %w", err)
	}

	aliases, err := NewAliasTable(file.Aliases)
	if err != nil {
		return nil, err
	}

	return NewVocabulary(file.Departments, aliases)
}

// LoadVocabularyFile loads a YAML vocabulary from path, or the default vocabulary
// when path is empty.
func LoadVocabularyFile(path string) (*Vocabulary, error) {
	if path == "" {
		return DefaultVocabulary(), nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return LoadVocabulary(file)
}

func (v *Vocabulary) Contains(code string) bool {
	_, found := v.codes[code]
	return found
}

func (v *Vocabulary) Aliases() AliasTable {
	return v.aliases
}

func (v *Vocabulary) Len() int {
	return len(v.codes)
}

// Codes returns the recognized codes in lexical order.
func (v *Vocabulary) Codes() []string {
	codes := make([]string, 0, len(v.codes))
	for code := range v.codes {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// match returns the longest code starting at byte offset pos of text.
func (v *Vocabulary) match(text string, pos int) (string, bool) {
	for n := v.maxLen; n >= v.minLen && n > 0; n-- {
		if pos+n > len(text) {
			continue
		}
		candidate, ok := asciiLower(text[pos : pos+n])
		if !ok {
			continue
		}
		if _, found := v.codes[candidate]; found {
			return candidate, true
		}
	}
	return "", false
}

// find returns the leftmost department token at or after pos.
func (v *Vocabulary) find(text string, pos int) (code string, start int, end int, found bool) {
	for i := pos; i < len(text); i++ {
		if code, ok := v.match(text, i); ok {
			return code, i, i + len(code), true
		}
	}
	return "", 0, 0, false
}

func cleanCode(code string) (string, error) {
	cleaned := strings.ToLower(strings.TrimSpace(code))
	if cleaned == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidCode)
	}
	if _, ok := asciiLower(cleaned); !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidCode, code)
	}
	return cleaned, nil
}

// asciiLower lowercases s, reporting false when s holds anything but ASCII letters.
func asciiLower(s string) (string, bool) {
	b := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z':
			b[i] = c
		case c >= 'A' && c <= 'Z':
			b[i] = c + ('a' - 'A')
		default:
			return "", false
		}
	}
	return string(b), true
}
