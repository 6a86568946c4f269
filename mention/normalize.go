package mention

import "strings"

// PadFunc formats a course number into the catalog's key form. It receives the
// number with its letter already upper-cased and must be idempotent.
type PadFunc func(number string) string

// Normalize turns m into a catalog key: the department is lowercased and de-aliased,
// the number upper-cased and padded. A nil pad leaves the number unpadded.
func Normalize(m Mention, aliases AliasTable, pad PadFunc) Mention {
	m.Department = aliases.Apply(strings.ToLower(strings.TrimSpace(m.Department)))
	m.Number = strings.ToUpper(strings.TrimSpace(m.Number))
	if pad != nil {
		m.Number = pad(m.Number)
	}
	return m
}

type Normalizer struct {
	Aliases AliasTable
	Pad     PadFunc
}

func NewNormalizer(vocabulary *Vocabulary, pad PadFunc) Normalizer {
	return Normalizer{Aliases: vocabulary.Aliases(), Pad: pad}
}

func (n Normalizer) Normalize(m Mention) Mention {
	return Normalize(m, n.Aliases, n.Pad)
}

func (n Normalizer) NormalizeAll(mentions Sequence) Sequence {
	normalized := make(Sequence, 0, len(mentions))
	for _, m := range mentions {
		normalized = append(normalized, n.Normalize(m))
	}
	return normalized
}
