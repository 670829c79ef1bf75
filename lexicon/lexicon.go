// Package lexicon looks up word senses in WordNet.
package lexicon

// English is the ISO 639-3 code of the default sense index.
const English = "eng"

// Database finds the senses of a word. An empty lang or English uses the
// default index; other ISO 639-3 codes use the matching foreign index.
type Database interface {
	Synsets(word string, lang string) ([]*Synset, error)
}

// POS is a WordNet part of speech letter.
type POS byte

const (
	Noun         POS = 'n'
	Verb         POS = 'v'
	Adjective    POS = 'a'
	AdjSatellite POS = 's'
	Adverb       POS = 'r'
)

// lookup order of synsets
var partsOfSpeech = []POS{Noun, Verb, Adjective, Adverb}

func (p POS) file() string {
	switch p {
	case Noun:
		return "noun"
	case Verb:
		return "verb"
	case Adjective, AdjSatellite:
		return "adj"
	case Adverb:
		return "adv"
	}
	return ""
}

type Synset struct {
	ID         string
	POS        POS
	Lemmas     []Lemma
	Definition string
	Examples   []string
}

type Lemma struct {
	Name     string
	Antonyms []string
}

// LemmaNames returns the names of all lemmas in order.
func (s *Synset) LemmaNames() []string {
	names := make([]string, len(s.Lemmas))
	for i, l := range s.Lemmas {
		names[i] = l.Name
	}
	return names
}
