package lexicon

import (
	"bufio"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// senseIndex maps lemmas of one language to English synsets.
type senseIndex struct {
	synsets map[string][]string // normalized lemma -> synset ids
	lemmas  map[string][]string // synset id -> lemma names
}

// LoadForeign walks dir for Open Multilingual Wordnet files named
// wn-data-<iso3>.tab and registers a sense index per language.
func (wn *WordNet) LoadForeign(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() || !strings.HasPrefix(name, "wn-data-") || !strings.HasSuffix(name, ".tab") {
			return nil
		}
		lang := strings.TrimSuffix(strings.TrimPrefix(name, "wn-data-"), ".tab")
		idx, err := readTab(path, lang)
		if err != nil {
			return err
		}
		wn.foreign[lang] = idx
		wn.logger.Println("loaded", len(idx.synsets), "lemmas for", lang, "from", path)
		return nil
	})
}

// Languages lists the codes of loaded foreign sense indexes.
func (wn *WordNet) Languages() []string {
	langs := make([]string, 0, len(wn.foreign))
	for lang := range wn.foreign {
		langs = append(langs, lang)
	}
	return langs
}

// readTab reads "<offset>-<pos>\t<lang>:lemma\t<lemma>" rows.
func readTab(path string, lang string) (*senseIndex, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open sense index")
	}
	defer f.Close()

	idx := &senseIndex{
		synsets: make(map[string][]string),
		lemmas:  make(map[string][]string),
	}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		if line == "" || line[0] == '#' {
			continue
		}
		cols := strings.Split(line, "\t")
		if len(cols) < 3 || cols[1] != lang+":lemma" {
			continue
		}
		id := cols[0]
		lemma := strings.Replace(strings.TrimSpace(cols[2]), " ", "_", -1)
		if lemma == "" {
			continue
		}
		key := normalize(lemma)
		idx.synsets[key] = append(idx.synsets[key], id)
		idx.lemmas[id] = append(idx.lemmas[id], lemma)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return idx, nil
}

func parseSynsetID(id string) (int64, POS, error) {
	i := strings.LastIndexByte(id, '-')
	if i <= 0 || i != len(id)-2 {
		return 0, 0, errors.Errorf("bad synset id %q", id)
	}
	offset, err := strconv.ParseInt(id[:i], 10, 64)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "bad synset id %q", id)
	}
	return offset, POS(id[i+1]), nil
}

func (wn *WordNet) foreignSynsets(word string, lang string) ([]*Synset, error) {
	idx, ok := wn.foreign[lang]
	if !ok {
		return nil, errors.Errorf("no sense index for language %q", lang)
	}
	var result []*Synset
	for _, id := range idx.synsets[normalize(word)] {
		offset, pos, err := parseSynsetID(id)
		if err != nil {
			return nil, err
		}
		ss, err := wn.synset(pos, offset, false)
		if err != nil {
			return nil, err
		}
		names := idx.lemmas[id]
		ss.Lemmas = make([]Lemma, len(names))
		for i, name := range names {
			ss.Lemmas[i].Name = name
		}
		result = append(result, ss)
	}
	return result, nil
}
