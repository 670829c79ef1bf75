package lexicon

import (
	"bufio"
	"io"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// WordNet reads a WordNet 3.x dict directory. Index and exception files are
// loaded in memory; synsets are read from the data files on demand.
type WordNet struct {
	index      map[POS]map[string][]int64
	exceptions map[POS]map[string][]string
	data       map[POS]*os.File
	foreign    map[string]*senseIndex
	logger     *log.Logger
}

var _ Database = (*WordNet)(nil)

// Open loads the WordNet database found in dir.
func Open(dir string) (*WordNet, error) {
	wn := &WordNet{
		index:      make(map[POS]map[string][]int64),
		exceptions: make(map[POS]map[string][]string),
		data:       make(map[POS]*os.File),
		foreign:    make(map[string]*senseIndex),
		logger:     log.New(os.Stderr, "[wordnet] ", log.LstdFlags),
	}
	for _, pos := range partsOfSpeech {
		idx, err := readIndex(filepath.Join(dir, "index."+pos.file()))
		if err != nil {
			_ = wn.Close()
			return nil, err
		}
		wn.index[pos] = idx

		exc, err := readExceptions(filepath.Join(dir, pos.file()+".exc"))
		if err != nil {
			_ = wn.Close()
			return nil, err
		}
		wn.exceptions[pos] = exc

		f, err := os.Open(filepath.Join(dir, "data."+pos.file()))
		if err != nil {
			_ = wn.Close()
			return nil, errors.Wrap(err, "open data file")
		}
		wn.data[pos] = f
	}
	wn.logger.Println("loaded", len(wn.index[Noun]), "nouns,", len(wn.index[Verb]), "verbs,",
		len(wn.index[Adjective]), "adjectives,", len(wn.index[Adverb]), "adverbs from", dir)
	return wn, nil
}

func (wn *WordNet) Close() error {
	var first error
	for _, f := range wn.data {
		if err := f.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func normalize(word string) string {
	return strings.Replace(strings.ToLower(strings.TrimSpace(word)), " ", "_", -1)
}

func (wn *WordNet) Synsets(word string, lang string) ([]*Synset, error) {
	if lang != "" && lang != English {
		return wn.foreignSynsets(word, lang)
	}
	lemma := normalize(word)
	if lemma == "" {
		return nil, nil
	}
	var result []*Synset
	seen := make(map[string]bool)
	for _, pos := range partsOfSpeech {
		for _, form := range wn.baseForms(lemma, pos) {
			for _, offset := range wn.index[pos][form] {
				ss, err := wn.synset(pos, offset, true)
				if err != nil {
					return nil, err
				}
				if seen[ss.ID] {
					continue
				}
				seen[ss.ID] = true
				result = append(result, ss)
			}
		}
	}
	return result, nil
}

func synsetID(offset int64, pos POS) string {
	return strconv.FormatInt(offset+100000000, 10)[1:] + "-" + string(pos)
}

func (wn *WordNet) synset(pos POS, offset int64, withAntonyms bool) (*Synset, error) {
	f, ok := wn.data[pos]
	if !ok {
		if pos != AdjSatellite {
			return nil, errors.Errorf("no data file for pos %c", pos)
		}
		f = wn.data[Adjective]
	}
	line, err := bufio.NewReader(io.NewSectionReader(f, offset, 1<<40)).ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, errors.Wrapf(err, "read %s at %d", pos.file(), offset)
	}
	rec, err := parseDataLine(line)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s at %d", pos.file(), offset)
	}
	if rec.offset != offset {
		return nil, errors.Errorf("data.%s is corrupt: offset %d holds %d", pos.file(), offset, rec.offset)
	}

	ss := &Synset{
		ID:         synsetID(rec.offset, rec.pos),
		POS:        rec.pos,
		Definition: rec.definition,
		Examples:   rec.examples,
		Lemmas:     make([]Lemma, len(rec.words)),
	}
	for i, w := range rec.words {
		ss.Lemmas[i].Name = w
	}
	if !withAntonyms {
		return ss, nil
	}
	for _, ptr := range rec.pointers {
		if ptr.symbol != "!" || ptr.source == 0 || ptr.source > len(ss.Lemmas) {
			continue
		}
		target, err := wn.synset(ptr.pos, ptr.offset, false)
		if err != nil {
			return nil, err
		}
		if ptr.target == 0 || ptr.target > len(target.Lemmas) {
			continue
		}
		lemma := &ss.Lemmas[ptr.source-1]
		lemma.Antonyms = append(lemma.Antonyms, target.Lemmas[ptr.target-1].Name)
	}
	return ss, nil
}

type pointer struct {
	symbol string
	offset int64
	pos    POS
	source int
	target int
}

type dataRecord struct {
	offset     int64
	pos        POS
	words      []string
	pointers   []pointer
	definition string
	examples   []string
}

var (
	lemmaMarker = regexp.MustCompile(`^(.*?)(\([a-z]+\))?$`)
	quoted      = regexp.MustCompile(`"([^"]*)"`)
)

// parseDataLine reads
// offset lex_filenum ss_type w_cnt [word lex_id]... p_cnt [ptr]... [frames] | gloss
func parseDataLine(line string) (*dataRecord, error) {
	columns, gloss := line, ""
	if i := strings.Index(line, "|"); i >= 0 {
		columns, gloss = line[:i], line[i+1:]
	}
	f := strings.Fields(columns)
	if len(f) < 4 {
		return nil, errors.New("short data line")
	}
	rec := &dataRecord{}
	var err error
	if rec.offset, err = strconv.ParseInt(f[0], 10, 64); err != nil {
		return nil, errors.Wrap(err, "synset offset")
	}
	if len(f[2]) != 1 {
		return nil, errors.Errorf("bad synset type %q", f[2])
	}
	rec.pos = POS(f[2][0])
	wordCount, err := strconv.ParseInt(f[3], 16, 32)
	if err != nil {
		return nil, errors.Wrap(err, "word count")
	}
	i := 4
	for n := 0; n < int(wordCount); n++ {
		if i+1 >= len(f) {
			return nil, errors.New("truncated word list")
		}
		name := lemmaMarker.FindStringSubmatch(f[i])[1]
		rec.words = append(rec.words, name)
		i += 2
	}
	if i >= len(f) {
		return nil, errors.New("missing pointer count")
	}
	ptrCount, err := strconv.Atoi(f[i])
	if err != nil {
		return nil, errors.Wrap(err, "pointer count")
	}
	i++
	for n := 0; n < ptrCount; n++ {
		if i+3 >= len(f) {
			return nil, errors.New("truncated pointer list")
		}
		ptr := pointer{symbol: f[i]}
		if ptr.offset, err = strconv.ParseInt(f[i+1], 10, 64); err != nil {
			return nil, errors.Wrap(err, "pointer offset")
		}
		ptr.pos = POS(f[i+2][0])
		st, err := strconv.ParseUint(f[i+3], 16, 16)
		if err != nil {
			return nil, errors.Wrap(err, "pointer source/target")
		}
		ptr.source, ptr.target = int(st>>8), int(st&0xff)
		rec.pointers = append(rec.pointers, ptr)
		i += 4
	}

	gloss = strings.TrimSpace(gloss)
	for _, m := range quoted.FindAllStringSubmatch(gloss, -1) {
		rec.examples = append(rec.examples, m[1])
	}
	rec.definition = strings.Trim(quoted.ReplaceAllString(gloss, ""), "; ")
	return rec, nil
}

func openScanner(path string) (*os.File, *bufio.Scanner, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	return f, sc, nil
}

// readIndex reads
// lemma pos synset_cnt p_cnt [ptr_symbol]... sense_cnt tagsense_cnt synset_offset...
func readIndex(path string) (map[string][]int64, error) {
	f, sc, err := openScanner(path)
	if err != nil {
		return nil, errors.Wrap(err, "open index")
	}
	defer f.Close()

	index := make(map[string][]int64)
	for sc.Scan() {
		line := sc.Text()
		if line == "" || line[0] == ' ' {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			return nil, errors.Errorf("%s: short line %q", path, line)
		}
		synsetCount, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, errors.Wrapf(err, "%s: synset count of %s", path, fields[0])
		}
		ptrCount, err := strconv.Atoi(fields[3])
		if err != nil {
			return nil, errors.Wrapf(err, "%s: pointer count of %s", path, fields[0])
		}
		start := 4 + ptrCount + 2
		if start+synsetCount > len(fields) {
			return nil, errors.Errorf("%s: truncated line for %s", path, fields[0])
		}
		offsets := make([]int64, 0, synsetCount)
		for _, s := range fields[start : start+synsetCount] {
			offset, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "%s: offset of %s", path, fields[0])
			}
			offsets = append(offsets, offset)
		}
		index[fields[0]] = offsets
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return index, nil
}

// readExceptions reads "inflected base [base...]" lines. Missing files are
// treated as empty.
func readExceptions(path string) (map[string][]string, error) {
	exc := make(map[string][]string)
	f, sc, err := openScanner(path)
	if os.IsNotExist(err) {
		return exc, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "open exceptions")
	}
	defer f.Close()
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 2 {
			continue
		}
		exc[fields[0]] = append(exc[fields[0]], fields[1:]...)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return exc, nil
}
