package lexicon

import (
	"strings"
)

type substitution struct {
	suffix string
	repl   string
}

var detachments = map[POS][]substitution{
	Noun: {
		{"s", ""}, {"ses", "s"}, {"ves", "f"}, {"xes", "x"}, {"zes", "z"},
		{"ches", "ch"}, {"shes", "sh"}, {"men", "man"}, {"ies", "y"},
	},
	Verb: {
		{"s", ""}, {"ies", "y"}, {"es", "e"}, {"es", ""},
		{"ed", "e"}, {"ed", ""}, {"ing", "e"}, {"ing", ""},
	},
	Adjective: {
		{"er", ""}, {"est", ""}, {"er", "e"}, {"est", "e"},
	},
}

func detach(forms []string, pos POS) []string {
	var out []string
	for _, form := range forms {
		for _, sub := range detachments[pos] {
			if strings.HasSuffix(form, sub.suffix) {
				out = append(out, form[:len(form)-len(sub.suffix)]+sub.repl)
			}
		}
	}
	return out
}

// baseForms reduces form to the base forms indexed under pos. Exception
// lists take precedence over suffix detachment.
func (wn *WordNet) baseForms(form string, pos POS) []string {
	known := func(forms []string) []string {
		var out []string
		seen := make(map[string]bool)
		for _, f := range forms {
			if _, ok := wn.index[pos][f]; ok && !seen[f] {
				seen[f] = true
				out = append(out, f)
			}
		}
		return out
	}

	if exc, ok := wn.exceptions[pos][form]; ok {
		return known(append([]string{form}, exc...))
	}

	forms := detach([]string{form}, pos)
	if res := known(append([]string{form}, forms...)); len(res) > 0 {
		return res
	}
	for i := 0; len(forms) > 0 && i < len(form); i++ {
		forms = detach(forms, pos)
		if res := known(forms); len(res) > 0 {
			return res
		}
	}
	return nil
}
