package main

import (
	"sort"
	"strings"

	"github.com/peterh/liner"
	"github.com/sahilm/fuzzy"

	babalang "github.com/RocketRace/babalang"
)

// completer builds a liner completion function offering the reserved
// vocabulary and the names currently bound in the session, fuzzy-matched
// against the word under the cursor.
func completer(ip *babalang.Interpreter) liner.Completer {
	return func(line string) []string {
		word, prefix := lastWord(line)
		if word == "" {
			return nil
		}

		candidates := babalang.Keywords()
		candidates = append(candidates, ip.Global.Names()...)
		sort.Strings(candidates)

		matches := fuzzy.Find(word, candidates)
		out := make([]string, 0, len(matches))
		for _, m := range matches {
			out = append(out, prefix+m.Str)
		}
		return out
	}
}

// lastWord splits line at the final whitespace run, returning the trailing
// word and everything before it.
func lastWord(line string) (word, prefix string) {
	idx := strings.LastIndexAny(line, " \t")
	if idx < 0 {
		return line, ""
	}
	return line[idx+1:], line[:idx+1]
}
