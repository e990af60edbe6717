// Package intent classifies a free-text question into one of the two
// supported query shapes by fixed sentence patterns. There is no language
// model behind this: a question either fits a pattern or it is unrecognized.
package intent

import (
	"regexp"
	"strings"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindIngredient
	KindInteraction
)

// Intent is the parsed form of one user question. Drug is set for
// ingredient queries, DrugA/DrugB for interaction queries. A matched
// pattern with an empty captured name still reports its kind, so the
// caller can ask for the missing name instead of claiming the question
// was not understood.
type Intent struct {
	Kind  Kind
	Drug  string
	DrugA string
	DrugB string
}

var (
	// "타이레놀 성분이 뭐야?"
	ingredientRe = regexp.MustCompile(`^(.+?)\s*성분[이]? ?(뭐야|알려줘)\??`)

	// "타이레놀과 아스피린을 같이 복용해도 돼?"
	interactionRe = regexp.MustCompile(`^(.+?)\s*(?:이랑|랑|과|와|하고)\s+(.+?)(?:를|을)?\s+(?:같이|함께)\s+(?:복용해도|먹어도)\s+(?:돼|되나|될까|되나요)\??`)

	// Bare "타이레놀 아스피린" — exactly two tokens, nothing else. Tried only
	// when the ingredient pattern already missed, so "타이레놀 성분" never
	// falls through to an interaction lookup.
	twoTokenRe = regexp.MustCompile(`^\s*([^\s]+)\s+([^\s]+)\s*$`)
)

func Parse(prompt string) Intent {
	prompt = strings.TrimSpace(prompt)

	if m := ingredientRe.FindStringSubmatch(prompt); m != nil {
		return Intent{Kind: KindIngredient, Drug: trimName(m[1])}
	}

	m := interactionRe.FindStringSubmatch(prompt)
	if m == nil {
		m = twoTokenRe.FindStringSubmatch(prompt)
	}
	if m != nil {
		return Intent{Kind: KindInteraction, DrugA: trimName(m[1]), DrugB: trimName(m[2])}
	}

	return Intent{Kind: KindUnknown}
}

func trimName(s string) string {
	return strings.Trim(s, "() ")
}
