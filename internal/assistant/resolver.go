// Package assistant implements the scripted website assistant: a fixed,
// ordered keyword table that turns one line of visitor input into a canned
// reply and an optional follow-up action.
package assistant

import (
	"strings"

	"flux-web/internal/domain"
)

// Welcome is the assistant's opening line in every new chat session.
const Welcome = "Hello! I'm your AI assistant from Flux Solutions. How can I help you today?"

// Reply is the outcome of resolving one input line.
type Reply struct {
	Topic    Topic
	Response string
	Action   *domain.Action
}

// Resolve lower-cases input and returns the reply of the first matching rule,
// or the default menu when nothing matches. It has no side effects.
func Resolve(input string) Reply {
	lower := strings.ToLower(input)
	for _, r := range rules {
		if r.matches(lower) {
			return r.reply()
		}
	}
	return defaultRule.reply()
}

// Rules returns a copy of the rule table in evaluation order, followed by
// the default rule.
func Rules() []Rule {
	out := make([]Rule, 0, len(rules)+1)
	for _, r := range append(rules[:len(rules):len(rules)], defaultRule) {
		r.Triggers = append([]string(nil), r.Triggers...)
		r.Qualifiers = append([]string(nil), r.Qualifiers...)
		r.Action = copyAction(r.Action)
		out = append(out, r)
	}
	return out
}

func (r Rule) reply() Reply {
	return Reply{Topic: r.Topic, Response: r.Response, Action: copyAction(r.Action)}
}

func copyAction(a *domain.Action) *domain.Action {
	if a == nil {
		return nil
	}
	c := *a
	return &c
}
