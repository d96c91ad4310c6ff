// Package responder resolves the reply text for a normalized inbound message
// from the static response tables.
package responder

import (
	"strings"

	"github.com/chatrelay/chatrelay/internal/inbound"
)

// Rule maps a keyword substring to its reply. Keywords are matched
// case-insensitively against the message text.
type Rule struct {
	Keyword string
	Reply   string
}

// Resolver applies, in order: the default reply, a per-user override, and an
// ordered keyword scan. A keyword match always wins over the per-user reply;
// the scan stops at the first matching rule, not the last.
type Resolver struct {
	defaultReply string
	users        map[string]string
	rules        []Rule
}

// NewResolver builds a Resolver from the static tables. Rule order is
// preserved as given; keywords are lowercased once here so Resolve only
// lowercases the message.
func NewResolver(defaultReply string, users map[string]string, rules []Rule) *Resolver {
	normalized := make([]Rule, 0, len(rules))
	for _, rule := range rules {
		keyword := strings.ToLower(strings.TrimSpace(rule.Keyword))
		if keyword == "" {
			continue
		}
		normalized = append(normalized, Rule{Keyword: keyword, Reply: rule.Reply})
	}
	if users == nil {
		users = map[string]string{}
	}
	return &Resolver{
		defaultReply: defaultReply,
		users:        users,
		rules:        normalized,
	}
}

// Resolve returns the reply for msg. It never returns an error and always
// produces exactly one reply string.
func (r *Resolver) Resolve(msg inbound.Message) string {
	reply := r.defaultReply
	if userReply, ok := r.users[msg.UserID]; ok {
		reply = userReply
	}
	lower := strings.ToLower(msg.Text)
	for _, rule := range r.rules {
		if strings.Contains(lower, rule.Keyword) {
			reply = rule.Reply
			break
		}
	}
	return reply
}
