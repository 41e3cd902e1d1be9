package core

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/mikey-austin/mu_browse/internal/ports"
	"github.com/mikey-austin/mu_browse/pkg/mu"
)

// Resolver picks the browse session a command is sent to.
type Resolver struct {
	Presence ports.Broker
	Config   Config
}

// ResolveBrowse resolves a session selector against the browse sessions that
// are online. An empty selector falls back to the configured default, then to
// the only session present. Selectors match a node id, an alias, an exact name
// and finally the closest fuzzy name.
func (r Resolver) ResolveBrowse(ctx context.Context, selector string) (mu.Presence, error) {
	if strings.TrimSpace(selector) == "" {
		selector = r.Config.Defaults.Browse
	}

	presence, err := r.Presence.ListPresence(ctx)
	if err != nil {
		return mu.Presence{}, WrapError(ExitRuntime, "list presence", err)
	}
	sessions := browseSessions(presence)

	if strings.TrimSpace(selector) == "" {
		switch len(sessions) {
		case 0:
			return mu.Presence{}, &CLIError{Code: ExitNotFound, Msg: "no browse session online"}
		case 1:
			return sessions[0], nil
		}
		return mu.Presence{}, &CLIError{Code: ExitUsage, Msg: "session required: " + suggestionList(sessions)}
	}
	return resolveSelector(selector, sessions, r.Config.Aliases)
}

// browseSessions keeps browse nodes that have not switched browsing off.
func browseSessions(presence []mu.Presence) []mu.Presence {
	out := make([]mu.Presence, 0, len(presence))
	for _, p := range presence {
		if p.Kind != "browse" {
			continue
		}
		if on, ok := p.Caps["browse"].(bool); ok && !on {
			continue
		}
		out = append(out, p)
	}
	return out
}

func resolveSelector(selector string, sessions []mu.Presence, aliases map[string]string) (mu.Presence, error) {
	selector = strings.TrimSpace(selector)
	if alias, ok := aliases[selector]; ok {
		selector = alias
	}
	if strings.HasPrefix(selector, "mu:") {
		return resolveExact(selector, sessions)
	}

	var matches []mu.Presence
	for _, p := range sessions {
		if strings.EqualFold(p.Name, selector) || strings.EqualFold(p.NodeID, selector) {
			matches = append(matches, p)
		}
	}
	if len(matches) == 0 {
		matches = closestByName(selector, sessions)
	}

	switch len(matches) {
	case 0:
		return mu.Presence{}, &CLIError{Code: ExitNotFound, Msg: fmt.Sprintf("no browse session matches %q", selector)}
	case 1:
		return matches[0], nil
	}
	return mu.Presence{}, &CLIError{Code: ExitUsage, Msg: fmt.Sprintf("ambiguous session %q: %s", selector, suggestionList(matches))}
}

// closestByName returns the sessions whose names fuzzy match selector with the
// smallest edit distance.
func closestByName(selector string, sessions []mu.Presence) []mu.Presence {
	names := make([]string, len(sessions))
	for i, p := range sessions {
		names[i] = p.Name
	}
	ranks := fuzzy.RankFindNormalizedFold(selector, names)
	if len(ranks) == 0 {
		return nil
	}
	sort.Sort(ranks)
	best := ranks[0].Distance
	var out []mu.Presence
	for _, rank := range ranks {
		if rank.Distance != best {
			break
		}
		out = append(out, sessions[rank.OriginalIndex])
	}
	return out
}

func resolveExact(nodeID string, sessions []mu.Presence) (mu.Presence, error) {
	for _, p := range sessions {
		if p.NodeID == nodeID {
			return p, nil
		}
	}
	return mu.Presence{}, &CLIError{Code: ExitNotFound, Msg: fmt.Sprintf("browse session not found: %s", nodeID)}
}

func suggestionList(matches []mu.Presence) string {
	names := make([]string, 0, len(matches))
	for _, p := range matches {
		names = append(names, fmt.Sprintf("%s (%s)", p.Name, p.NodeID))
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
