package cache

import (
	"fmt"
	"sort"
	"strings"
)

// Call describes one cacheable read as a structured descriptor: the
// operation's namespace, its ordered business arguments and its named
// parameters. Two calls with identical business-relevant values derive the
// identical key regardless of call site.
type Call struct {
	Namespace string
	Args      []any
	Params    map[string]any
}

// Transport handles carry no business meaning and never reach the key.
var excludedParams = map[string]struct{}{
	"request":  {},
	"response": {},
}

const keySeparator = ":"

// Key renders the descriptor to its deterministic cache key: namespace,
// then args in order, then remaining params sorted by name as name=value.
func (c Call) Key() string {
	parts := make([]string, 0, 1+len(c.Args)+len(c.Params))
	parts = append(parts, c.Namespace)
	for _, a := range c.Args {
		parts = append(parts, fmt.Sprint(a))
	}
	names := make([]string, 0, len(c.Params))
	for name := range c.Params {
		if _, skip := excludedParams[name]; skip {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s=%v", name, c.Params[name]))
	}
	return strings.Join(parts, keySeparator)
}
