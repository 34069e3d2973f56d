package ratelimit

import "time"

// Rule limits one endpoint to Limit requests per Window per client, with up
// to Burst requests allowed back to back.
type Rule struct {
	Path   string
	Method string
	Limit  int
	Window time.Duration
	Burst  int
}

func (r Rule) capacity() int {
	if r.Burst > 0 {
		return r.Burst
	}
	return r.Limit
}

func (r Rule) refillRate() float64 {
	if r.Window <= 0 {
		return 0
	}
	return float64(r.Limit) / r.Window.Seconds()
}

// MatchRule returns the rule for method and path, or nil. Paths match
// exactly; the trigger endpoints have no sub-resources.
func MatchRule(path, method string, rules []Rule) *Rule {
	for i := range rules {
		if rules[i].Path == path && rules[i].Method == method {
			return &rules[i]
		}
	}
	return nil
}
