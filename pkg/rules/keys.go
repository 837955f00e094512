package rules

import (
	"fmt"
	"strings"

	"github.com/amplistack/amplistack/pkg/catalog"
)

// PaidAdsDirectKey identifies the Paid Ads → Amplitude Analytics bypass.
const PaidAdsDirectKey = "paid-ads-direct"

const (
	pairSep      = "->"
	rulePrefix   = ":rule-"
	customPrefix = "custom:"
)

// PairKey returns the ordered pair key "{src}->{dst}".
func PairKey(src, dst string) string { return src + pairSep + dst }

// RuleKey returns the key of a rule connection.
func RuleKey(src, dst, tag string) string { return PairKey(src, dst) + rulePrefix + tag }

// CustomKey returns the key of a user-drawn connection.
func CustomKey(src, dst string) string { return customPrefix + PairKey(src, dst) }

// ParsePair splits a pair key. It fails when either side is empty.
func ParsePair(key string) (src, dst string, ok bool) {
	src, dst, ok = strings.Cut(key, pairSep)
	if !ok || src == "" || dst == "" {
		return "", "", false
	}
	return src, dst, true
}

// ParseCustomKey extracts the endpoints of a custom connection key.
func ParseCustomKey(key string) (src, dst string, ok bool) {
	rest, ok := strings.CutPrefix(key, customPrefix)
	if !ok {
		return "", "", false
	}
	return ParsePair(rest)
}

// ParseRuleKey extracts the endpoints and tag of a rule connection key.
func ParseRuleKey(key string) (src, dst, tag string, ok bool) {
	i := strings.LastIndex(key, rulePrefix)
	if i < 0 {
		return "", "", "", false
	}
	src, dst, ok = ParsePair(key[:i])
	if !ok {
		return "", "", "", false
	}
	tag = key[i+len(rulePrefix):]
	return src, dst, tag, tag != ""
}

// Endpoints returns the source and target ids of any connection key,
// including the bypass key.
func Endpoints(key string) (src, dst string, ok bool) {
	switch {
	case key == PaidAdsDirectKey:
		return catalog.PaidAds, catalog.AmplitudeAnalytics, true
	case strings.HasPrefix(key, customPrefix):
		return ParseCustomKey(key)
	default:
		src, dst, _, ok = ParseRuleKey(key)
		return src, dst, ok
	}
}

// GlobalTag returns the tag of the i-th global rule.
func GlobalTag(i int) string { return fmt.Sprintf("global-%d", i) }

// ModelTag returns the tag of the i-th rule of model id.
func ModelTag(id string, i int) string { return fmt.Sprintf("model-%s-%d", id, i) }
