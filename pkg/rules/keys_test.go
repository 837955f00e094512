package rules

import "testing"

func TestKeyFormats(t *testing.T) {
	if got := RuleKey("paid-ads", "website", "global-0"); got != "paid-ads->website:rule-global-0" {
		t.Errorf("RuleKey = %q", got)
	}
	if got := CustomKey("braze", "email"); got != "custom:braze->email" {
		t.Errorf("CustomKey = %q", got)
	}
	if got := PairKey("a", "b"); got != "a->b" {
		t.Errorf("PairKey = %q", got)
	}
}

func TestParseCustomKey(t *testing.T) {
	tests := []struct {
		key      string
		src, dst string
		ok       bool
	}{
		{"custom:braze->email", "braze", "email", true},
		{"custom:->email", "", "", false},
		{"braze->email", "", "", false},
		{"custom:braze", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			src, dst, ok := ParseCustomKey(tt.key)
			if src != tt.src || dst != tt.dst || ok != tt.ok {
				t.Errorf("ParseCustomKey = %q, %q, %v", src, dst, ok)
			}
		})
	}
}

func TestParseRuleKey(t *testing.T) {
	src, dst, tag, ok := ParseRuleKey("snowflake->amplitude-analytics:rule-model-warehouse-to-amplitude-0")
	if !ok || src != "snowflake" || dst != "amplitude-analytics" || tag != "model-warehouse-to-amplitude-0" {
		t.Errorf("ParseRuleKey = %q %q %q %v", src, dst, tag, ok)
	}
	if _, _, _, ok := ParseRuleKey("custom:a->b"); ok {
		t.Error("custom key parsed as rule key")
	}
}

func TestEndpoints(t *testing.T) {
	tests := []struct {
		key      string
		src, dst string
	}{
		{PaidAdsDirectKey, "paid-ads", "amplitude-analytics"},
		{"custom:a->b", "a", "b"},
		{"a->b:rule-global-3", "a", "b"},
	}
	for _, tt := range tests {
		src, dst, ok := Endpoints(tt.key)
		if !ok || src != tt.src || dst != tt.dst {
			t.Errorf("Endpoints(%q) = %q, %q, %v", tt.key, src, dst, ok)
		}
	}
}
