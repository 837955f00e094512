package rules

import "github.com/amplistack/amplistack/pkg/catalog"

// Model ids of the built-in architecture presets.
const (
	ModelAmplitudeToWarehouse = "amplitude-to-warehouse"
	ModelWarehouseToAmplitude = "warehouse-to-amplitude"
	ModelCDPInTheMiddle       = "cdp-in-the-middle"
)

func layers(ls ...catalog.Layer) []catalog.Layer { return ls }

func ids(s ...string) []string { return s }

// unreachableExperiences are owned experiences without a digital entry point.
var unreachableExperiences = ids("ott", "call-center", "pos")

// Default returns the built-in rule set.
func Default() *Set {
	return &Set{
		Global: []Rule{
			{
				From: Selector{Categories: layers(catalog.Marketing)},
				To:   Selector{Categories: layers(catalog.Experiences)},
				Exclusions: []Exclusion{
					{TargetIDs: unreachableExperiences},
					{SourceIDs: ids(catalog.PaidAds), TargetIDs: ids("web-app", "mobile-app", "ott", "call-center", "pos")},
					{SourceIDs: ids("sms"), TargetIDs: ids("web-app", "website", "ott", "call-center", "pos")},
					{SourceIDs: ids("push-notifications"), TargetIDs: ids("web-app", "website", "ott", "call-center", "pos")},
					{SourceIDs: ids("search", "referral"), TargetIDs: ids("web-app", "mobile-app", "ott", "call-center", "pos")},
					{SourceIDs: ids("email"), TargetIDs: ids("mobile-app")},
				},
			},
			{
				From:       Selector{Categories: layers(catalog.Experiences)},
				To:         Selector{IDs: ids(catalog.AmplitudeSDK)},
				Exclusions: []Exclusion{{SourceIDs: ids("call-center", "pos")}},
			},
			{
				From: Selector{Categories: layers(catalog.Experiences)},
				To:   Selector{IDs: catalog.CDPLike},
			},
			{
				From: Selector{IDs: ids(catalog.AmplitudeSDK)},
				To:   Selector{IDs: ids(catalog.AmplitudeAnalytics)},
			},
			{
				From:       Selector{IDs: catalog.CDPLike},
				To:         Selector{Categories: layers(catalog.Analysis)},
				Exclusions: []Exclusion{{TargetIDs: ids("bi", catalog.LLM)}},
			},
			{
				From: Selector{IDs: catalog.CDPLike},
				To:   Selector{Categories: layers(catalog.Activation)},
			},
			{
				From: Selector{IDs: ids(catalog.AmplitudeAnalytics)},
				To:   Selector{IDs: ids(catalog.LLM)},
			},
			{
				From: Selector{IDs: ids(catalog.AmplitudeAnalytics)},
				To:   Selector{IDs: catalog.PrimaryWarehouses},
			},
			{
				From: Selector{IDs: ids(catalog.AmplitudeAnalytics)},
				To:   Selector{Categories: layers(catalog.Activation)},
			},
			{
				From: Selector{IDs: catalog.Warehouses},
				To:   Selector{IDs: ids("bi")},
			},
		},
		Models: []Model{
			{
				ID:     ModelAmplitudeToWarehouse,
				Name:   "Amplitude → Warehouse",
				Add:    ids(catalog.AmplitudeAnalytics, catalog.Snowflake, catalog.AmplitudeSDK, "mobile-app", "web-app"),
				Remove: ids(catalog.CDP, catalog.Segment, catalog.Tealium, "etl"),
			},
			{
				ID:   ModelWarehouseToAmplitude,
				Name: "Warehouse → Amplitude",
				Rules: []Rule{{
					From: Selector{IDs: ids(catalog.Snowflake)},
					To:   Selector{IDs: ids(catalog.AmplitudeAnalytics)},
				}},
				Suppress: []Suppression{{
					From: Selector{IDs: ids(catalog.AmplitudeAnalytics)},
					To:   Selector{IDs: ids(catalog.Snowflake)},
				}},
				Add:    ids(catalog.AmplitudeAnalytics, catalog.Snowflake, "mobile-app", "etl", "web-app"),
				Remove: ids(catalog.CDP, catalog.Segment, catalog.Tealium, catalog.AmplitudeSDK),
			},
			{
				ID:     ModelCDPInTheMiddle,
				Name:   "CDP in the Middle",
				Add:    ids(catalog.CDP, "mobile-app", "web-app", catalog.AmplitudeAnalytics),
				Remove: ids(catalog.AmplitudeSDK, "etl"),
			},
		},
	}
}
