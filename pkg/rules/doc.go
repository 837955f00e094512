// Package rules resolves declarative connection rules against the live node
// set of a diagram.
//
// A [Rule] connects every node matched by its From [Selector] to every node
// matched by its To selector, minus self-pairs and pairs vetoed by one of its
// [Exclusion] clauses. Rules are global or belong to an architecture [Model];
// a model may also carry [Suppression] conditions that veto matching pairs no
// matter which rule produced them.
//
// # Resolution order
//
// [Resolve] walks global rules first (tags "global-0", "global-1", …) and then
// the active model's rules (tags "model-{id}-0", …). An ordered pair is
// claimed by the first rule that produces it, and the claim happens before
// the dismissal check: a dismissed pair still blocks later rules from
// re-creating it under another tag.
//
// # Connection keys
//
// Every rendered connection is identified by a deterministic key:
//
//	"{src}->{dst}:rule-{tag}"   rule connection
//	"custom:{src}->{dst}"       user-drawn connection
//	"paid-ads-direct"           Paid Ads → Amplitude Analytics bypass
//
// Annotations are additionally looked up by the pair key "{src}->{dst}".
package rules
