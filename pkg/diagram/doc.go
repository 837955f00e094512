// Package diagram holds the editable state of an architecture diagram.
//
// [State] is the single owner of everything the editor mutates: the live
// node registry, per-layer slot arrays, user-defined catalog entries, the
// ordered sets of custom, dismissed and dotted connection keys, connection
// annotations, node notes, Amplitude SDK badges, the active model and the
// diagram title.
//
// Every mutating operation completes synchronously and then hands a fresh
// [snapshot.Snapshot] to the configured [Persister]. Persistence is best
// effort: errors are logged and never returned to the caller.
//
// # Connections
//
// Rule connections are not stored; they are recomputed from the rule set on
// every render. The state only records what the user did to them: dismissal
// (sticky until [State.Clear]), the dotted style and annotations. Custom
// connections are stored explicitly as "custom:{src}->{dst}" keys.
//
// State is not safe for concurrent use.
package diagram
