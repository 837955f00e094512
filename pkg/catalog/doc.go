// Package catalog defines the fixed pipeline layers and the built-in node
// catalog of the diagram editor.
//
// A diagram is organised into five layers that always appear in the same
// order (see [Sequence]):
//
//	marketing → experiences → sources → analysis → activation
//
// Each layer offers a set of catalog [Item] values. Items are identified by a
// stable string id (for example "paid-ads" or "amplitude-analytics") which is
// also the key used by connection rules, snapshots and connection keys.
//
// # Ordering
//
// Nodes inside a layer are ordered by [Priority] first and slot second.
// A handful of anchor items ([PaidAds], [AmplitudeSDK], [AmplitudeAnalytics])
// carry priority 0 so that they stay leftmost; everything else defaults to
// [DefaultPriority].
package catalog
