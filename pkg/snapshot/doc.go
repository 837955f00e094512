// Package snapshot defines the persisted form of a diagram and the compact
// URL encoding used to share it.
//
// A [Snapshot] is plain data: it carries no behaviour beyond JSON
// (un)marshalling. Empty slots of a layer are written as JSON null so the
// format stays compatible with snapshots produced by the browser editor.
//
// [EncodeURL] compresses the JSON form with gzip and encodes it as
// unpadded base64url. [DecodeURL] accepts both the compressed form and
// plain base64url-encoded JSON.
package snapshot
