// Package ingest turns a natural-language transcript into diagram content.
//
// A [Client] posts the transcript to the AI endpoint and parses the
// node/edge graph it answers with. [Apply] merges that graph into a
// diagram: every node is resolved or created in its layer, every edge
// whose endpoints are both known becomes a custom connection. Entries
// that cannot be used are counted and skipped; the rest still applies.
//
// [Session] runs the whole exchange the way the editor does: one request
// at a time, and the diagram is cleared only once a usable answer has
// arrived, so a failed request leaves it untouched.
package ingest
