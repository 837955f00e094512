// Package proxy serves the AI transcript endpoint and shared diagrams.
//
// Routes:
//
//	POST /api/ai/transcript   {transcript, source} → {data: {...}}
//	POST /api/diagrams        snapshot JSON → {id}
//	PUT  /api/diagrams/{id}   snapshot JSON
//	GET  /api/diagrams/{id}   snapshot JSON
//	GET  /health
//
// The transcript route hands the text to a [Completer] and returns the
// JSON object it produces. Failures answer {error, details} with the
// upstream status when it lies in 400–599 and 500 otherwise. The diagram
// routes are mounted only when a snapshot store is configured.
//
// Configuration comes from an optional TOML file overlaid with the
// environment; see [LoadConfig].
package proxy
