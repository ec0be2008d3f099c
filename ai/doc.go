// Package ai defines the embedding capability used by the vector store and
// its configuration. Implementations live in subpackages: ai/seeded (default
// deterministic embedder), ai/openai (OpenAI-compatible services via
// langchaingo) and ai/mock (test doubles).
package ai
