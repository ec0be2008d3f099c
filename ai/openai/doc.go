// Package openai implements the ai.Embedder capability against
// OpenAI-compatible embedding APIs (OpenAI, Ollama, LocalAI, vLLM) via
// langchaingo.
package openai
