// Package providers defines the contract between the generation pipeline
// and the external model providers.
//
// Providers are opaque text-in/text-out services reached over the network:
//   - completion: OpenAI-compatible chat completion (Groq by default)
//   - vision: Gemini image understanding
//
// Every upstream failure surfaces as a *ProviderError carrying the provider
// name and the upstream message. Calls are never retried.
//
// Example Usage:
//
//	gw := completion.New(completion.Config{APIKey: key, BaseURL: url, Model: model}, logger)
//	text, err := gw.Complete(ctx, prompt, 0.7)
package providers
