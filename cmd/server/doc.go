// Package main is the entry point for the web code generation server.
//
// The server turns natural-language prompts and design images into HTML,
// CSS and JavaScript through a chat-completion provider (Groq) and a
// vision provider (Gemini), and answers web development questions.
//
// Configuration:
//   - Environment variables, optionally loaded from a .env file
//   - CLI flags (override env vars)
//   - Defaults for development
//
// Usage:
//
//	# Production mode
//	GROQ_API_KEY=... GEMINI_API_KEY=... ./server -port 8000
//
//	# Development mode (console logs, debug level)
//	./server -dev
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
