/*
Package codegen turns natural-language requests into web application code.

A request flows through a fixed pipeline:

	prompt  -> PromptBuilder renders instructions ending in the fence block
	complete -> the completion provider answers
	normalize -> Normalize strips non-ASCII runes and ANSI escapes
	extract -> Extract takes the first html, css and javascript fences
	assemble -> Assemble fills blanks from existing code and renders the
	            single-document form

Split runs the last step backwards, breaking a document into its parts
without any provider call.

The pure steps are regular-expression based and never fail. Only the
provider calls can return errors.
*/
package codegen
