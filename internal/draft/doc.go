// Package draft turns raw model output into a commit message.
//
// Sanitize is the mandatory cleanup applied to every response. StripChatter
// is an optional pass that removes conversational lead-ins and sign-offs
// some models add despite the prompt.
package draft
