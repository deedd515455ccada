// Package output provides structured output and exit-coded errors for the scribe CLI.
//
// Commands print through a Printer, which renders lipgloss-styled text for
// humans and structured JSON when --json is set:
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), output.IsTTY(cmd.OutOrStdout()))
//	printer.Success(map[string]any{"message": "commit created"})
//	printer.Error(err)
//
// # Exit Codes
//
//	output.ExitSuccess     // 0
//	output.ExitUserError   // 1: precondition failed (no staged changes, bad flags, endpoint down)
//	output.ExitSystemError // 2: hard request failure, git failure, I/O error
//	output.ExitCapacity    // 3: model capacity (retries exhausted, empty result)
//
// Errors built with NewUserError, NewSystemError and NewCapacityError carry
// their code through wrapping, so GetExitCode works on any error chain.
package output
