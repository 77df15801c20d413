// Package logging provides slog-based structured logging for mcl.
//
// Two output formats are supported: a human-oriented console format used when
// running interactively and a JSON format for log files and scripting. Helper
// constructors (String, Int, ...) keep call sites terse, and NewComponentLogger
// standardizes the component attribute across subsystems.
package logging
