// Package repl implements the interactive read-roll-print loop: dice
// expressions are compiled and rolled as they are entered, with fuzzy tab
// completion over control commands and bound variable names, persistent
// input history, and per-session roll options and bindings managed through
// ':' commands.
package repl
