// Package lang implements the dice expression language: a conventional
// arithmetic grammar extended with the binary dice operator d, the ','
// highest/lowest selector, and single-character variables.
//
// Expressions are processed in three stages. [ParseString] tokenizes and
// parses source text into an [Expr] tree. [Compile] lowers the tree into a
// [Roll], folding constant subtrees and closing over dynamic ones. Invoking
// the Roll draws fresh randomness, resolves variable bindings, and produces
// a [Value] holding either a scalar or a list.
//
// A compiled Roll is immutable and may be invoked concurrently. The
// package-level [Obtain] front end caches compiled rolls by source text so
// repeated evaluation of the same expression skips the parse and compile
// stages.
package lang
