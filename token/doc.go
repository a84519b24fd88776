// Package token provides the lexical pieces of JSON shared by the parser and
// the printer.
//
// [ScanString] and [ScanNumber] decode a single string or number literal at
// the start of a buffer. [AppendQuote] is their inverse for strings. [Minify]
// strips insignificant whitespace and comments in place.
package token
