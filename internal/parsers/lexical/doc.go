// Package lexical implements driven.CodeParser with regular expressions.
//
// The parser understands the surface syntax of JavaScript and TypeScript
// well enough to name functions, list imports and exports, and relate files
// to the functions they mention. It does not build a syntax tree, so results
// are heuristic: function declarations inside comments or strings are
// reported, calls are matched by name only, and parameter lists that contain
// a closing parenthesis (for example a default value that calls a function)
// are cut short at that parenthesis.
package lexical
