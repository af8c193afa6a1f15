// Package csharp builds the declaration view of a C# file.
//
// Two passes look at the same bytes: the project lexer produces the token
// stream with trivia, and the tree-sitter C# grammar produces the concrete
// syntax tree. Declarations are cut out of the token stream along the byte
// ranges of the tree-sitter nodes, so every token keeps its trivia and the
// concatenated tokens of a file are exactly its content.
package csharp
