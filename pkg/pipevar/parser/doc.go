/*
Package parser tokenizes template text into variable expressions.

# Grammar

The template language has two productions:

	${name}
	${name|default}

name is any run of characters excluding '}' and '|', default is any run of
characters excluding '}'. Both are trimmed of surrounding whitespace. A
sequence that does not match (unterminated "${", empty name after trimming)
is not an expression and passes through substitution untouched; the parser
never fails on malformed input.

# Default quote adjustment

A default wrapped in exactly one matching pair of single or double quotes
has the quotes stripped, unless the inner content is classified as a
complex SQL fragment (see IsComplexSQL), in which case the quotes are kept
verbatim so the default can act as raw SQL:

	${sep|','}        -> default is ","      (quotes stripped)
	${cols|'a','b'}   -> default is 'a','b'  (quoted-list pattern, kept)
	${filter|'x' IS NULL} -> kept (SQL keyword)

# Positions

Every expression carries the byte offsets of its match within the template
plus a 1-based line and column, computed once per parse from newline
offsets. Parse results are safe to cache and share between goroutines as
long as callers treat them as read-only.
*/
package parser
