// Package parser turns SQL source text into a segment.Tree.
//
// The lexer is lossless: whitespace, newlines and comments become leaf
// segments, so the tree reproduces the source byte for byte. The parser
// only builds the structure lint rules need:
//
//	file
//	  statement
//	    select_clause
//	      keyword("select")
//	      select_clause_modifier
//	        keyword("distinct")
//	      ...
//	    from_clause
//	      keyword("from")
//	      from_expression_element
//	        table_reference
//	        alias_expression
//	    clause              (WHERE, GROUP BY, ORDER BY, ...)
//
// Formatting and comments at the edges of a clause are hoisted to the
// enclosing statement.
package parser
