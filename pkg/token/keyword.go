// Package token defines source positions and the SQL keywords the segment
// lexer recognizes.
package token

import (
	"fmt"
	"strings"
)

// Keyword identifies a reserved SQL word. The zero value is NotKeyword.
type Keyword uint8

//nolint:revive // SQL keywords read best in upper case
const (
	NotKeyword Keyword = iota

	ALL
	AND
	AS
	ASC
	BETWEEN
	BY
	CASE
	CAST
	CROSS
	CURRENT
	DESC
	DISTINCT
	ELSE
	END
	EXCEPT
	FALSE
	FILTER
	FIRST
	FOLLOWING
	FROM
	FULL
	GROUP
	GROUPS
	HAVING
	IN
	INNER
	INTERSECT
	IS
	JOIN
	LAST
	LATERAL
	LEFT
	LIKE
	LIMIT
	NATURAL
	NOT
	NULL
	NULLS
	OFFSET
	ON
	OR
	ORDER
	OUTER
	OVER
	PARTITION
	PRECEDING
	QUALIFY
	RANGE
	RECURSIVE
	RIGHT
	ROW
	ROWS
	SELECT
	THEN
	TRUE
	UNBOUNDED
	UNION
	USING
	WHEN
	WHERE
	WINDOW
	WITH
	WITHIN

	keywordCount
)

var keywordNames = [keywordCount]string{
	ALL: "ALL", AND: "AND", AS: "AS", ASC: "ASC",
	BETWEEN: "BETWEEN", BY: "BY",
	CASE: "CASE", CAST: "CAST", CROSS: "CROSS", CURRENT: "CURRENT",
	DESC: "DESC", DISTINCT: "DISTINCT",
	ELSE: "ELSE", END: "END", EXCEPT: "EXCEPT",
	FALSE: "FALSE", FILTER: "FILTER", FIRST: "FIRST", FOLLOWING: "FOLLOWING", FROM: "FROM", FULL: "FULL",
	GROUP: "GROUP", GROUPS: "GROUPS",
	HAVING: "HAVING",
	IN: "IN", INNER: "INNER", INTERSECT: "INTERSECT", IS: "IS",
	JOIN: "JOIN",
	LAST: "LAST", LATERAL: "LATERAL", LEFT: "LEFT", LIKE: "LIKE", LIMIT: "LIMIT",
	NATURAL: "NATURAL", NOT: "NOT", NULL: "NULL", NULLS: "NULLS",
	OFFSET: "OFFSET", ON: "ON", OR: "OR", ORDER: "ORDER", OUTER: "OUTER", OVER: "OVER",
	PARTITION: "PARTITION", PRECEDING: "PRECEDING",
	QUALIFY: "QUALIFY",
	RANGE: "RANGE", RECURSIVE: "RECURSIVE", RIGHT: "RIGHT", ROW: "ROW", ROWS: "ROWS",
	SELECT: "SELECT",
	THEN: "THEN", TRUE: "TRUE",
	UNBOUNDED: "UNBOUNDED", UNION: "UNION", USING: "USING",
	WHEN: "WHEN", WHERE: "WHERE", WINDOW: "WINDOW", WITH: "WITH", WITHIN: "WITHIN",
}

// byWord indexes keywordNames by lower-case spelling.
var byWord = func() map[string]Keyword {
	m := make(map[string]Keyword, keywordCount)
	for k := NotKeyword + 1; k < keywordCount; k++ {
		m[strings.ToLower(keywordNames[k])] = k
	}
	return m
}()

func (k Keyword) String() string {
	if k == NotKeyword {
		return "NotKeyword"
	}
	if k < keywordCount {
		return keywordNames[k]
	}
	return fmt.Sprintf("Keyword(%d)", uint8(k))
}

// Lookup returns the keyword spelled by word in any case, or NotKeyword.
func Lookup(word string) Keyword {
	return byWord[strings.ToLower(word)]
}

// IsKeyword reports whether k is a known keyword.
func IsKeyword(k Keyword) bool {
	return k > NotKeyword && k < keywordCount
}

// IsClauseStart reports whether k opens a top-level clause of a query.
// Set operators count: they end the clause list of the SELECT before them.
func IsClauseStart(k Keyword) bool {
	switch k {
	case SELECT, FROM, WHERE, GROUP, HAVING, QUALIFY, WINDOW, ORDER, LIMIT, OFFSET,
		UNION, INTERSECT, EXCEPT:
		return true
	}
	return false
}

// IsSelectModifier reports whether k can follow SELECT as a modifier.
func IsSelectModifier(k Keyword) bool {
	return k == DISTINCT || k == ALL
}
