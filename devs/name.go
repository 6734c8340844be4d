package devs

import (
	"strconv"
	"strings"
)

// A Name is a hierarchical name made of a series of tokens separated by
// dots, used to qualify a child model's bare name with its position in the
// coupled-model tree it was added to.
type Name struct {
	Tokens []NameToken
}

// NameToken is one dot-separated element of a Name, optionally carrying one
// or more bracketed indices for a replicated child.
type NameToken struct {
	ElemName string
	Index    []int
}

// ParseName splits a dotted name string into its tokens.
func ParseName(sname string) Name {
	tokens := strings.Split(sname, ".")
	name := Name{Tokens: make([]NameToken, len(tokens))}

	for i, token := range tokens {
		name.Tokens[i] = parseNameToken(token)
	}

	return name
}

func parseNameToken(token string) NameToken {
	bracketMustMatch(token)

	ts := strings.Split(token, "[")
	elemName := ts[0]

	indices := make([]int, len(ts)-1)
	for i := 1; i < len(ts); i++ {
		index, err := strconv.Atoi(ts[i][0 : len(ts[i])-1])
		if err != nil {
			panic("devs: name index must be integer")
		}

		indices[i-1] = index
	}

	return NameToken{ElemName: elemName, Index: indices}
}

func bracketMustMatch(name string) {
	openBracketCount := 0

	for _, c := range name {
		if c == '[' {
			openBracketCount++
		} else if c == ']' {
			openBracketCount--
			if openBracketCount < 0 {
				panic("devs: name bracket must match")
			}
		}
	}

	if openBracketCount != 0 {
		panic("devs: name bracket must match")
	}
}

// NameMustBeValid panics if name does not follow the qualified-naming
// convention:
//  1. it is organized hierarchically, dot-separated ("A.B.C", not "A.B.C.");
//  2. no individual element is empty ("A..B" is invalid);
//  3. elements in a replicated series use square-bracket indices.
//
// Unlike the kernel's own fatal conditions (see errors.go), a malformed name
// is a model-construction bug rather than something a running simulation
// needs to recover from, so this reports by panicking, matching
// PortOwnerBase.AddPort's treatment of other construction-time misuse.
func NameMustBeValid(name string) {
	defer func() {
		if r := recover(); r != nil {
			panic("devs: name " + name + " is not valid: " + r.(string))
		}
	}()

	n := ParseName(name)
	for _, token := range n.Tokens {
		tokenMustBeValid(token)
	}
}

func tokenMustBeValid(token NameToken) {
	if token.ElemName == "" {
		panic("devs: name element must not be empty")
	}

	invalidChars := []string{"\"", "'", "."}

	for _, c := range invalidChars {
		if strings.Contains(token.ElemName, c) {
			panic("devs: name element must not contain " + c)
		}
	}
}

// BuildName qualifies elementName with parentName, the way a Coordinator
// qualifies each child's bare Name() with its own for use in wrapped error
// messages.
func BuildName(parentName, elementName string) string {
	if parentName == "" {
		return elementName
	}

	return parentName + "." + elementName
}

