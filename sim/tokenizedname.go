package sim

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// A Name is a hierarchical name that includes a series of tokens separated
// by dots, for example "Chip[0].PEC[1].Stack[2]".
type Name struct {
	Tokens []NameToken
}

// NameToken is a token of a name.
type NameToken struct {
	ElemName string
	Index    []int
}

// ParseName parses a name string and returns a Name object.
func ParseName(sname string) (Name, error) {
	tokens := strings.Split(sname, ".")
	name := Name{Tokens: make([]NameToken, len(tokens))}

	for i, token := range tokens {
		t, err := parseNameToken(token)
		if err != nil {
			return Name{}, err
		}

		name.Tokens[i] = t
	}

	return name, nil
}

func parseNameToken(token string) (NameToken, error) {
	if err := bracketsMustMatch(token); err != nil {
		return NameToken{}, err
	}

	ts := strings.Split(token, "[")
	indices := make([]int, len(ts)-1)

	for i := 1; i < len(ts); i++ {
		if !strings.HasSuffix(ts[i], "]") {
			return NameToken{}, errors.New("name index must be closed")
		}

		index, err := strconv.Atoi(strings.TrimSuffix(ts[i], "]"))
		if err != nil {
			return NameToken{}, errors.New("name index must be integer")
		}

		indices[i-1] = index
	}

	return NameToken{ElemName: ts[0], Index: indices}, nil
}

func bracketsMustMatch(token string) error {
	open := 0

	for _, c := range token {
		switch c {
		case '[':
			open++
		case ']':
			open--
			if open < 0 {
				return errors.New("name bracket must match")
			}
		}
	}

	if open != 0 {
		return errors.New("name bracket must match")
	}

	return nil
}

// LastIndex returns the index attached to the last token of the name, if any.
func (n Name) LastIndex() (int, bool) {
	if len(n.Tokens) == 0 {
		return 0, false
	}

	last := n.Tokens[len(n.Tokens)-1]
	if len(last.Index) == 0 {
		return 0, false
	}

	return last.Index[len(last.Index)-1], true
}

// ValidateName checks a name against the naming convention.
//  1. It is organized hierarchically. "A.B.C" is valid, "A.B.C." is not.
//  2. Individual names must not be empty. "A..B" is not valid.
//  3. Individual names start with a capital letter and contain no "_", "-",
//     or quotes.
//  4. Elements in a series use square-bracket indices, "Stack[2]".
func ValidateName(name string) error {
	n, err := ParseName(name)
	if err != nil {
		return fmt.Errorf("name %q is not valid: %w", name, err)
	}

	for _, token := range n.Tokens {
		if err := validateToken(token); err != nil {
			return fmt.Errorf("name %q is not valid: %w", name, err)
		}
	}

	return nil
}

// NameMustBeValid panics if the name does not follow the naming convention.
func NameMustBeValid(name string) {
	if err := ValidateName(name); err != nil {
		panic(err.Error())
	}
}

func validateToken(token NameToken) error {
	if token.ElemName == "" {
		return errors.New("name element must not be empty")
	}

	if strings.ContainsAny(token.ElemName, "_\"'-") {
		return errors.New("name element must not contain _, -, or quotes")
	}

	if token.ElemName[0] < 'A' || token.ElemName[0] > 'Z' {
		return errors.New("name element must start with a capital letter")
	}

	return nil
}

// BuildName builds a name from a parent name and an element name.
func BuildName(parentName, elementName string) string {
	if parentName == "" {
		return elementName
	}

	return parentName + "." + elementName
}

// BuildNameWithIndex builds a name from a parent name, an element name and an
// index.
func BuildNameWithIndex(parentName, elementName string, index int) string {
	return BuildName(parentName, elementName+"["+strconv.Itoa(index)+"]")
}
