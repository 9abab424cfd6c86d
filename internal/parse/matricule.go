package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var matriculeRe = regexp.MustCompile(`^([A-Z]{2,5})[\s_-]*(\d{1,6})$`)

// Matricule is the structured form of an agent's badge code.
type Matricule struct {
	Prefix string
	Number int
}

// String renders the canonical form stored in the database, e.g. "AGT-0042".
func (m Matricule) String() string {
	return fmt.Sprintf("%s-%04d", m.Prefix, m.Number)
}

// ParseMatricule extracts the prefix and number from a raw badge code.
// Input is tolerant of case, surrounding whitespace, and the separators seen
// on printed badges ("agt 42", "AGT_0042", "agt-42" all normalize the same).
func ParseMatricule(raw string) (Matricule, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))

	m := matriculeRe.FindStringSubmatch(s)
	if m == nil {
		return Matricule{}, fmt.Errorf("unable to parse matricule: %q", raw)
	}

	n, err := strconv.Atoi(m[2])
	if err != nil {
		return Matricule{}, fmt.Errorf("unable to parse matricule number in %q: %w", raw, err)
	}
	if n == 0 {
		return Matricule{}, fmt.Errorf("matricule number must be positive: %q", raw)
	}

	return Matricule{Prefix: m[1], Number: n}, nil
}

// NormalizeMatricule returns the canonical form of a raw badge code.
func NormalizeMatricule(raw string) (string, error) {
	m, err := ParseMatricule(raw)
	if err != nil {
		return "", err
	}
	return m.String(), nil
}
