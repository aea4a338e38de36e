package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Compare orders two MAJOR.MINOR.PATCH versions, with or without a "v" prefix.
// A pre-release suffix ("-rc.1") sorts before the release it precedes.
// Returns 1 if a > b, -1 if a < b and 0 if they are equal.
func Compare(a, b string) (int, error) {
	av, err := parse(a)
	if err != nil {
		return 0, err
	}

	bv, err := parse(b)
	if err != nil {
		return 0, err
	}

	for i := range av.numbers {
		switch {
		case av.numbers[i] > bv.numbers[i]:
			return 1, nil
		case av.numbers[i] < bv.numbers[i]:
			return -1, nil
		}
	}

	switch {
	case av.pre == bv.pre:
		return 0, nil
	case av.pre == "":
		return 1, nil
	case bv.pre == "":
		return -1, nil
	default:
		return strings.Compare(av.pre, bv.pre), nil
	}
}

type semver struct {
	numbers [3]int
	pre     string
}

func parse(s string) (semver, error) {
	var v semver

	core := strings.TrimPrefix(strings.TrimSpace(s), "v")
	core, _, _ = strings.Cut(core, "+")
	core, v.pre, _ = strings.Cut(core, "-")

	parts := strings.Split(core, ".")
	if len(parts) != 3 {
		return v, fmt.Errorf("invalid version %q", s)
	}

	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return v, fmt.Errorf("invalid version %q", s)
		}
		v.numbers[i] = n
	}
	return v, nil
}
