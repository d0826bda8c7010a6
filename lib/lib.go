// Package lib indexes the revisions of the versioned-record library.
package lib

import (
	"fmt"
	"sort"

	"github.com/alexhholmes/abilayout/internal/abi"
	"github.com/alexhholmes/abilayout/lib/rev1"
	"github.com/alexhholmes/abilayout/lib/rev2"
)

var revisions = map[int]abi.Library{
	1: rev1.Library{},
	2: rev2.Library{},
}

// Lookup returns the library for a revision number.
func Lookup(rev int) (abi.Library, error) {
	l, ok := revisions[rev]
	if !ok {
		return nil, fmt.Errorf("no library revision %d (have %v)", rev, Revisions())
	}
	return l, nil
}

// Revisions lists the known revision numbers in ascending order.
func Revisions() []int {
	revs := make([]int, 0, len(revisions))
	for r := range revisions {
		revs = append(revs, r)
	}
	sort.Ints(revs)
	return revs
}
