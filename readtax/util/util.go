// Package util holds small, dependency-grounded helpers shared by the
// taxid-set bookkeeping in search and classify.
package util

import "github.com/twotwotwo/sorts/sortutil"

// UniqUint64s sorts *list and removes duplicates in place.
func UniqUint64s(list *[]uint64) {
	if len(*list) < 2 {
		return
	}

	sortutil.Uint64s(*list)

	var i, j int
	var p, v uint64
	var flag bool
	p = (*list)[0]
	for i = 1; i < len(*list); i++ {
		v = (*list)[i]
		if v == p {
			if !flag {
				j = i
				flag = true
			}
			continue
		}

		if flag {
			(*list)[j] = v
			j++
		}
		p = v
	}
	if j > 0 {
		*list = (*list)[:j]
	}
}
