// Package basis implements multivariate orthogonal polynomial bases: multi-index
// support sets, memoized per-dimension evaluation tables and the Vandermonde
// design matrix of a grid.
package basis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/polyopt/polyopt/polyerr"
	"github.com/polyopt/polyopt/utils"
)

// MultiIndex is a tuple of per-dimension degrees.
type MultiIndex []int

// Degree returns the total degree of the multi-index.
func (a MultiIndex) Degree() int {
	return utils.Sum([]int(a))
}

// SupportKind selects the multi-indices retained for a maximum degree d.
type SupportKind int

const (
	// TotalDegree retains the multi-indices whose sum is at most d.
	TotalDegree = SupportKind(iota)
	// TensorDegree retains the multi-indices whose entries are all at most d.
	TensorDegree
	// Custom is the kind of a support set built from explicit multi-indices.
	Custom
)

var supportNames = []string{"total", "tensor", "custom"}

func (k SupportKind) String() string {
	if k >= 0 && int(k) < len(supportNames) {
		return supportNames[k]
	}
	return fmt.Sprintf("SupportKind(%d)", int(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k SupportKind) MarshalText() ([]byte, error) {
	if k < 0 || int(k) >= len(supportNames) {
		return nil, fmt.Errorf("cannot MarshalText: invalid support kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *SupportKind) UnmarshalText(p []byte) error {
	s := strings.ToLower(strings.TrimSpace(string(p)))
	for i, name := range supportNames[:Custom] {
		if s == name {
			*k = SupportKind(i)
			return nil
		}
	}
	return fmt.Errorf("cannot UnmarshalText: unknown support kind %q", s)
}

// SupportSet is an ordered set of multi-indices of a common dimension.
// The order is graded lexicographic: by total degree, then lexicographically.
type SupportSet struct {
	dim     int
	kind    SupportKind
	indices []MultiIndex
}

// NewSupportSet returns the support set of the given kind and maximum degree.
func NewSupportSet(dim, degree int, kind SupportKind) (s *SupportSet, err error) {

	if dim < 1 {
		return nil, polyerr.Configurationf("support dimension must be at least 1 but is %d", dim)
	}

	if degree < 0 {
		return nil, polyerr.Configurationf("negative degree %d", degree)
	}

	var indices []MultiIndex

	switch kind {
	case TotalDegree:
		indices = totalDegree(dim, degree)
	case TensorDegree:
		shape := make([]int, dim)
		for i := range shape {
			shape[i] = degree + 1
		}
		n, err := utils.Product(shape)
		if err != nil {
			return nil, polyerr.Configurationf("tensor support of degree %d in dimension %d: %s", degree, dim, err)
		}
		indices = make([]MultiIndex, n)
		for i := range indices {
			indices[i] = make(MultiIndex, dim)
			utils.Unravel(i, shape, indices[i])
		}
	default:
		return nil, polyerr.Configurationf("invalid support kind %s", kind)
	}

	sortIndices(indices)

	return &SupportSet{dim: dim, kind: kind, indices: indices}, nil
}

// NewSupportSetFromIndices returns the support set of the given multi-indices.
// Duplicates are rejected.
func NewSupportSetFromIndices(dim int, indices []MultiIndex) (s *SupportSet, err error) {

	if dim < 1 {
		return nil, polyerr.Configurationf("support dimension must be at least 1 but is %d", dim)
	}

	if len(indices) == 0 {
		return nil, polyerr.Configurationf("empty support set")
	}

	cpy := make([]MultiIndex, len(indices))
	for i, a := range indices {
		if len(a) != dim {
			return nil, polyerr.Configurationf("multi-index %v has dimension %d, expected %d", a, len(a), dim)
		}
		for _, v := range a {
			if v < 0 {
				return nil, polyerr.Configurationf("multi-index %v has a negative entry", a)
			}
		}
		cpy[i] = append(MultiIndex(nil), a...)
	}

	sortIndices(cpy)

	for i := 1; i < len(cpy); i++ {
		if utils.CompareSlices([]int(cpy[i-1]), []int(cpy[i])) == 0 {
			return nil, polyerr.Configurationf("duplicate multi-index %v", cpy[i])
		}
	}

	return &SupportSet{dim: dim, kind: Custom, indices: cpy}, nil
}

// totalDegree enumerates the multi-indices of sum at most degree.
func totalDegree(dim, degree int) (indices []MultiIndex) {
	var rec func(prefix MultiIndex, left int)
	rec = func(prefix MultiIndex, left int) {
		if len(prefix) == dim {
			indices = append(indices, append(MultiIndex(nil), prefix...))
			return
		}
		for v := 0; v <= left; v++ {
			rec(append(prefix, v), left-v)
		}
	}
	rec(make(MultiIndex, 0, dim), degree)
	return
}

func sortIndices(indices []MultiIndex) {
	sort.Slice(indices, func(i, j int) bool {
		if di, dj := indices[i].Degree(), indices[j].Degree(); di != dj {
			return di < dj
		}
		return utils.CompareSlices([]int(indices[i]), []int(indices[j])) < 0
	})
}

// Dim returns the dimension of the multi-indices.
func (s SupportSet) Dim() int {
	return s.dim
}

// Kind returns the kind of the support set.
func (s SupportSet) Kind() SupportKind {
	return s.kind
}

// Len returns the number of multi-indices.
func (s SupportSet) Len() int {
	return len(s.indices)
}

// Index returns a copy of the j-th multi-index.
func (s SupportSet) Index(j int) MultiIndex {
	return append(MultiIndex(nil), s.indices[j]...)
}

// Indices returns a copy of the multi-indices.
func (s SupportSet) Indices() (indices []MultiIndex) {
	indices = make([]MultiIndex, len(s.indices))
	for j := range indices {
		indices[j] = s.Index(j)
	}
	return
}

// Degree returns the maximum total degree of the multi-indices.
func (s SupportSet) Degree() (degree int) {
	for _, a := range s.indices {
		degree = utils.Max(degree, a.Degree())
	}
	return
}

// MaxDegree returns the largest entry of the multi-indices in the d-th dimension.
func (s SupportSet) MaxDegree(d int) (degree int) {
	for _, a := range s.indices {
		degree = utils.Max(degree, a[d])
	}
	return
}
