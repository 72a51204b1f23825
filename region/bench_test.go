package region

import (
	"fmt"
	"testing"
)

// benchRegions builds n disjoint outer regions, each with one strictly
// nested inner region, so every build performs n merges.
func benchRegions(n int) []*Region {
	regions := make([]*Region, 0, 2*n)
	for i := 0; i < n; i++ {
		start := uint64(i) * 100
		regions = append(regions,
			&Region{
				Name:  fmt.Sprintf("outer-%d", i),
				Start: start,
				End:   start + 100,
				Kind:  KindSectionContent,
			},
			&Region{
				Name:  fmt.Sprintf("inner-%d", i),
				Start: start + 10,
				End:   start + 90,
				Kind:  KindSectionContent,
			})
	}
	return regions
}

func BenchmarkBuildTree(b *testing.B) {
	for _, n := range []int{8, 64} {
		b.Run(fmt.Sprintf("pairs-%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				BuildTree("bench", benchRegions(n), uint64(n)*100)
			}
		})
	}
}
