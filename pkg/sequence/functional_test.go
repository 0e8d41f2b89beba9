package sequence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIteratorIsRestartable(t *testing.T) {
	data := []int{1, 2, 3}
	it := From(data)

	assert.Equal(t, []int{1, 2, 3}, it.Collect())
	assert.Equal(t, []int{1, 2, 3}, it.Collect())
}

func TestFilterAndFindStopEarly(t *testing.T) {
	visited := 0
	it := FromSeq(func(yield func(int) bool) {
		for v := 0; v < 100; v++ {
			visited++
			if !yield(v) {
				return
			}
		}
	})

	v, ok := it.Filter(func(v int) bool { return v%7 == 6 }).Find(func(v int) bool { return v > 10 })
	assert.True(t, ok)
	assert.Equal(t, 13, v)
	assert.Equal(t, 14, visited)
}

func TestFindMissing(t *testing.T) {
	_, ok := From([]string{"a", "b"}).Find(func(s string) bool { return s == "c" })
	assert.False(t, ok)
}

func TestSeqRangesInOrder(t *testing.T) {
	var out []int
	for v := range From([]int{4, 5, 6}).Seq() {
		if v == 6 {
			break
		}
		out = append(out, v)
	}
	assert.Equal(t, []int{4, 5}, out)
}

func TestEachVisitsEveryElement(t *testing.T) {
	sum := 0
	From([]int{1, 2, 3}).Each(func(v int) { sum += v })
	assert.Equal(t, 6, sum)
}
