package syncx

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Cell 测试
// ============================================================================

// TestCell_LoadStore 测试基本读写
func TestCell_LoadStore(t *testing.T) {
	c := NewCell(1)
	assert.Equal(t, 1, c.Load())

	c.Store(2)
	assert.Equal(t, 2, c.Load())

	old := c.Swap(3)
	assert.Equal(t, 2, old)
	assert.Equal(t, 3, c.Load())
}

// TestCell_ZeroValue 测试零值可用
func TestCell_ZeroValue(t *testing.T) {
	var c Cell[string]
	assert.Equal(t, "", c.Load())
	c.Store("x")
	assert.Equal(t, "x", c.Load())
}

// TestCell_ConcurrentUpdate 测试并发读-改-写不丢更新
func TestCell_ConcurrentUpdate(t *testing.T) {
	c := NewCell(0)

	const workers = 16
	const perWorker = 500

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				c.Update(func(v int) int { return v + 1 })
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, workers*perWorker, c.Load())
}

// TestCell_NoTornValue 测试并发读取不会看到混合值
func TestCell_NoTornValue(t *testing.T) {
	type pair struct{ a, b int }
	c := NewCell(pair{})

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 2000; i++ {
			c.Store(pair{i, i})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 2000; i++ {
			p := c.Load()
			if p.a != p.b {
				t.Errorf("torn value: %+v", p)
				return
			}
		}
	}()
	wg.Wait()
}

// ============================================================================
// Sequence 测试
// ============================================================================

// TestSequence_AppendSnapshot 测试追加与快照顺序
func TestSequence_AppendSnapshot(t *testing.T) {
	s := NewSequence[int]()
	s.Append(1)
	s.Append(2)
	s.Append(3)

	assert.Equal(t, []int{1, 2, 3}, s.Snapshot())
	assert.Equal(t, 3, s.Len())
}

// TestSequence_SnapshotIsCopy 测试快照与后续修改隔离
func TestSequence_SnapshotIsCopy(t *testing.T) {
	s := NewSequence(1, 2)
	snap := s.Snapshot()

	s.Append(3)
	snap[0] = 100

	assert.Equal(t, []int{100, 2}, snap)
	assert.Equal(t, []int{1, 2, 3}, s.Snapshot())
}

// TestSequence_ReplaceAll 测试整体替换
func TestSequence_ReplaceAll(t *testing.T) {
	s := NewSequence(1, 2, 3)
	in := []int{7, 8}
	s.ReplaceAll(in)
	in[0] = 0

	assert.Equal(t, []int{7, 8}, s.Snapshot())
}

// TestSequence_RemoveIf 测试条件移除
func TestSequence_RemoveIf(t *testing.T) {
	s := NewSequence(1, 2, 3, 4, 5)

	removed := s.RemoveIf(func(v int) bool { return v%2 == 0 })
	assert.Equal(t, 2, removed)
	assert.Equal(t, []int{1, 3, 5}, s.Snapshot())

	removed = s.RemoveIf(func(v int) bool { return v > 10 })
	assert.Equal(t, 0, removed)
	assert.Equal(t, []int{1, 3, 5}, s.Snapshot())
}

// TestSequence_Range 测试遍历可提前终止
func TestSequence_Range(t *testing.T) {
	s := NewSequence(1, 2, 3)

	var seen []int
	s.Range(func(v int) bool {
		seen = append(seen, v)
		return v < 2
	})
	assert.Equal(t, []int{1, 2}, seen)
}

// TestSequence_RangeAllowsMutation 测试遍历期间可以修改序列（不死锁）
func TestSequence_RangeAllowsMutation(t *testing.T) {
	s := NewSequence(1, 2)

	s.Range(func(v int) bool {
		s.Append(v * 10)
		return true
	})
	assert.Equal(t, []int{1, 2, 10, 20}, s.Snapshot())
}

// TestSequence_ConcurrentAppendAndRemove 测试并发追加与移除不丢元素
func TestSequence_ConcurrentAppendAndRemove(t *testing.T) {
	s := NewSequence[int]()

	const appenders = 8
	const perAppender = 200

	var wg sync.WaitGroup
	wg.Add(appenders + 1)
	for i := 0; i < appenders; i++ {
		go func(base int) {
			defer wg.Done()
			for j := 0; j < perAppender; j++ {
				s.Append(base*1000 + j)
			}
		}(i + 1)
	}
	go func() {
		defer wg.Done()
		for j := 0; j < 100; j++ {
			// 只移除不存在的负数，验证过滤替换不会吞掉并发追加
			s.RemoveIf(func(v int) bool { return v < 0 })
		}
	}()
	wg.Wait()

	require.Equal(t, appenders*perAppender, s.Len())
}
