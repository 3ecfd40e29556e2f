package systems

import (
	"container/heap"

	"github.com/google/uuid"
)

// expiry 一次爆发的定时移除任务
type expiry struct {
	burst    BurstID
	deadline float64
	ids      map[uuid.UUID]struct{}
	index    int
}

// expiryQueue 按截止时间排序的最小堆，由 ParticleSystem.Tick 消费
type expiryQueue []*expiry

func (q expiryQueue) Len() int { return len(q) }

func (q expiryQueue) Less(i, j int) bool {
	if q[i].deadline == q[j].deadline {
		return q[i].burst < q[j].burst
	}
	return q[i].deadline < q[j].deadline
}

func (q expiryQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *expiryQueue) Push(x any) {
	e := x.(*expiry)
	e.index = len(*q)
	*q = append(*q, e)
}

func (q *expiryQueue) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*q = old[:n-1]
	return e
}

// schedule adds e to the queue.
func (q *expiryQueue) schedule(e *expiry) {
	heap.Push(q, e)
}

// cancel removes e if it is still queued.
func (q *expiryQueue) cancel(e *expiry) {
	if e.index >= 0 && e.index < q.Len() && (*q)[e.index] == e {
		heap.Remove(q, e.index)
	}
}

// popDue removes and returns every entry whose deadline is <= now, earliest first.
func (q *expiryQueue) popDue(now float64) []*expiry {
	var due []*expiry
	for q.Len() > 0 && (*q)[0].deadline <= now {
		due = append(due, heap.Pop(q).(*expiry))
	}
	return due
}
