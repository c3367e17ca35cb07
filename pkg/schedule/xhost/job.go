package xhost

import (
	"container/heap"
	"sync/atomic"
)

// job TickHost 内部的任务记录，同时作为对外的 Handle。
type job struct {
	id     int64
	mode   Mode
	body   func()
	period Ticks // 0 表示一次性任务

	// 以下字段仅在 TickHost.mu 保护下访问
	next  int64  // 下次到期 tick
	seq   uint64 // 提交序号，同一 tick 内按提交顺序执行
	index int    // 在 jobQueue 中的位置，-1 表示不在队列中

	cancelled atomic.Bool
	fires     atomic.Int64
}

// Cancel 取消任务。任务从队列中惰性移除。
func (j *job) Cancel() {
	j.cancelled.Store(true)
}

// IsCancelled 报告任务是否已被取消。
func (j *job) IsCancelled() bool {
	return j.cancelled.Load()
}

// ID 返回宿主分配的句柄 ID。
func (j *job) ID() int64 {
	return j.id
}

// Fires 返回任务已被执行的次数。
func (j *job) Fires() int64 {
	return j.fires.Load()
}

// Mode 返回任务的执行模式。
func (j *job) Mode() Mode {
	return j.mode
}

var _ Handle = (*job)(nil)

// jobQueue 按 (next, seq) 排序的最小堆
type jobQueue []*job

func (q jobQueue) Len() int { return len(q) }

func (q jobQueue) Less(i, k int) bool {
	if q[i].next != q[k].next {
		return q[i].next < q[k].next
	}
	return q[i].seq < q[k].seq
}

func (q jobQueue) Swap(i, k int) {
	q[i], q[k] = q[k], q[i]
	q[i].index = i
	q[k].index = k
}

func (q *jobQueue) Push(x any) {
	j := x.(*job)
	j.index = len(*q)
	*q = append(*q, j)
}

func (q *jobQueue) Pop() any {
	old := *q
	n := len(old)
	j := old[n-1]
	old[n-1] = nil
	j.index = -1
	*q = old[:n-1]
	return j
}

var _ heap.Interface = (*jobQueue)(nil)
