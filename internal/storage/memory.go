package storage

import (
	"context"
	"sync"
)

// MemoryLog 固定容量的环形发射记录
type MemoryLog struct {
	mu    sync.Mutex
	buf   []TransmissionRecord
	next  int
	count int
}

// NewMemoryLog 创建容量为 size 的记录（size<=0 时取 100）
func NewMemoryLog(size int) *MemoryLog {
	if size <= 0 {
		size = 100
	}
	return &MemoryLog{buf: make([]TransmissionRecord, size)}
}

// Append 写入，满时覆盖最旧记录
func (l *MemoryLog) Append(_ context.Context, rec TransmissionRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.buf[l.next] = rec
	l.next = (l.next + 1) % len(l.buf)
	if l.count < len(l.buf) {
		l.count++
	}
	return nil
}

// Recent 最新在前
func (l *MemoryLog) Recent(_ context.Context, limit int) ([]TransmissionRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if limit <= 0 || limit > l.count {
		limit = l.count
	}
	out := make([]TransmissionRecord, 0, limit)
	for i := 1; i <= limit; i++ {
		idx := (l.next - i + len(l.buf)) % len(l.buf)
		out = append(out, l.buf[idx])
	}
	return out, nil
}

// MemoryCredentials 进程内凭据存储（测试与无持久化场景）
type MemoryCredentials struct {
	mu    sync.RWMutex
	creds *Credentials
}

// Load 读取
func (m *MemoryCredentials) Load(_ context.Context) (Credentials, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.creds == nil {
		return Credentials{}, ErrNoCredentials
	}
	return *m.creds, nil
}

// Save 保存
func (m *MemoryCredentials) Save(_ context.Context, c Credentials) error {
	if err := c.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creds = &c
	return nil
}
