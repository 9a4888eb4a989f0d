package tools

import "sync"

// KeyLock 按键互斥锁
//
// 为同一员工的排班写操作提供串行化：同键互斥，不同键互不影响。
// 约束检查与落库之间的 TOCTOU 窗口靠持锁覆盖整个"读快照-评估-写入"
// 过程来关闭。锁条目常驻不回收，键空间是员工ID，量级可控。
type KeyLock struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewKeyLock() *KeyLock {
	return &KeyLock{
		locks: make(map[string]*sync.Mutex),
	}
}

func (k *KeyLock) lockFor(key string) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()

	if m, ok := k.locks[key]; ok {
		return m
	}
	m := &sync.Mutex{}
	k.locks[key] = m
	return m
}

// Lock 获取指定键的排他锁
func (k *KeyLock) Lock(key string) {
	k.lockFor(key).Lock()
}

// Unlock 释放指定键的排他锁
func (k *KeyLock) Unlock(key string) {
	k.lockFor(key).Unlock()
}
