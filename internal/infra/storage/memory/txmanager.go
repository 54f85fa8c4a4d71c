package memory

import (
	"context"
	"sync"
)

type txKey struct{}

// txState блокировки мастерских, взятые в рамках одной транзакции
type txState struct {
	mu     sync.Mutex
	locked map[int64]*sync.Mutex
}

func (t *txState) lock(id int64, lock *sync.Mutex) {
	t.mu.Lock()
	_, held := t.locked[id]
	t.mu.Unlock()
	if held {
		return
	}

	lock.Lock()

	t.mu.Lock()
	t.locked[id] = lock
	t.mu.Unlock()
}

func (t *txState) releaseAll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for id, lock := range t.locked {
		lock.Unlock()
		delete(t.locked, id)
	}
}

func txFromContext(ctx context.Context) (*txState, bool) {
	state, ok := ctx.Value(txKey{}).(*txState)
	return state, ok
}

// TxManager держит блокировки мастерских, взятые через LockByID,
// до завершения функции
type TxManager struct {
	store *Store
}

// Do выполняет fn в "транзакции"; вложенный вызов переиспользует внешнюю
func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := txFromContext(ctx); ok {
		return fn(ctx)
	}

	state := &txState{locked: make(map[int64]*sync.Mutex)}
	defer state.releaseAll()

	return fn(context.WithValue(ctx, txKey{}, state))
}

// DoReadCommitted то же, что Do: записи в одну мастерскую упорядочены её блокировкой
func (m *TxManager) DoReadCommitted(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.Do(ctx, fn)
}
