package schedules

import (
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/RMS-BookingGateway/internal/domain"
)

// keyLock сериализует ремонт расписания по ключу (ресурс, дата) внутри
// одного процесса: две почти одновременные отправки на один ресурс и день
// не должны обе прогонять полную цепочку ремонта.
// Гарантия только процессная — финальный арбитраж конфликтов остается
// за платформой.
type keyLock struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyLock() *keyLock {
	return &keyLock{locks: make(map[string]*sync.Mutex)}
}

// acquire блокирует ключ и возвращает функцию разблокировки
func (k *keyLock) acquire(resourceID int64, date time.Time) func() {
	key := fmt.Sprintf("%d:%s", resourceID, date.Format(domain.DateFormat))

	k.mu.Lock()
	lock, ok := k.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		k.locks[key] = lock
	}
	k.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
