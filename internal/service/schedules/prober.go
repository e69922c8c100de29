package schedules

import "context"

// Prober проверяет, какое расписание платформа знает для ресурса.
// Всегда возвращает результат, даже если платформа недоступна:
// отсутствие данных о расписании не должно прерывать попытку
// бронирования — именно этот случай и ремонтирует секвенсор.
type Prober struct {
	client ScheduleClient
	log    Logger
}

// NewProber создает новый экземпляр пробера
func NewProber(client ScheduleClient, log Logger) *Prober {
	return &Prober{client: client, log: log}
}

// Probe запрашивает блоки расписания и конверт дат ресурса.
// Любой отказ (сеть, not found, битый ответ) деградирует в пустое
// покрытие и только логируется.
func (p *Prober) Probe(ctx context.Context, resourceID int64) *Coverage {
	resp, err := p.client.ListScheduleBlocks(ctx, resourceID)
	if err != nil {
		p.log.Warn("Probe: failed to list schedule blocks for resource=%d, treating as empty: %v", resourceID, err)
		return &Coverage{}
	}

	coverage := &Coverage{}
	for _, b := range resp.ScheduleBlocks {
		coverage.Blocks = append(coverage.Blocks, b.ToDomain())
	}

	if resp.RecurringSchedule != nil {
		recurring, err := resp.RecurringSchedule.ToDomain()
		if err != nil {
			p.log.Warn("Probe: malformed recurring schedule for resource=%d, ignoring: %v", resourceID, err)
		} else {
			coverage.Recurring = &recurring
		}
	}

	p.log.Info("Probe: resource=%d blocks=%d recurring=%t",
		resourceID, len(coverage.Blocks), coverage.Recurring != nil)
	return coverage
}
