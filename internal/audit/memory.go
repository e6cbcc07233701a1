package audit

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/BruksfildServices01/coach-calendar/internal/models"
)

// MemoryLog keeps the audit trail in process memory for the memory store
// driver.
type MemoryLog struct {
	mu     sync.Mutex
	nextID uint
	logs   []models.AuditLog
	now    func() time.Time
}

func NewMemoryLog() *MemoryLog {
	return &MemoryLog{now: time.Now}
}

var _ Writer = (*MemoryLog)(nil)

func (m *MemoryLog) Log(_ context.Context, ev Event) error {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	m.logs = append(m.logs, models.AuditLog{
		ID:        m.nextID,
		CoachID:   ev.CoachID,
		ActorID:   ev.ActorID,
		Action:    ev.Action,
		Entity:    ev.Entity,
		EntityID:  ev.EntityID,
		Metadata:  metaJSON,
		CreatedAt: m.now(),
	})
	return nil
}

func (m *MemoryLog) List(_ context.Context, f Filter) ([]models.AuditLog, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matched []models.AuditLog
	for _, l := range m.logs {
		if l.CoachID != f.CoachID {
			continue
		}
		if f.Action != "" && l.Action != f.Action {
			continue
		}
		if f.Entity != "" && l.Entity != f.Entity {
			continue
		}
		if f.From != nil && l.CreatedAt.Before(*f.From) {
			continue
		}
		if f.To != nil && !l.CreatedAt.Before(*f.To) {
			continue
		}
		matched = append(matched, l)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].ID > matched[j].ID
	})

	total := int64(len(matched))
	offset := (f.Page - 1) * f.Limit
	if offset >= len(matched) {
		return []models.AuditLog{}, total, nil
	}
	end := offset + f.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}
