package services

import (
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/aadit2805/project3-group7-deploy-sub000/kds"
	"github.com/aadit2805/project3-group7-deploy-sub000/models"
	"github.com/aadit2805/project3-group7-deploy-sub000/selection"
	"github.com/aadit2805/project3-group7-deploy-sub000/utils"
)

// AvailabilityMonitor polls the menu and tells connected screens when the set
// of selectable items changes, e.g. a breakfast window closing or a sell-out.
type AvailabilityMonitor struct {
	DB       *gorm.DB
	StopChan chan struct{}
	Interval time.Duration
	Now      func() time.Time

	mu   sync.Mutex
	last []uint
	seen bool
	once sync.Once
}

func NewAvailabilityMonitor(db *gorm.DB, interval time.Duration) *AvailabilityMonitor {
	if interval <= 0 {
		interval = time.Minute
	}
	return &AvailabilityMonitor{
		DB:       db,
		StopChan: make(chan struct{}),
		Interval: interval,
		Now:      time.Now,
	}
}

func (am *AvailabilityMonitor) Start() {
	go func() {
		ticker := time.NewTicker(am.Interval)
		defer ticker.Stop()

		if _, err := am.Check(); err != nil {
			utils.ErrorLogger.Errorf("availability check failed: %v", err)
		}
		for {
			select {
			case <-ticker.C:
				if _, err := am.Check(); err != nil {
					utils.ErrorLogger.Errorf("availability check failed: %v", err)
				}
			case <-am.StopChan:
				return
			}
		}
	}()
}

func (am *AvailabilityMonitor) Stop() {
	am.once.Do(func() { close(am.StopChan) })
}

// Check recomputes the selectable ids and broadcasts them if they differ from
// the previous check. The first check only records the baseline.
func (am *AvailabilityMonitor) Check() (bool, error) {
	var items []models.MenuItem
	if err := am.DB.Find(&items).Error; err != nil {
		return false, err
	}

	now := am.Now()
	ids := []uint{}
	for _, it := range items {
		if selection.Selectable(it, now) {
			ids = append(ids, it.ID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	am.mu.Lock()
	first := !am.seen
	changed := !first && !sameIDs(am.last, ids)
	am.last = ids
	am.seen = true
	am.mu.Unlock()

	if changed {
		utils.InfoLogger.Infof("selectable menu changed: %d items", len(ids))
		kds.BroadcastMenuUpdate(ids)
	}
	return changed, nil
}

// Selectable returns the ids recorded by the last check.
func (am *AvailabilityMonitor) Selectable() []uint {
	am.mu.Lock()
	defer am.mu.Unlock()
	return append([]uint(nil), am.last...)
}

func sameIDs(a, b []uint) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
