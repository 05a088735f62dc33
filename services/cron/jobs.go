package cron

import (
	"fmt"
	"time"

	"github.com/sahilchouksey/datacat/model"
	"gorm.io/gorm"
)

// cronLogRetention is how long job log rows are kept
const cronLogRetention = 30 * 24 * time.Hour

// CompactPriorities rewrites each owner's priorities to 0..n-1 in the
// current display order (priority, then id). Reorders already write
// dense values; this closes the gaps left by deletes so the column
// never grows unbounded.
func (m *CronManager) CompactPriorities() {
	jobName := "compact_priorities"

	var rewritten int64
	err := m.db.Transaction(func(tx *gorm.DB) error {
		var datasets []model.Dataset
		if err := tx.Select("id", "owner", "priority").
			Order("owner, priority, id").
			Find(&datasets).Error; err != nil {
			return err
		}

		owner := ""
		next := 0
		for _, d := range datasets {
			if d.Owner != owner {
				owner = d.Owner
				next = 0
			}
			if d.Priority != next {
				if err := tx.Model(&model.Dataset{}).
					Where("id = ?", d.ID).
					Update("priority", next).Error; err != nil {
					return err
				}
				rewritten++
			}
			next++
		}
		return nil
	})
	if err != nil {
		m.logJobError(jobName, err)
		return
	}

	m.logJobComplete(jobName, fmt.Sprintf("rewrote %d priorities", rewritten))
}

// CleanupCronLogs removes job log rows older than the retention window
func (m *CronManager) CleanupCronLogs() {
	jobName := "cleanup_cron_logs"

	cutoff := time.Now().Add(-cronLogRetention)
	result := m.db.Where("created_at < ?", cutoff).Delete(&model.CronJobLog{})
	if result.Error != nil {
		m.logJobError(jobName, result.Error)
		return
	}

	m.logJobComplete(jobName, fmt.Sprintf("removed %d old logs", result.RowsAffected))
}
