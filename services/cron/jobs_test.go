package cron

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/sahilchouksey/datacat/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Dataset{}, &model.CronJobLog{}))
	return db
}

func TestCompactPriorities(t *testing.T) {
	db := newTestDB(t)

	// gaps left by deletes, two owners interleaved
	seed := []model.Dataset{
		{Title: "a0", Owner: "alice", Priority: 0},
		{Title: "a3", Owner: "alice", Priority: 3},
		{Title: "a7", Owner: "alice", Priority: 7},
		{Title: "b2", Owner: "bob", Priority: 2},
		{Title: "b5", Owner: "bob", Priority: 5},
	}
	for i := range seed {
		require.NoError(t, db.Create(&seed[i]).Error)
	}

	m := NewCronManager(db)
	m.logJobStart("compact_priorities")
	m.CompactPriorities()

	var alice []model.Dataset
	require.NoError(t, db.Where("owner = ?", "alice").Order("priority").Find(&alice).Error)
	require.Len(t, alice, 3)
	assert.Equal(t, []string{"a0", "a3", "a7"}, []string{alice[0].Title, alice[1].Title, alice[2].Title})
	assert.Equal(t, []int{0, 1, 2}, []int{alice[0].Priority, alice[1].Priority, alice[2].Priority})

	var bob []model.Dataset
	require.NoError(t, db.Where("owner = ?", "bob").Order("priority").Find(&bob).Error)
	require.Len(t, bob, 2)
	assert.Equal(t, []int{0, 1}, []int{bob[0].Priority, bob[1].Priority})

	var jobLog model.CronJobLog
	require.NoError(t, db.Where("job_name = ?", "compact_priorities").Order("id DESC").First(&jobLog).Error)
	assert.Equal(t, "completed", jobLog.Status)
}

func TestCleanupCronLogs(t *testing.T) {
	db := newTestDB(t)

	old := model.CronJobLog{JobName: "compact_priorities", Status: "completed", StartedAt: time.Now()}
	require.NoError(t, db.Create(&old).Error)
	// push its created_at past the retention window
	require.NoError(t, db.Model(&old).Update("created_at", time.Now().Add(-31*24*time.Hour)).Error)

	recent := model.CronJobLog{JobName: "compact_priorities", Status: "completed", StartedAt: time.Now()}
	require.NoError(t, db.Create(&recent).Error)

	m := NewCronManager(db)
	m.logJobStart("cleanup_cron_logs")
	m.CleanupCronLogs()

	var count int64
	require.NoError(t, db.Model(&model.CronJobLog{}).Where("id = ?", old.ID).Count(&count).Error)
	assert.Zero(t, count)

	require.NoError(t, db.Model(&model.CronJobLog{}).Where("id = ?", recent.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
