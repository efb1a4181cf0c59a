package storage

import (
	"errors"

	"gorm.io/gorm"
)

// Job run states. Skipped means the trigger carried no candidate windows,
// which ends the run without touching media.
const (
	JobRunStatusProcessing = "processing"
	JobRunStatusCompleted  = "completed"
	JobRunStatusFailed     = "failed"
	JobRunStatusSkipped    = "skipped"
)

// JobRun records one processing invocation per video for operational
// history. Times are unix milliseconds.
type JobRun struct {
	Id             uint   `gorm:"primarykey" json:"-"`
	RunId          string `gorm:"uniqueIndex;size:64" json:"runId"`
	VideoId        string `gorm:"index" json:"videoId"`
	UserId         string `json:"userId"`
	TranscriptId   string `json:"transcriptId"`
	Status         string `json:"status"`
	ProcessedClips int    `json:"processedClips"`
	TotalClips     int    `json:"totalClips"`
	FailReason     string `json:"failReason,omitempty"`
	CreateTime     int64  `gorm:"autoCreateTime:milli" json:"createTime"`
	UpdateTime     int64  `gorm:"autoUpdateTime:milli" json:"updateTime"`
}

// SaveJobRun upserts by run id so repeated updates through a run's lifecycle
// land on one row.
func SaveJobRun(run *JobRun) error {
	if DB == nil {
		return errors.New("database not initialized")
	}
	var existing JobRun
	result := DB.Where("run_id = ?", run.RunId).First(&existing)
	if result.Error == nil {
		run.Id = existing.Id
		run.CreateTime = existing.CreateTime
		return DB.Save(run).Error
	} else if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return DB.Create(run).Error
	}
	return result.Error
}

func GetJobRun(runId string) (*JobRun, error) {
	if DB == nil {
		return nil, errors.New("database not initialized")
	}
	var run JobRun
	if err := DB.Where("run_id = ?", runId).First(&run).Error; err != nil {
		return nil, err
	}
	return &run, nil
}

func GetJobRunHistory(limit int) ([]JobRun, error) {
	if DB == nil {
		return nil, errors.New("database not initialized")
	}
	var runs []JobRun
	if err := DB.Order("create_time desc").Limit(limit).Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

// MarkStaleRuns fails every run still marked processing. Called on startup
// so runs interrupted by a crash or restart do not read as live forever.
func MarkStaleRuns() (int64, error) {
	if DB == nil {
		return 0, errors.New("database not initialized")
	}
	result := DB.Model(&JobRun{}).
		Where("status = ?", JobRunStatusProcessing).
		Updates(map[string]interface{}{
			"status":      JobRunStatusFailed,
			"fail_reason": "Run interrupted by server restart",
		})
	return result.RowsAffected, result.Error
}
