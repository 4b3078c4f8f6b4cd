package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/teamtrack/backend/internal/models"
	"github.com/teamtrack/backend/pkg/logger"
	"github.com/teamtrack/backend/pkg/response"
	"gorm.io/gorm"
)

// ActivityService records and queries the audit trail of store mutations.
type ActivityService struct {
	db *gorm.DB
}

func NewActivityService(db *gorm.DB) *ActivityService {
	return &ActivityService{db: db}
}

// Record persists one activity event. It is the processor behind both the
// sync queue and the async worker.
func (s *ActivityService) Record(ctx context.Context, event *ActivityEvent) error {
	entry := models.ActivityLog{
		EventID:  event.EventID,
		Action:   event.Action,
		Entity:   event.Entity,
		EntityID: event.EntityID,
		ActorID:  event.ActorID,
		Detail:   event.Detail,
	}
	return s.db.WithContext(ctx).Create(&entry).Error
}

// List returns activity entries newest first, paginated.
func (s *ActivityService) List(page, pageSize int) ([]models.ActivityLog, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var total int64
	if err := s.db.Model(&models.ActivityLog{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []models.ActivityLog
	if err := s.db.Order("id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&entries).Error; err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

// Get returns a single entry by ID.
func (s *ActivityService) Get(id uint) (*models.ActivityLog, error) {
	var entry models.ActivityLog
	if err := s.db.First(&entry, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, response.NewNotFound("activity entry not found")
		}
		return nil, err
	}
	return &entry, nil
}

// CleanupOldEntries deletes entries older than retentionDays and returns the
// number removed.
func (s *ActivityService) CleanupOldEntries(retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		return 0, nil
	}
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	result := s.db.Where("created_at < ?", cutoff).Delete(&models.ActivityLog{})
	return result.RowsAffected, result.Error
}

// RecordActivity builds an event from a mutation and hands it to the global
// activity queue. Falls back to a direct insert when no queue is configured.
// Recording never fails the mutation that triggered it.
func RecordActivity(db *gorm.DB, action, entity string, entityID uint, actorID *uint, detail interface{}) {
	event := &ActivityEvent{
		EventID:  uuid.New().String(),
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		ActorID:  actorID,
	}

	if detail != nil {
		data, err := json.Marshal(detail)
		if err != nil {
			logger.Warnf("[Activity] failed to marshal detail for %s %s/%d: %v", action, entity, entityID, err)
		} else {
			event.Detail = string(data)
		}
	}

	queue := GetActivityQueue()
	if queue == nil {
		if err := NewActivityService(db).Record(context.Background(), event); err != nil {
			logger.Warnf("[Activity] direct record failed for %s %s/%d: %v", action, entity, entityID, err)
		}
		return
	}

	if err := queue.Enqueue(event); err != nil {
		logger.Warnf("[Activity] enqueue failed for %s %s/%d: %v", action, entity, entityID, err)
	}
}

var (
	activityCron     *cron.Cron
	activityCronOnce sync.Once
)

// StartActivityCleanupScheduler runs retention cleanup daily at 03:00, plus
// once right away so a long-stopped server catches up on start.
func StartActivityCleanupScheduler(svc *ActivityService, retentionDays int) {
	if retentionDays <= 0 {
		logger.Infof("[Activity] retention cleanup disabled")
		return
	}

	activityCronOnce.Do(func() {
		run := func() {
			removed, err := svc.CleanupOldEntries(retentionDays)
			if err != nil {
				logger.Errorf("[Activity] retention cleanup failed: %v", err)
				return
			}
			if removed > 0 {
				logger.Infof("[Activity] retention cleanup removed %d entries older than %d days", removed, retentionDays)
			}
		}

		go run()

		activityCron = cron.New()
		if _, err := activityCron.AddFunc("0 3 * * *", run); err != nil {
			logger.Errorf("[Activity] failed to schedule retention cleanup: %v", err)
			return
		}
		activityCron.Start()
		logger.Infof("[Activity] retention cleanup scheduled daily at 03:00 (keep %d days)", retentionDays)
	})
}

// StopActivityCleanupScheduler stops the cron scheduler if running.
func StopActivityCleanupScheduler() {
	if activityCron != nil {
		activityCron.Stop()
	}
}
