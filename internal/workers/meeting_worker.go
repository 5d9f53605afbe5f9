package workers

import (
	"context"
	"time"

	"daycare_backend/internal/logger"
	"daycare_backend/internal/models"
	"daycare_backend/internal/push"
	"daycare_backend/internal/repositories"

	"gorm.io/gorm"
)

// MeetingWorker reminds parents and teachers about approved meetings
// starting within the next reminder window.
type MeetingWorker struct {
	db               *gorm.DB
	meetingRepo      repositories.MeetingRepository
	notificationRepo repositories.NotificationRepository
	pushProvider     push.Provider
	interval         time.Duration
	window           time.Duration
}

func NewMeetingWorker(
	db *gorm.DB,
	meetingRepo repositories.MeetingRepository,
	notificationRepo repositories.NotificationRepository,
	pushProvider push.Provider,
) *MeetingWorker {
	return &MeetingWorker{
		db:               db,
		meetingRepo:      meetingRepo,
		notificationRepo: notificationRepo,
		pushProvider:     pushProvider,
		interval:         30 * time.Minute,
		window:           time.Hour,
	}
}

func (w *MeetingWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *MeetingWorker) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// reminded prevents duplicate reminders across ticks within the
	// same process lifetime.
	reminded := make(map[string]struct{})

	for {
		select {
		case <-ctx.Done():
			logger.Info("meeting worker stopped")
			return
		case <-ticker.C:
			w.remind(reminded)
		}
	}
}

func (w *MeetingWorker) remind(reminded map[string]struct{}) {
	now := time.Now()
	meetings, err := w.meetingRepo.FindApprovedBetween(w.db, now, now.Add(w.window))
	logger.WorkerLog("meeting", "find_upcoming", err)
	if err != nil {
		return
	}

	for i := range meetings {
		meeting := &meetings[i]
		if _, done := reminded[meeting.ID]; done {
			continue
		}

		notifications := []models.Notification{
			{
				UserID:  meeting.ParentID,
				Type:    "meeting_reminder",
				Title:   "Upcoming meeting",
				Message: meeting.Subject,
			},
			{
				UserID:  meeting.TeacherID,
				Type:    "meeting_reminder",
				Title:   "Upcoming meeting",
				Message: meeting.Subject,
			},
		}
		if err := w.notificationRepo.CreateBatch(w.db, notifications); err != nil {
			logger.WithError(err).Warn("meeting reminder failed", "meeting_id", meeting.ID)
			continue
		}

		if err := w.pushProvider.SendToUsers([]string{meeting.ParentID, meeting.TeacherID}, &push.Message{
			Title: "Upcoming meeting",
			Body:  meeting.Subject,
		}); err != nil {
			logger.WithError(err).Warn("meeting reminder push failed", "meeting_id", meeting.ID)
		}

		reminded[meeting.ID] = struct{}{}
	}
}
