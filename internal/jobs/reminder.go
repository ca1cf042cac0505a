package jobs

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/tallytrace/finance-service/internal/config"
	"github.com/tallytrace/finance-service/internal/forecast"
	"github.com/tallytrace/finance-service/internal/repository"
	"github.com/tallytrace/finance-service/internal/utils/email"
)

// ReminderJob mails each verified user a summary of obligations coming due
// within the configured lead window
type ReminderJob struct {
	repo   *repository.Repository
	engine *forecast.Engine
	mailer *email.Sender
	cfg    *config.Config
	log    *logrus.Logger
	cron   *cron.Cron
}

// NewReminderJob initializes the reminder job
func NewReminderJob(repo *repository.Repository, engine *forecast.Engine, mailer *email.Sender,
	cfg *config.Config, log *logrus.Logger) *ReminderJob {
	return &ReminderJob{
		repo:   repo,
		engine: engine,
		mailer: mailer,
		cfg:    cfg,
		log:    log,
		cron:   cron.New(),
	}
}

// Start schedules the daily run
func (j *ReminderJob) Start() error {
	if _, err := j.cron.AddFunc(j.cfg.ReminderCronSpec, j.Run); err != nil {
		return err
	}
	j.cron.Start()
	j.log.Infof("Reminder job scheduled: %s", j.cfg.ReminderCronSpec)
	return nil
}

// Stop halts the scheduler, waiting for a running job to finish
func (j *ReminderJob) Stop() {
	<-j.cron.Stop().Done()
}

// Run executes one reminder sweep over all verified users. A failure for one
// user never blocks the rest.
func (j *ReminderJob) Run() {
	users, err := j.repo.ListVerifiedUsers()
	if err != nil {
		j.log.Errorf("Reminder job failed to list users: %v", err)
		return
	}

	now := time.Now()
	sent := 0
	for _, user := range users {
		items, err := j.engine.UpcomingItems(user.ID, nil, j.cfg.ReminderLeadDays, now)
		if err != nil {
			j.log.Errorf("Reminder job failed for user %d: %v", user.ID, err)
			continue
		}
		if len(items) == 0 {
			continue
		}
		if err := j.mailer.SendUpcomingReminder(user.Email, user.FirstName, items, j.cfg.ReminderLeadDays); err != nil {
			j.log.Warnf("Failed to send reminder to %s: %v", user.Email, err)
			continue
		}
		sent++
	}
	j.log.Infof("Reminder job finished: %d user(s) notified of %d checked", sent, len(users))
}
