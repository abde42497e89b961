package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/deppfellow/college-records/internal/config"
	"github.com/deppfellow/college-records/internal/lib/email"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

const reportTimeFormat = "2006-01-02 15:04:05 MST"

type reportMailer interface {
	SendStudentsRemovedEmail(to string, report email.StudentsRemovedReport) error
}

// InitHandlers builds the dependencies the task handlers need.
func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger) {
	j.mailer = email.NewClient(cfg, logger)
	j.registrar = cfg.Integration.RegistrarEmail
}

func (j *JobService) handleStudentsRemovedTask(ctx context.Context, t *asynq.Task) error {
	var p StudentsRemovedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal students removed payload: %w", err)
	}

	j.logger.Info().
		Str("type", TaskStudentsRemoved).
		Int("students", len(p.Students)).
		Msg("Processing students removed report")

	if j.mailer == nil || j.registrar == "" {
		j.logger.Warn().Msg("no registrar configured, dropping students removed report")
		return nil
	}

	err := j.mailer.SendStudentsRemovedEmail(j.registrar, email.StudentsRemovedReport{
		Reason:    p.Reason,
		RemovedAt: p.RemovedAt.UTC().Format(reportTimeFormat),
		Students:  p.Students,
	})
	if err != nil {
		j.logger.Error().
			Str("type", TaskStudentsRemoved).
			Str("to", j.registrar).
			Err(err).
			Msg("Failed to send students removed report")
		return err
	}

	j.logger.Info().
		Str("type", TaskStudentsRemoved).
		Str("to", j.registrar).
		Msg("Successfully sent students removed report")

	return nil
}
