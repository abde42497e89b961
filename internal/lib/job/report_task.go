package job

import (
	"encoding/json"
	"time"

	"github.com/deppfellow/college-records/internal/model"
	"github.com/hibiken/asynq"
)

const (
	// TaskStudentsRemoved reports a bulk delete to the registrar.
	TaskStudentsRemoved = "report:students_removed"
)

// StudentsRemovedPayload is the JSON payload of TaskStudentsRemoved.
type StudentsRemovedPayload struct {
	Reason    string          `json:"reason"`
	RemovedAt time.Time       `json:"removed_at"`
	Students  []model.Student `json:"students"`
}

// NewStudentsRemovedTask builds the task for one bulk delete.
func NewStudentsRemovedTask(reason string, removedAt time.Time, students []model.Student) (*asynq.Task, error) {
	payload, err := json.Marshal(StudentsRemovedPayload{
		Reason:    reason,
		RemovedAt: removedAt,
		Students:  students,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskStudentsRemoved,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}
