package realtime

import (
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"

	"taskboard/internal/domain"
)

// Event types carried on the live-update stream.
const (
	EventTaskCreated    = "task.created"
	EventTaskUpdated    = "task.updated"
	EventTaskDeleted    = "task.deleted"
	EventProjectCreated = "project.created"
	EventProjectUpdated = "project.updated"
	EventProjectDeleted = "project.deleted"
	EventCommentCreated = "comment.created"
)

// Event is the wire shape of a live-update message. Payloads carry only the
// fields a client needs to decide whether to refetch; full entities go over
// the REST API.
type Event struct {
	Type    string         `json:"type"`
	ID      uuid.UUID      `json:"id"`
	Payload map[string]any `json:"payload,omitempty"`
}

// Broadcaster fans an encoded event out to subscribers.
type Broadcaster interface {
	Broadcast(data []byte)
}

// Notifier converts entity changes into events and hands them to the
// broadcaster. It is strictly fire-and-forget: every method returns nothing,
// and every internal failure is logged and swallowed. Callers invoke it only
// after the underlying transaction has committed, so a notification is never
// sent for a change that rolled back.
type Notifier struct {
	broadcaster Broadcaster
	logger      *slog.Logger
}

// NewNotifier creates a notifier publishing to b.
func NewNotifier(b Broadcaster, log *slog.Logger) *Notifier {
	if log == nil {
		log = slog.Default()
	}
	return &Notifier{
		broadcaster: b,
		logger:      log.With(slog.String("component", "realtime_notifier")),
	}
}

// TaskCreated announces a newly created task.
func (n *Notifier) TaskCreated(task *domain.Task) {
	n.publish(Event{
		Type: EventTaskCreated,
		ID:   task.ID,
		Payload: map[string]any{
			"title":  task.Title,
			"status": task.Status,
		},
	})
}

// TaskUpdated announces a task whose fields or status changed.
func (n *Notifier) TaskUpdated(task *domain.Task) {
	n.publish(Event{
		Type: EventTaskUpdated,
		ID:   task.ID,
		Payload: map[string]any{
			"title":  task.Title,
			"status": task.Status,
		},
	})
}

// TaskDeleted announces a deleted task.
func (n *Notifier) TaskDeleted(taskID uuid.UUID) {
	n.publish(Event{Type: EventTaskDeleted, ID: taskID})
}

// ProjectCreated announces a newly created project.
func (n *Notifier) ProjectCreated(project *domain.Project) {
	n.publish(Event{
		Type: EventProjectCreated,
		ID:   project.ID,
		Payload: map[string]any{
			"name": project.Name,
		},
	})
}

// ProjectUpdated announces a project whose fields changed.
func (n *Notifier) ProjectUpdated(project *domain.Project) {
	n.publish(Event{
		Type: EventProjectUpdated,
		ID:   project.ID,
		Payload: map[string]any{
			"name": project.Name,
		},
	})
}

// ProjectDeleted announces a deleted project. Clients holding tasks of that
// project refetch; the cascade already removed them server side.
func (n *Notifier) ProjectDeleted(projectID uuid.UUID) {
	n.publish(Event{Type: EventProjectDeleted, ID: projectID})
}

// CommentCreated announces a new comment on a task.
func (n *Notifier) CommentCreated(comment *domain.Comment) {
	n.publish(Event{
		Type: EventCommentCreated,
		ID:   comment.ID,
		Payload: map[string]any{
			"task_id": comment.TaskID,
		},
	})
}

func (n *Notifier) publish(event Event) {
	defer func() {
		if rec := recover(); rec != nil {
			n.logger.Error("panic during event broadcast", slog.Any("panic", rec))
		}
	}()

	data, err := json.Marshal(event)
	if err != nil {
		n.logger.Warn("failed to encode event, dropping",
			slog.String("type", event.Type), slog.String("error", err.Error()))
		return
	}
	n.broadcaster.Broadcast(data)
}
