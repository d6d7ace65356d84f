// Package tasks declares the asynq task names and payloads shared between
// the API enqueuer and the worker.
package tasks

const (
	QueueStylist = "stylist"

	TaskGenerateTitle = "conversation:generate_title"
)

type GenerateTitlePayload struct {
	ConversationId int64 `json:"conversation_id"`
}
