package services

import (
	"context"
	"time"

	"github.com/yungbote/skillnest-backend/internal/clients/kafka"
)

const (
	EventTypeEnrollmentGranted = "enrollment.granted"
	enrollmentEventVersion     = "1"
)

type EnrollmentGranted struct {
	EnrollmentID string    `json:"enrollmentId"`
	UserID       string    `json:"userId"`
	CourseID     string    `json:"courseId"`
	PurchaseID   string    `json:"purchaseId"`
	GrantedAt    time.Time `json:"grantedAt"`
}

// EnrollmentPublisher announces committed enrollments. Publishing happens
// after the database commit and failures never undo the enrollment.
type EnrollmentPublisher interface {
	PublishEnrollmentGranted(ctx context.Context, evt EnrollmentGranted) error
}

type NoopEnrollmentPublisher struct{}

func (NoopEnrollmentPublisher) PublishEnrollmentGranted(context.Context, EnrollmentGranted) error {
	return nil
}

type eventProducer interface {
	Publish(ctx context.Context, key string, evt kafka.Envelope) error
}

type KafkaEnrollmentPublisher struct {
	producer eventProducer
}

func NewKafkaEnrollmentPublisher(p eventProducer) *KafkaEnrollmentPublisher {
	return &KafkaEnrollmentPublisher{producer: p}
}

func (k *KafkaEnrollmentPublisher) PublishEnrollmentGranted(ctx context.Context, evt EnrollmentGranted) error {
	occurred := evt.GrantedAt
	if occurred.IsZero() {
		occurred = time.Now().UTC()
	}
	// keyed by user so a learner's enrollments stay ordered on one partition
	return k.producer.Publish(ctx, evt.UserID, kafka.Envelope{
		EventType:    EventTypeEnrollmentGranted,
		EventVersion: enrollmentEventVersion,
		OccurredAt:   occurred,
		AggregateID:  evt.EnrollmentID,
		Data:         evt,
	})
}
