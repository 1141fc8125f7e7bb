package event

import (
	"context"
	"fmt"
	"log/slog"

	pkgkafka "github.com/mpopescu/phonebook/pkg/kafka"

	"github.com/mpopescu/phonebook/internal/domain"
)

// Kafka topic constants for contact domain events.
const (
	TopicContactCreated = "phonebook.contact.created"
	TopicContactUpdated = "phonebook.contact.updated"
	TopicContactDeleted = "phonebook.contact.deleted"
)

// Aggregate type constant.
const AggregateTypeContact = "contact"

// Source identifier for events originating from this service.
const SourcePhonebook = "phonebook-api"

// ContactData is the payload for contact.created and contact.updated events.
type ContactData struct {
	ID          string `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
}

// ContactDeletedData is the payload for a contact.deleted event.
type ContactDeletedData struct {
	ID string `json:"id"`
}

// Producer publishes contact domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the phonebook service.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishContactCreated publishes a contact.created event.
func (p *Producer) PublishContactCreated(ctx context.Context, c *domain.Contact) error {
	return p.publishContact(ctx, TopicContactCreated, c)
}

// PublishContactUpdated publishes a contact.updated event.
func (p *Producer) PublishContactUpdated(ctx context.Context, c *domain.Contact) error {
	return p.publishContact(ctx, TopicContactUpdated, c)
}

// PublishContactDeleted publishes a contact.deleted event.
func (p *Producer) PublishContactDeleted(ctx context.Context, id string) error {
	event, err := pkgkafka.NewEvent(TopicContactDeleted, id, AggregateTypeContact, SourcePhonebook, ContactDeletedData{ID: id})
	if err != nil {
		return fmt.Errorf("create contact.deleted event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicContactDeleted, event); err != nil {
		return fmt.Errorf("publish contact.deleted event: %w", err)
	}

	return nil
}

func (p *Producer) publishContact(ctx context.Context, topic string, c *domain.Contact) error {
	data := ContactData{
		ID:          c.ID,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		PhoneNumber: c.PhoneNumber,
	}

	event, err := pkgkafka.NewEvent(topic, c.ID, AggregateTypeContact, SourcePhonebook, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}

	if err := p.kafka.Publish(ctx, topic, event); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}

	return nil
}
