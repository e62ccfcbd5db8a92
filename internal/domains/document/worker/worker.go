// Package worker archives rendered documents in object storage whenever a document is saved.
package worker

import (
	"context"
	"fmt"
	"net/http"

	"tourdesk/config"
	"tourdesk/infras/kafka"
	"tourdesk/internal/domains/document/model/dto"
	"tourdesk/internal/domains/document/service"
	"tourdesk/shared/failure"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

type Archiver struct {
	kafka   kafka.Client
	service service.Document
	cfg     *config.Config
}

func New(kafka kafka.Client, service service.Document, cfg *config.Config) *Archiver {
	return &Archiver{
		kafka:   kafka,
		service: service,
		cfg:     cfg,
	}
}

// Run consumes document events until ctx is cancelled.
func (a *Archiver) Run(ctx context.Context) error {
	topic := a.cfg.Kafka.Topics.DocumentSaved

	log.Info().Str("topic", topic).Msg("document archiver started")

	if err := a.kafka.Consume(ctx, a.cfg.Kafka.ConsumerGroup, topic, a.Handle); err != nil {
		return fmt.Errorf("failed to consume document events: %w", err)
	}

	log.Info().Msg("document archiver stopped")

	return nil
}

// Close releases the kafka writers held by the document service.
func (a *Archiver) Close() error {
	return a.kafka.Close()
}

// Handle archives the document named by one event. Events for documents that no longer
// exist, or that cannot be rendered, are acknowledged and dropped.
func (a *Archiver) Handle(ctx context.Context, message kafkaGo.Message) error {
	event, err := kafka.Decode[dto.DocumentSavedEvent](message)
	if err != nil {
		return nil //nolint:nilerr
	}

	url, err := a.service.Archive(ctx, event.ID)
	if err != nil {
		switch failure.GetCode(err) {
		case http.StatusNotFound, http.StatusUnprocessableEntity:
			log.Warn().Err(err).Str("reference", event.Reference).Msg("skipping document archive")

			return nil
		default:
			return err
		}
	}

	log.Debug().Str("reference", event.Reference).Str("action", event.Action).Str("url", url).Msg("document event handled")

	return nil
}
