package kafka_test

import (
	"testing"

	"tourdesk/infras/kafka"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type savedEvent struct {
	DocumentID string `json:"document_id"`
	Reference  string `json:"reference"`
}

func TestMessageRoundTrip(t *testing.T) {
	message := kafka.Message{
		Key:   "doc-1",
		Value: savedEvent{DocumentID: "doc-1", Reference: "QTN-240701-ABC123"},
	}

	encoded, err := message.ToKafkaMessage()
	require.NoError(t, err)
	assert.Equal(t, []byte("doc-1"), encoded.Key)

	decoded, err := kafka.Decode[savedEvent](encoded)
	require.NoError(t, err)
	assert.Equal(t, "QTN-240701-ABC123", decoded.Reference)
}

func TestMessage_Errors(t *testing.T) {
	message := kafka.Message{Key: "bad", Value: make(chan int)}

	_, err := message.ToKafkaMessage()
	assert.Error(t, err)

	_, err = kafka.Decode[savedEvent](kafkaGo.Message{Value: []byte("{")})
	assert.Error(t, err)
}
