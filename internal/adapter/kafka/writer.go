package kafka

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/solar-position-service/internal/config"
	"github.com/couchcryptid/solar-position-service/internal/solar"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer produces solar reports to a Kafka topic.
// It implements sampler.Publisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured report topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// Publish serializes one report and writes it to the topic. The message key
// is the deterministic report ID, so a replayed sample lands on the same
// partition and dedupes downstream.
func (w *Writer) Publish(ctx context.Context, report solar.Report) error {
	msg, err := solar.SerializeReport(report)
	if err != nil {
		return err
	}
	return w.writer.WriteMessages(ctx, toKafkaMessage(msg))
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

func toKafkaMessage(msg solar.Message) kafkago.Message {
	headers := make([]kafkago.Header, 0, len(msg.Headers))
	// Fixed header order keeps messages byte-stable across publishes.
	for _, key := range []string{"site", "computed_at"} {
		if v, ok := msg.Headers[key]; ok {
			headers = append(headers, kafkago.Header{Key: key, Value: []byte(v)})
		}
	}
	return kafkago.Message{
		Key:     msg.Key,
		Value:   msg.Value,
		Headers: headers,
	}
}
