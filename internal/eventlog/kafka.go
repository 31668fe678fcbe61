// Package eventlog appends declaration records to the compliance event
// stream. The stream is the audit trail of record: publishes are synchronous
// and fail-closed, and the user store is never touched until the log has
// acknowledged the write.
package eventlog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kgo"

	"pepgate/internal/platform/config"
	"pepgate/internal/pep/models"
)

// KafkaPublisher writes declaration records to a fixed topic and partition.
// The partition is deployment configuration: the compliance stream shards by
// flow, and consumers rely on per-partition ordering within one flow.
type KafkaPublisher struct {
	client     *kgo.Client
	topic      string
	partition  int32
	schemaName string
	logger     *slog.Logger
}

// NewKafkaPublisher connects to the brokers and ensures the topic exists.
// The returned publisher is safe for concurrent use and must be closed at
// process shutdown.
func NewKafkaPublisher(cfg config.Kafka, logger *slog.Logger) (*KafkaPublisher, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.RecordPartitioner(kgo.ManualPartitioner()),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.ProduceRequestTimeout(10*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}

	p := &KafkaPublisher{
		client:     client,
		topic:      cfg.Topic,
		partition:  cfg.Partition,
		schemaName: cfg.SchemaName,
		logger:     logger,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := p.ensureTopic(ctx); err != nil {
		client.Close()
		return nil, err
	}
	return p, nil
}

func (p *KafkaPublisher) ensureTopic(ctx context.Context) error {
	adm := kadm.NewClient(p.client)
	topics, err := adm.ListTopics(ctx)
	if err != nil {
		return fmt.Errorf("list kafka topics: %w", err)
	}
	if topics.Has(p.topic) {
		return nil
	}
	if _, err := adm.CreateTopic(ctx, -1, -1, nil, p.topic); err != nil {
		return fmt.Errorf("create kafka topic %q: %w", p.topic, err)
	}
	p.logger.Info("created event log topic", "topic", p.topic)
	return nil
}

// Publish appends the record and waits for the broker acknowledgement.
// Returns acked=false on any non-ack; the caller must treat that exactly like
// an error and must not proceed to the store update.
func (p *KafkaPublisher) Publish(ctx context.Context, record models.Record) (bool, error) {
	payload, err := json.Marshal(record)
	if err != nil {
		return false, fmt.Errorf("marshal declaration record: %w", err)
	}

	rec := &kgo.Record{
		Topic:     p.topic,
		Partition: p.partition,
		Key:       []byte(record.UniqueID),
		Value:     payload,
		Headers: []kgo.RecordHeader{
			{Key: "schema_name", Value: []byte(p.schemaName)},
		},
		Timestamp: time.Now().UTC(),
	}

	if err := p.client.ProduceSync(ctx, rec).FirstErr(); err != nil {
		p.logger.ErrorContext(ctx, "event log publish failed",
			"topic", p.topic,
			"unique_id", record.UniqueID,
			"error", err,
		)
		return false, err
	}
	return true, nil
}

// Close flushes buffered records and releases the client.
func (p *KafkaPublisher) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := p.client.Flush(ctx); err != nil {
		p.logger.Error("kafka flush on close failed", "error", err)
	}
	p.client.Close()
	return nil
}
