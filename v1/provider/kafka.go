package provider

import (
	"context"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap/zapcore"

	"github.com/openremote/logging/v1/diagnostics"
	"github.com/openremote/logging/v1/format"
	"github.com/openremote/logging/v1/record"
)

// kafkaWriteTimeout bounds a single record shipment so a dead broker can
// only stall, never hang, the logging call.
const kafkaWriteTimeout = 5 * time.Second

// kafkaCore ships formatted records to a Kafka topic, keyed by the logger's
// canonical hierarchy name so records of one logger land in one partition.
type kafkaCore struct {
	zapcore.LevelEnabler

	key       []byte
	writer    *kafka.Writer
	formatter *format.SingleLineFormatter
	diag      *diagnostics.Channel
}

func newKafkaCore(hierarchyName string, config *KafkaConfiguration) (zapcore.Core, func() error, error) {
	brokers := config.Brokers()
	if len(brokers) == 0 {
		return nil, nil, errors.New("provider: kafka consumer requires at least one broker address")
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        config.Topic(),
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		Async:        false,
	}

	core := &kafkaCore{
		LevelEnabler: levelEnabler(record.All),
		key:          []byte(hierarchyName),
		writer:       writer,
		formatter:    format.NewSingleLineFormatter(),
		diag:         diagnostics.Default(),
	}

	return core, writer.Close, nil
}

// With implements zapcore.Core.
func (c *kafkaCore) With([]zapcore.Field) zapcore.Core { return c }

// Check implements zapcore.Core.
func (c *kafkaCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}

	return ce
}

// Write implements zapcore.Core. Shipment failures are reported through
// diagnostics; the logging caller is never failed by a broker.
func (c *kafkaCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	r := recordFrom(ent, fields)

	ctx, cancel := context.WithTimeout(context.Background(), kafkaWriteTimeout)
	defer cancel()

	err := c.writer.WriteMessages(ctx, kafka.Message{
		Key:   c.key,
		Value: []byte(c.formatter.Format(r)),
		Time:  r.Time,
	})
	if err != nil {
		c.diag.Report(diagnostics.WriteFailure, "Cannot ship log record to kafka.", err)
	}

	return nil
}

// Sync implements zapcore.Core. The writer is synchronous, so there is
// nothing buffered to flush.
func (c *kafkaCore) Sync() error { return nil }
