package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
)

// Producer publica eventos JSON en un topic.
type Producer struct {
	writer *kafka.Writer
}

// NewProducer crea un productor hacia topic. Los mensajes se balancean por clave.
func NewProducer(brokers []string, topic string) *Producer {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
	return &Producer{writer: writer}
}

// Publish serializa event y lo escribe con key como clave de partición.
// Mismo key (tabla afectada) conserva el orden dentro de la partición.
func (p *Producer) Publish(ctx context.Context, key string, event any) error {
	msg, err := message(key, event)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, msg)
}

// Close vacía los mensajes pendientes y cierra las conexiones con los brokers.
func (p *Producer) Close() error {
	return p.writer.Close()
}

func message(key string, event any) (kafka.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, err
	}
	return kafka.Message{
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
		Headers: []kafka.Header{
			{Key: "content-type", Value: []byte("application/json")},
		},
	}, nil
}
