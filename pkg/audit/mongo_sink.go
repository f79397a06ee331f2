package audit

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/bazaar/pkg/logger"
)

const (
	mongoBatchSize     = 50
	mongoFlushInterval = 2 * time.Second
	mongoBufferSize    = 1024
)

// MongoSink buffers audit events and inserts them into a MongoDB
// collection in batches from a background goroutine. Events are dropped
// when the buffer is full; the audit trail never backpressures requests.
type MongoSink struct {
	client *mongo.Client
	coll   *mongo.Collection

	ch   chan Event
	done chan struct{}
	once sync.Once
}

// NewMongoSink connects to uri and writes events to db.audit_events.
func NewMongoSink(ctx context.Context, uri, db string) (*MongoSink, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	s := &MongoSink{
		client: client,
		coll:   client.Database(db).Collection("audit_events"),
		ch:     make(chan Event, mongoBufferSize),
		done:   make(chan struct{}),
	}
	go s.drainLoop()
	return s, nil
}

func (s *MongoSink) Record(_ context.Context, action string, userID uint, fields map[string]any) {
	ev := Event{Time: time.Now().UTC(), Action: action, UserID: userID, Fields: fields}
	select {
	case s.ch <- ev:
	default:
		// buffer full, drop
	}
}

func (s *MongoSink) drainLoop() {
	ticker := time.NewTicker(mongoFlushInterval)
	defer ticker.Stop()

	batch := make([]any, 0, mongoBatchSize)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if _, err := s.coll.InsertMany(ctx, batch); err != nil {
			logger.Error("audit: mongo insert failed", "error", err, "events", len(batch))
		}
		cancel()
		batch = batch[:0]
	}

	for {
		select {
		case ev, ok := <-s.ch:
			if !ok {
				flush()
				close(s.done)
				return
			}
			batch = append(batch, ev)
			if len(batch) >= mongoBatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		}
	}
}

// Close flushes buffered events and disconnects from MongoDB.
func (s *MongoSink) Close(ctx context.Context) error {
	s.once.Do(func() { close(s.ch) })
	select {
	case <-s.done:
	case <-ctx.Done():
	}
	return s.client.Disconnect(ctx)
}
