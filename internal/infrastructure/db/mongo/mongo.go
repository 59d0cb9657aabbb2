package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// defaultTimeout bounds every repository call.
const defaultTimeout = 10 * time.Second

// Collection names.
const (
	collUsers                  = "users"
	collFirmClients            = "firm_clients"
	collLawyerApplications     = "lawyer_applications"
	collLawFirmApplications    = "lawfirm_applications"
	collFirmLawyerApplications = "firm_lawyer_applications"
	collFirmClientApplications = "firm_client_applications"
	collTasks                  = "firm_tasks"
	collCases                  = "cases"
	collDocuments              = "documents"
	collBookings               = "bookings"
	collWaitlist               = "waitlist"
	collChatHistory            = "chat_history"
	collCaseUpdates            = "client_case_updates"
)

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect establishes a MongoDB client, verifies connectivity with a ping, and
// returns both the client and the selected database. A default timeout is
// applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetTimeout(timeout)
	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(cfg.Database)
	return client, db, nil
}

// findAll runs a find and decodes every document into a fresh slice.
func findAll[T any](ctx context.Context, col *mongo.Collection, op string, filter any, opts ...*options.FindOptions) ([]*T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := col.Find(ctx, filter, opts...)
	if err != nil {
		return nil, wrapErr(op, err)
	}
	defer cur.Close(ctx)

	out := make([]*T, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, wrapErr(op, err)
	}
	return out, nil
}

// newestFirst sorts on field descending and applies limit when positive.
func newestFirst(field string, limit int) *options.FindOptions {
	opts := options.Find().SetSort(bson.D{{Key: field, Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	return opts
}
