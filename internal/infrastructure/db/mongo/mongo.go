package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	defaultTimeout = 10 * time.Second
	appName        = "admin-console"
)

// Config describes the MongoDB deployment holding the edit audit trail.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Conn is a connected client bound to the audit database.
type Conn struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect dials MongoDB and pings the primary before returning. Timeout
// bounds both; defaultTimeout applies when it is unset.
func Connect(ctx context.Context, cfg Config) (*Conn, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName(appName).
		SetServerSelectionTimeout(timeout)

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	conn := &Conn{client: client, db: client.Database(cfg.Database)}
	if err := conn.Ping(connectCtx); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, err
	}
	return conn, nil
}

// Database returns the audit database.
func (c *Conn) Database() *mongo.Database { return c.db }

// Ping checks that the primary is reachable. It doubles as a readiness probe.
func (c *Conn) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("mongo ping: %w", err)
	}
	return nil
}

// Close disconnects the client.
func (c *Conn) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}
