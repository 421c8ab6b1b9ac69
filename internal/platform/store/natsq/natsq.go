// Package natsq provides the NATS connection used for dispatch intents
package natsq

import (
	"context"
	"time"

	"github.com/nats-io/nats.go"
)

// Config configures nats connectivity
type Config struct {
	URL  string
	Name string // connection name shown in server monitoring
}

// Bus is a thin wrapper over a nats connection
type Bus struct {
	nc *nats.Conn
}

// Open connects with unlimited reconnects so a broker restart does not
// take the pipeline down with it
func Open(_ context.Context, cfg Config) (*Bus, error) {
	opts := []nats.Option{
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2 * time.Second),
	}
	if cfg.Name != "" {
		opts = append(opts, nats.Name(cfg.Name))
	}
	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, err
	}
	return &Bus{nc: nc}, nil
}

// Publish sends data on subject. The ctx deadline bounds the flush so a
// slow broker cannot hold a dispatch worker past its per-call timeout
func (b *Bus) Publish(ctx context.Context, subject string, data []byte) error {
	if err := b.nc.Publish(subject, data); err != nil {
		return err
	}
	if dl, ok := ctx.Deadline(); ok {
		return b.nc.FlushTimeout(time.Until(dl))
	}
	return b.nc.Flush()
}

// Close drains and closes the connection
func (b *Bus) Close() error {
	if b == nil || b.nc == nil {
		return nil
	}
	b.nc.Close()
	return nil
}
