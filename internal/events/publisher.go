// Package events publishes driver availability changes over NATS so other
// services (matching, dispatch) can react without polling.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/swiftride/backend/internal/usecase"
)

const (
	DriverStatusSubject = "driver.status"

	connectWait   = 5 * time.Second
	maxReconnects = 5
	reconnectWait = 2 * time.Second
)

func NewConnection(url string) (*nats.Conn, error) {
	opts := []nats.Option{
		nats.Name("SwiftRide Backend Publisher"),
		nats.Timeout(connectWait),
		nats.MaxReconnects(maxReconnects),
		nats.ReconnectWait(reconnectWait),
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS at %s: %w", url, err)
	}
	return nc, nil
}

type NATSPublisher struct {
	conn *nats.Conn
}

func NewNATSPublisher(conn *nats.Conn) (*NATSPublisher, error) {
	if conn == nil {
		return nil, fmt.Errorf("NATS connection cannot be nil")
	}
	return &NATSPublisher{conn: conn}, nil
}

func (p *NATSPublisher) PublishDriverStatus(_ context.Context, event usecase.DriverStatusEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal driver status event: %w", err)
	}
	if err := p.conn.Publish(DriverStatusSubject, data); err != nil {
		return fmt.Errorf("failed to publish driver status event: %w", err)
	}
	return nil
}
