// internal/relay/relay.go
package relay

import (
	"context"
	"fmt"
	"net/http"

	"github.com/coder/websocket"
	"github.com/sirupsen/logrus"

	"github.com/cardkit/klondike/engine"
)

// Handler receives each decoded remote move with its sender sequence number.
type Handler func(m engine.Move, seq uint64)

// Client relays serialized moves over a websocket. It owns no game logic:
// outbound moves are encoded wire envelopes, inbound envelopes are decoded
// and handed to the Handler, which is expected to feed them through a
// session exactly like locally proposed moves.
type Client struct {
	conn *websocket.Conn
	log  *logrus.Entry
}

// Dial connects to the peer relay at url. A non-empty token (see PeerToken)
// is presented as a bearer credential for relays that authenticate peers.
func Dial(ctx context.Context, url, token string) (*Client, error) {
	var opts *websocket.DialOptions
	if token != "" {
		opts = &websocket.DialOptions{
			HTTPHeader: http.Header{"Authorization": {"Bearer " + token}},
		}
	}
	conn, _, err := websocket.Dial(ctx, url, opts)
	if err != nil {
		return nil, fmt.Errorf("relay dial %s: %w", url, err)
	}
	return &Client{
		conn: conn,
		log:  logrus.WithField("relay", url),
	}, nil
}

// Send encodes the move and writes it as a text message.
func (c *Client) Send(ctx context.Context, m engine.Move, seq uint64) error {
	data, err := engine.EncodeMove(m, seq)
	if err != nil {
		return err
	}
	if err := c.conn.Write(ctx, websocket.MessageText, data); err != nil {
		return fmt.Errorf("relay send: %w", err)
	}
	c.log.WithFields(logrus.Fields{"move": m.String(), "seq": seq}).Debug("move sent")
	return nil
}

// Listen reads messages until the context is canceled or the connection
// drops, invoking the handler for each well-formed move. Malformed messages
// are logged and skipped — a misbehaving peer must not kill the loop.
func (c *Client) Listen(ctx context.Context, h Handler) error {
	for {
		typ, data, err := c.conn.Read(ctx)
		if err != nil {
			return fmt.Errorf("relay read: %w", err)
		}
		if typ != websocket.MessageText {
			continue
		}
		m, seq, err := engine.DecodeMove(data)
		if err != nil {
			c.log.WithError(err).Warn("dropping malformed relay message")
			continue
		}
		h(m, seq)
	}
}

// Close closes the connection with a normal-closure status.
func (c *Client) Close() error {
	return c.conn.Close(websocket.StatusNormalClosure, "done")
}
