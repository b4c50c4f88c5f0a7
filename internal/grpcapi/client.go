package grpcapi

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Client calls the Slot service
type Client struct {
	conn *grpc.ClientConn
}

// Dial connects to the Slot service at target over an insecure connection
func Dial(ctx context.Context, target string, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.ForceCodec(jsonCodec{})),
	}, opts...)

	conn, err := grpc.DialContext(ctx, target, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn}, nil
}

// Save stores text, nil meaning a missing field, and returns the
// confirmation message
func (c *Client) Save(ctx context.Context, text *string) (string, error) {
	out := new(SaveResponse)
	if err := c.conn.Invoke(ctx, saveMethod, &SaveRequest{Text: text}, out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// Read returns the stored value or the deployment's sentinel
func (c *Client) Read(ctx context.Context) (string, error) {
	out := new(ReadResponse)
	if err := c.conn.Invoke(ctx, readMethod, &ReadRequest{}, out); err != nil {
		return "", err
	}
	return out.Value, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}
