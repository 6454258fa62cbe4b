package grpcserver

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/Krimson/growth-monitory/pkg/models"
)

// Client calls a remote growth service.
type Client struct {
	conn *grpc.ClientConn
}

func Dial(addr string, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	return &Client{conn: conn}, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) CalculateZScore(ctx context.Context, req models.CalculateRequest) (*models.CalculateResponse, error) {
	var resp models.CalculateResponse
	if err := c.invoke(ctx, methodCalculateZScore, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) EvaluateKPSP(ctx context.Context, req models.KPSPRequest) (*models.KPSPResponse, error) {
	var resp models.KPSPResponse
	if err := c.invoke(ctx, methodEvaluateKPSP, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Info(ctx context.Context) (*models.InfoResponse, error) {
	var resp models.InfoResponse
	if err := c.invoke(ctx, methodInfo, struct{}{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) invoke(ctx context.Context, method string, req, resp interface{}) error {
	raw, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	in := new(structpb.Struct)
	if err := protojson.Unmarshal(raw, in); err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, method, in, out); err != nil {
		return err
	}
	return fromStruct(out, resp)
}
