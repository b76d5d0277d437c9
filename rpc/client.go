package rpc

import (
	"context"
	"encoding/json"
	"fmt"

	natsClient "challengeme/nats"
)

// Call sends a request envelope on subject and decodes the reply into
// out (which may be nil when no payload is expected). A failed reply
// surfaces as an *Error carrying the wire code.
func Call(ctx context.Context, nc *natsClient.Client, subject, token string, in, out interface{}) error {
	req := Request{Token: token}
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		req.Data = data
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal request envelope: %w", err)
	}

	reply, err := nc.Request(ctx, subject, payload)
	if err != nil {
		return err
	}

	var resp Response
	if err := json.Unmarshal(reply, &resp); err != nil {
		return fmt.Errorf("malformed reply on %s: %w", subject, err)
	}

	if !resp.Success {
		return &Error{Code: resp.Code, Message: resp.Message}
	}

	if out != nil && len(resp.Data) > 0 {
		if err := json.Unmarshal(resp.Data, out); err != nil {
			return fmt.Errorf("failed to decode reply on %s: %w", subject, err)
		}
	}
	return nil
}
