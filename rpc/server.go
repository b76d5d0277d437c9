package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/nats-io/nats.go"

	"challengeme/interceptor"
	natsClient "challengeme/nats"
)

// HandlerFunc handles one decoded request. The context carries the
// authenticated user id for non-public subjects. The returned value is
// marshaled into the reply envelope.
type HandlerFunc func(ctx context.Context, data json.RawMessage) (interface{}, error)

// Server dispatches request-reply subjects to handlers over a NATS
// queue group so multiple instances compete for requests.
type Server struct {
	nats  *natsClient.Client
	auth  *interceptor.Authenticator
	queue string
}

func NewServer(nc *natsClient.Client, auth *interceptor.Authenticator, queue string) *Server {
	return &Server{nats: nc, auth: auth, queue: queue}
}

// Handle subscribes a handler on subject.
func (s *Server) Handle(subject string, handler HandlerFunc) error {
	_, err := s.nats.QueueSubscribe(subject, s.queue, func(msg *nats.Msg) {
		resp := s.dispatch(subject, msg.Data, handler)
		payload, err := json.Marshal(resp)
		if err != nil {
			log.Printf("failed to marshal response for %s: %v", subject, err)
			return
		}
		if err := msg.Respond(payload); err != nil {
			log.Printf("failed to respond on %s: %v", subject, err)
		}
	})
	return err
}

func (s *Server) dispatch(subject string, payload []byte, handler HandlerFunc) Response {
	var req Request
	if err := json.Unmarshal(payload, &req); err != nil {
		return failure(InvalidArgument("malformed request envelope"))
	}

	ctx, err := s.auth.Authorize(context.Background(), subject, req.Token)
	if err != nil {
		return failure(Errorf(CodeUnauthenticated, "%v", err))
	}

	result, err := handler(ctx, req.Data)
	if err != nil {
		log.Printf("handler for %s failed: %v", subject, err)
		return failure(err)
	}

	resp := Response{Success: true}
	if result != nil {
		data, err := json.Marshal(result)
		if err != nil {
			log.Printf("failed to marshal result for %s: %v", subject, err)
			return failure(Internal("failed to encode result"))
		}
		resp.Data = data
	}
	return resp
}

// failure maps a handler error into a response envelope. Coded errors
// keep their code; anything else becomes internal.
func failure(err error) Response {
	var rpcErr *Error
	if errors.As(err, &rpcErr) {
		return Response{Success: false, Code: rpcErr.Code, Message: rpcErr.Message}
	}
	return Response{Success: false, Code: CodeInternal, Message: err.Error()}
}
