package leaderboard

import (
	"context"
	"log"

	"github.com/nats-io/nats.go"

	"challengeme/events"
	natsClient "challengeme/nats"
)

// Subscriber keeps the boards in sync with like events.
type Subscriber struct {
	natsClient *natsClient.Client
	repo       Repository
	ctx        context.Context
}

func NewSubscriber(nc *natsClient.Client, repo Repository, ctx context.Context) *Subscriber {
	return &Subscriber{
		natsClient: nc,
		repo:       repo,
		ctx:        ctx,
	}
}

func (s *Subscriber) Start() error {
	if _, err := s.natsClient.QueueSubscribe(events.SubjectLikeCreated, "leaderboard-workers", s.handleLikeCreated); err != nil {
		return err
	}
	if _, err := s.natsClient.QueueSubscribe(events.SubjectLikeDeleted, "leaderboard-workers", s.handleLikeDeleted); err != nil {
		return err
	}

	log.Println("Leaderboard subscriber started successfully")
	return nil
}

func (s *Subscriber) handleLikeCreated(msg *nats.Msg) {
	var event events.LikeCreatedEvent
	if err := natsClient.DecodeEvent(msg, &event); err != nil {
		log.Printf("Error decoding like created event: %v", err)
		return
	}

	if err := s.repo.RecordLike(s.ctx, event.PostOwnerID, event.CreatedDate); err != nil {
		log.Printf("Error recording like on leaderboard: %v", err)
	}
}

func (s *Subscriber) handleLikeDeleted(msg *nats.Msg) {
	var event events.LikeDeletedEvent
	if err := natsClient.DecodeEvent(msg, &event); err != nil {
		log.Printf("Error decoding like deleted event: %v", err)
		return
	}

	if err := s.repo.RemoveLike(s.ctx, event.PostOwnerID, event.CreatedDate); err != nil {
		log.Printf("Error removing like from leaderboard: %v", err)
	}
}
