package notifications

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"challengeme/events"
	models "challengeme/model"
	natsClient "challengeme/nats"
)

// Subscriber turns service events into notification rows.
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
	subscriptions := map[string]nats.MsgHandler{
		events.SubjectLikeCreated:   s.handleLikeCreated,
		events.SubjectCommentAdded:  s.handleCommentAdded,
		events.SubjectFollowCreated: s.handleFollowCreated,
	}

	for subject, handler := range subscriptions {
		if _, err := s.natsClient.QueueSubscribe(subject, "notification-workers", handler); err != nil {
			return err
		}
	}

	log.Println("Notification subscriber started successfully")
	return nil
}

func (s *Subscriber) handleLikeCreated(msg *nats.Msg) {
	var event events.LikeCreatedEvent
	if err := natsClient.DecodeEvent(msg, &event); err != nil {
		log.Printf("Error decoding like created event: %v", err)
		return
	}

	s.store(notificationForLike(event))
}

func (s *Subscriber) handleCommentAdded(msg *nats.Msg) {
	var event events.CommentAddedEvent
	if err := natsClient.DecodeEvent(msg, &event); err != nil {
		log.Printf("Error decoding comment added event: %v", err)
		return
	}

	s.store(notificationForComment(event))
}

func (s *Subscriber) handleFollowCreated(msg *nats.Msg) {
	var event events.FollowCreatedEvent
	if err := natsClient.DecodeEvent(msg, &event); err != nil {
		log.Printf("Error decoding follow created event: %v", err)
		return
	}

	s.store(notificationForFollow(event))
}

func (s *Subscriber) store(notification *models.Notification) {
	if notification == nil {
		return
	}
	if err := s.repo.Create(s.ctx, notification); err != nil {
		log.Printf("Error creating %s notification: %v", notification.Type, err)
		return
	}
	log.Printf("Created %s notification for user %s", notification.Type, notification.UserID)
}

// notificationForLike builds the notification for a like event, or nil
// when none is due. Self-likes cannot happen through the client but an
// event from a buggy producer must not notify the actor about themself.
func notificationForLike(event events.LikeCreatedEvent) *models.Notification {
	if event.LikedBy == event.PostOwnerID {
		return nil
	}
	actor := event.LikedBy
	related := event.PostID
	return &models.Notification{
		ID:        uuid.New(),
		UserID:    event.PostOwnerID,
		Type:      models.NotificationTypeLike,
		Message:   "liked your post",
		ActorID:   &actor,
		RelatedID: &related,
		CreatedAt: event.Timestamp,
	}
}

func notificationForComment(event events.CommentAddedEvent) *models.Notification {
	if event.CommentedBy == event.PostOwnerID {
		return nil
	}
	actor := event.CommentedBy
	related := event.PostID
	return &models.Notification{
		ID:        uuid.New(),
		UserID:    event.PostOwnerID,
		Type:      models.NotificationTypeComment,
		Message:   "commented on your post",
		ActorID:   &actor,
		RelatedID: &related,
		CreatedAt: event.Timestamp,
	}
}

func notificationForFollow(event events.FollowCreatedEvent) *models.Notification {
	if event.FollowerID == event.FollowedID {
		return nil
	}
	actor := event.FollowerID
	return &models.Notification{
		ID:        uuid.New(),
		UserID:    event.FollowedID,
		Type:      models.NotificationTypeFollow,
		Message:   "started following you",
		ActorID:   &actor,
		CreatedAt: event.Timestamp,
	}
}
