// Package client assembles the pieces the mobile shell drives: the
// session, the account flows, the like state store and engine, and the
// home-feed manager, all talking to the backend over NATS.
package client

import (
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"challengeme/client/auth"
	"challengeme/client/feed"
	"challengeme/client/like"
	"challengeme/client/transport"
	natsClient "challengeme/nats"
	"challengeme/pkg/clock"
)

// App is the composition root. The UI layer holds one App per session
// and subscribes to Bus for state-change events.
type App struct {
	Session *auth.Session
	Auth    *auth.Client
	Store   *like.Store
	Engine  *like.Engine
	Feed    *feed.Manager
	Remote  *transport.Client
	Bus     message.Subscriber
}

func New(nc *natsClient.Client, clk clock.Clock) *App {
	session := auth.NewSession()
	remote := transport.New(nc, session)
	store := like.NewStore(clk)
	engine := like.NewEngine(store, clk)
	bus := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})

	return &App{
		Session: session,
		Auth:    auth.NewClient(remote, session, store),
		Store:   store,
		Engine:  engine,
		Feed:    feed.NewManager(remote, remote, store, engine, session, clk, bus),
		Remote:  remote,
		Bus:     bus,
	}
}
