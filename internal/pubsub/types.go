package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client   *pubsub.Client
	teardown func()
}

// EventType is the topic an event is published on.
type EventType string

const (
	EventChallengeCreated EventType = "challenge-created"
	EventMatchFinished    EventType = "match-finished"
)

// ChallengeCreated is published after a challenge is stored.
type ChallengeCreated struct {
	ChallengeID  string `msgpack:"challenge_id"`
	ChallengerID string `msgpack:"challenger_id"`
	ChallengedID string `msgpack:"challenged_id"`
	MonthRef     string `msgpack:"month_ref"`
	CreatedAt    int64  `msgpack:"created_at"`
}

// PushEnvelope is the JSON body of a Pub/Sub push delivery. Data is base64.
type PushEnvelope struct {
	Subscription string `json:"subscription"`
	Message      struct {
		Data      string `json:"data"`
		MessageID string `json:"messageId"`
	} `json:"message"`
}
