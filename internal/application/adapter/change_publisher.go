// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"
)

// EntityKind names the kind of entity a change event refers to.
type EntityKind string

const (
	EntityUser     EntityKind = "user"
	EntityAccount  EntityKind = "account"
	EntityPurchase EntityKind = "purchase"
	EntitySettings EntityKind = "settings"
)

// ChangeAction names what happened to the entity.
type ChangeAction string

const (
	ActionCreated  ChangeAction = "created"
	ActionUpdated  ChangeAction = "updated"
	ActionDeleted  ChangeAction = "deleted"
	ActionShared   ChangeAction = "shared"
	ActionWithheld ChangeAction = "withheld"
	ActionMerged   ChangeAction = "merged"
)

// ChangeEvent describes one persisted ledger mutation.
type ChangeEvent struct {
	Kind       EntityKind   `json:"kind"`
	Action     ChangeAction `json:"action"`
	ID         uint32       `json:"id"`
	UserID     uint32       `json:"userId"`
	OccurredAt time.Time    `json:"occurredAt"`
}

// ChangePublisher broadcasts ledger mutations to interested consumers.
type ChangePublisher interface {
	Publish(ctx context.Context, event ChangeEvent) error
	Close() error
}
