package domain

import "time"

// ActivityAction identifies a mutation recorded in the audit trail.
type ActivityAction string

const (
	ActivityCreated   ActivityAction = "created"
	ActivityUpdated   ActivityAction = "updated"
	ActivityPublished ActivityAction = "published"
	ActivityDeleted   ActivityAction = "deleted"
)

// Activity is an audit entry for a post mutation. Entries are written
// asynchronously and ordered per post by the dispatcher sharding.
type Activity struct {
	PostID    int64          `json:"post_id" bson:"post_id"`
	ActorID   int64          `json:"actor_id" bson:"actor_id"`
	Action    ActivityAction `json:"action" bson:"action"`
	Timestamp time.Time      `json:"timestamp" bson:"timestamp"`
}
