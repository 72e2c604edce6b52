package models

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// timestampLayout is the display format used everywhere a timestamp leaves the
// system (JSON responses, CSV export): "2006-01-02 15:04:05 UTC".
const timestampLayout = "2006-01-02 15:04:05"

// FormatTimestamp renders t in the canonical display format.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout) + " UTC"
}

// Feedback is one persisted submission. Records are append-only: once written
// they are never updated or deleted. Seq is assigned by the store and is unique
// and strictly increasing in insertion order.
type Feedback struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"-"`
	Seq       int64         `bson:"seq" json:"id"`
	Rating    int           `bson:"rating" json:"rating"`
	Review    string        `bson:"review" json:"review"`
	Summary   string        `bson:"summary" json:"summary"`
	Actions   string        `bson:"actions" json:"actions"`
	CreatedAt time.Time     `bson:"created_at" json:"-"`
}

// MarshalJSON adds the formatted timestamp field to the JSON shape.
func (f Feedback) MarshalJSON() ([]byte, error) {
	type alias Feedback
	return json.Marshal(struct {
		alias
		Timestamp string `json:"timestamp"`
	}{
		alias:     alias(f),
		Timestamp: FormatTimestamp(f.CreatedAt),
	})
}
