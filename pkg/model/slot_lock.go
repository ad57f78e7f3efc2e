package model

import "time"

// SlotLock is an advisory lock serializing the read-then-insert section of
// the booking flow per (clinic_id, date). The _id doubles as the lock key, so
// a duplicate-key error on insert means another request holds the lock.
type SlotLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
