package models

import "time"

// Account is a registered user. Email and DeviceID are each unique.
type Account struct {
	ID           string    `bson:"id" json:"id"`
	FullName     string    `bson:"fullName" json:"fullName"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	DeviceID     string    `bson:"deviceId" json:"deviceId"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}
