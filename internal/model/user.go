package model

import "time"

// User represents an account that owns student records.
type User struct {
	UserID       string    `dynamodbav:"user_id" json:"user_id"`
	Username     string    `dynamodbav:"username" json:"username"`
	Email        string    `dynamodbav:"email" json:"email"`
	PasswordHash string    `dynamodbav:"password_hash" json:"-"`
	CreatedAt    time.Time `dynamodbav:"created_at,unixtime" json:"created_at"`
}
