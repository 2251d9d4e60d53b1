// Package store defines the persistent models and queries for blogd.
// All query methods take the *gorm.DB they should run on, so callers can
// pass the per-request transaction and every operation in a request joins
// the same session.
package store

import "time"

// User is a registered account. The password hash never leaves the store:
// it is excluded from JSON and only the auth layer reads it.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:64;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"-"`
}

// Post is a titled text body owned by exactly one user. OwnerID is set at
// creation and never reassigned.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	Content   string    `gorm:"not null" json:"content"`
	OwnerID   uint      `gorm:"index;not null" json:"owner_id"`
	Owner     *User     `gorm:"foreignKey:OwnerID" json:"-"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Models returns the models to auto-migrate, in dependency order.
func Models() []interface{} {
	return []interface{}{&User{}, &Post{}}
}
