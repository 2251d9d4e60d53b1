package store

import (
	"errors"

	"gorm.io/gorm"

	"github.com/kbukum/blogd/database"
	apperrors "github.com/kbukum/blogd/errors"
)

// Store holds the query methods for users and posts.
type Store struct{}

// New creates a Store.
func New() *Store {
	return &Store{}
}

// CreateUser inserts a new user. The uniqueness pre-check gives a fast
// answer in the common case; the unique index on username is the
// authoritative guard, so a concurrent duplicate registration that slips
// past the pre-check still surfaces as UsernameTaken.
func (s *Store) CreateUser(tx *gorm.DB, username, passwordHash string) (*User, error) {
	var count int64
	if err := tx.Model(&User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, database.FromDatabase(err, "user")
	}
	if count > 0 {
		return nil, apperrors.UsernameTaken(username)
	}

	user := &User{Username: username, PasswordHash: passwordHash}
	if err := tx.Create(user).Error; err != nil {
		if database.IsDuplicateError(err) {
			return nil, apperrors.UsernameTaken(username)
		}
		return nil, database.FromDatabase(err, "user")
	}
	return user, nil
}

// UserByID fetches a user by primary key.
func (s *Store) UserByID(tx *gorm.DB, id uint) (*User, error) {
	var user User
	if err := tx.First(&user, id).Error; err != nil {
		return nil, database.FromDatabase(err, "user")
	}
	return &user, nil
}

// UserByUsername fetches a user by its unique username.
func (s *Store) UserByUsername(tx *gorm.DB, username string) (*User, error) {
	var user User
	if err := tx.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, database.FromDatabase(err, "user")
	}
	return &user, nil
}

// CreatePost inserts a post owned by the given user.
func (s *Store) CreatePost(tx *gorm.DB, ownerID uint, title, content string) (*Post, error) {
	post := &Post{Title: title, Content: content, OwnerID: ownerID}
	if err := tx.Create(post).Error; err != nil {
		return nil, database.FromDatabase(err, "post")
	}
	return post, nil
}

// PostByID fetches a post by primary key.
func (s *Store) PostByID(tx *gorm.DB, id uint) (*Post, error) {
	var post Post
	if err := tx.First(&post, id).Error; err != nil {
		return nil, database.FromDatabase(err, "post")
	}
	return &post, nil
}

// UpdatePost writes new title and content for an existing post. OwnerID is
// deliberately not part of the update set.
func (s *Store) UpdatePost(tx *gorm.DB, post *Post, title, content string) error {
	post.Title = title
	post.Content = content
	err := tx.Model(post).Updates(map[string]interface{}{
		"title":   title,
		"content": content,
	}).Error
	if err != nil {
		return database.FromDatabase(err, "post")
	}
	return nil
}

// DeletePost removes a post. Hard delete, no soft-delete column.
func (s *Store) DeletePost(tx *gorm.DB, post *Post) error {
	result := tx.Delete(post)
	if result.Error != nil {
		return database.FromDatabase(result.Error, "post")
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("post")
	}
	return nil
}

// IsNotFound reports whether err is the store's not-found error.
func IsNotFound(err error) bool {
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		return errors.Is(err, gorm.ErrRecordNotFound)
	}
	return appErr.Code == apperrors.ErrCodeNotFound
}
