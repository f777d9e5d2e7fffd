package store

import (
	"fmt"

	"github.com/mlakar/inventar/internal/document"
	"github.com/mlakar/inventar/internal/model"
)

// CreateUser creates a new user. Usernames must be unique among
// non-deleted users; a deleted user's name may be reused.
func CreateUser(docs *document.Store, username, passwordHash, role string) (*model.User, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrValidation)
	}
	if passwordHash == "" {
		return nil, fmt.Errorf("%w: password hash is required", ErrValidation)
	}
	if !model.ValidRole(role) {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}

	var created model.User
	err := docs.Update(func(doc *model.Document) error {
		if doc.FindUserByUsername(username) != nil {
			return fmt.Errorf("%w: username %s", ErrConflict, username)
		}

		user := model.User{
			ID:           newID(),
			Username:     username,
			PasswordHash: passwordHash,
			Role:         role,
			CreatedAt:    now().UTC(),
		}
		doc.Users = append(doc.Users, user)
		created = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// GetUser returns a user by id.
func GetUser(docs *document.Store, id string) (*model.User, error) {
	doc, err := docs.Load()
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}

	user := doc.FindUser(id)
	if user == nil {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, id)
	}
	u := *user
	return &u, nil
}

// GetUserByUsername returns the non-deleted user with the given username.
func GetUserByUsername(docs *document.Store, username string) (*model.User, error) {
	doc, err := docs.Load()
	if err != nil {
		return nil, fmt.Errorf("getting user by username: %w", err)
	}

	user := doc.FindUserByUsername(username)
	if user == nil {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, username)
	}
	u := *user
	return &u, nil
}

// ListUsers returns all non-deleted users.
func ListUsers(docs *document.Store) ([]model.User, error) {
	doc, err := docs.Load()
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}

	users := make([]model.User, 0, len(doc.Users))
	for _, user := range doc.Users {
		if user.Active() {
			users = append(users, user)
		}
	}
	return users, nil
}

// UpdateUserRole changes a non-deleted user's role.
func UpdateUserRole(docs *document.Store, id, role string) error {
	if !model.ValidRole(role) {
		return fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}

	return docs.Update(func(doc *model.Document) error {
		user := doc.FindUser(id)
		if user == nil || !user.Active() {
			return fmt.Errorf("%w: user %s", ErrNotFound, id)
		}
		user.Role = role
		return nil
	})
}

// UpdateUserPassword replaces a non-deleted user's password hash.
func UpdateUserPassword(docs *document.Store, id, passwordHash string) error {
	if passwordHash == "" {
		return fmt.Errorf("%w: password hash is required", ErrValidation)
	}

	return docs.Update(func(doc *model.Document) error {
		user := doc.FindUser(id)
		if user == nil || !user.Active() {
			return fmt.Errorf("%w: user %s", ErrNotFound, id)
		}
		user.PasswordHash = passwordHash
		return nil
	})
}

// DeleteUser soft-deletes a user, freeing the username for reuse while
// keeping the record for reference.
func DeleteUser(docs *document.Store, id string) error {
	return docs.Update(func(doc *model.Document) error {
		user := doc.FindUser(id)
		if user == nil || !user.Active() {
			return fmt.Errorf("%w: user %s", ErrNotFound, id)
		}
		when := now().UTC()
		user.DeletedAt = &when
		return nil
	})
}
