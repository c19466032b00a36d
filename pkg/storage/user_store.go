package storage

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"homescout/client-app/pkg/model"
)

// UserStore defines the interface for user-related storage operations against
// the local mock users table.
type UserStore interface {
	UserAdd(newUser model.UserInfo) error
	UserGet(userInfo model.UserInfo, userFilter model.UserFilter) ([]*model.User, error)
	UserAuthenticate(email, password string) (*model.User, bool, error)
	UserUpdate(user *model.User, userUpdateInfo model.UserInfo, userFilter model.UserFilter) error
	UserDelete(user *model.User) error
}

// UserStorage implements the UserStore interface.
type UserStorage struct {
	storage *Storage
}

// NewUserStorage creates a new UserStorage instance.
func NewUserStorage(storage *Storage) *UserStorage {
	return &UserStorage{storage: storage}
}

// UserAdd adds a new user to the database. The plaintext password from the
// info is hashed before it is persisted.
func (s *UserStorage) UserAdd(newUser model.UserInfo) error {
	db := s.storage.GetDatabase()
	now := time.Now()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newUser.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	err = db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer db.Rollback()

	_, err = db.Exec(
		"INSERT INTO users (id, name, email, phone, profile_pic, password_hash, created, updated) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		newUser.ID, newUser.Name, newUser.Email, newUser.Phone, newUser.ProfilePic, hashedPassword, now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to add user: %w", err)
	}

	if err := db.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// UserGet retrieves users based on the provided info and filter.
func (s *UserStorage) UserGet(userInfo model.UserInfo, userFilter model.UserFilter) ([]*model.User, error) {
	db := s.storage.GetDatabase()
	query := "SELECT id, name, email, phone, profile_pic, created, updated FROM users WHERE 1=1"
	var args []interface{}

	if userFilter.ID {
		query += " AND id = ?"
		args = append(args, userInfo.ID)
	}
	if userFilter.Email {
		query += " AND email = ?"
		args = append(args, userInfo.Email)
	}
	if userFilter.Name {
		query += " AND name = ?"
		args = append(args, userInfo.Name)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		var u model.User
		err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.ProfilePic, &u.Created, &u.Updated)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, &u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}

	return users, nil
}

// UserAuthenticate verifies the given credentials against the users table.
// An unknown email or a wrong password is a normal false return, not an error.
func (s *UserStorage) UserAuthenticate(email, password string) (*model.User, bool, error) {
	db := s.storage.GetDatabase()

	var u model.User
	var hash []byte
	row := db.QueryRow("SELECT id, name, email, phone, profile_pic, password_hash, created, updated FROM users WHERE email = ?", email)
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.ProfilePic, &hash, &u.Created, &u.Updated)
	if err != nil {
		if isNoRows(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to query user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		if err == bcrypt.ErrMismatchedHashAndPassword {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to compare password: %w", err)
	}

	return &u, true, nil
}

// UserUpdate updates an existing user in the database.
func (s *UserStorage) UserUpdate(user *model.User, userUpdateInfo model.UserInfo, userFilter model.UserFilter) error {
	db := s.storage.GetDatabase()
	query := "UPDATE users SET updated = ?"
	args := []interface{}{time.Now()}

	if userFilter.Name {
		query += ", name = ?"
		args = append(args, userUpdateInfo.Name)
	}
	if userFilter.Email {
		query += ", email = ?"
		args = append(args, userUpdateInfo.Email)
	}
	if userFilter.Phone {
		query += ", phone = ?"
		args = append(args, userUpdateInfo.Phone)
	}
	if userFilter.ProfilePic {
		query += ", profile_pic = ?"
		args = append(args, userUpdateInfo.ProfilePic)
	}
	if userFilter.Password {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(userUpdateInfo.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		query += ", password_hash = ?"
		args = append(args, hashedPassword)
	}

	query += " WHERE id = ?"
	args = append(args, user.ID)

	_, err := db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	return nil
}

// UserDelete removes a user from the database.
func (s *UserStorage) UserDelete(user *model.User) error {
	db := s.storage.GetDatabase()
	_, err := db.Exec("DELETE FROM users WHERE id = ?", user.ID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
