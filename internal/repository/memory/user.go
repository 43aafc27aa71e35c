package memory

import (
	"context"

	"github.com/jwalitptl/clinic-api/internal/model"
)

type userRepository struct{ *db }

func (r *userRepository) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email {
			return duplicate("create user", "users_email_key")
		}
	}

	user.ID = r.next("users")
	user.CreatedAt = r.timestamp()
	r.users[user.ID] = *user
	return nil
}

func (r *userRepository) GetByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, notFound("get user by email")
}
