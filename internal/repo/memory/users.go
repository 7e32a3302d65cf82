package memory

import (
	"context"
	"strconv"
	"sync"

	"github.com/placementtrack/api/internal/domain/user"
)

// UsersRepo is the process-lifetime fallback store used when the database
// is unreachable at startup. Ids are a plain counter; nothing survives a
// restart.
type UsersRepo struct {
	mu     sync.Mutex
	items  map[int64]user.User
	nextID int64
}

func NewUsersRepo() *UsersRepo {
	return &UsersRepo{
		items:  make(map[int64]user.User),
		nextID: 1,
	}
}

func (r *UsersRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.items {
		if u.Email == email {
			return u, nil
		}
	}

	return user.User{}, user.ErrNotFound
}

func (r *UsersRepo) GetByID(_ context.Context, id string) (user.User, error) {
	key, err := strconv.ParseInt(id, 10, 64)

	if err != nil {
		// an id in a foreign format cannot exist here
		return user.User{}, user.ErrNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.items[key]

	if !ok {
		return user.User{}, user.ErrNotFound
	}

	return u, nil
}

// Insert assigns the next counter id. The duplicate check and the write
// happen under one lock so concurrent inserts cannot both claim an email.
func (r *UsersRepo) Insert(_ context.Context, u user.User) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.Email == u.Email {
			return user.User{}, user.ErrEmailTaken
		}
	}

	u.ID = strconv.FormatInt(r.nextID, 10)
	r.items[r.nextID] = u
	r.nextID++

	return u, nil
}

func (r *UsersRepo) Count(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.items), nil
}
