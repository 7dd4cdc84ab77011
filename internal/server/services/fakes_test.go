package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/technotes/internal/common"
	"github.com/dmitrijs2005/technotes/internal/server/models"
)

// fakeUsersRepo is an in-memory users.Repository. Setting err makes every
// call fail with it.
type fakeUsersRepo struct {
	mu     sync.Mutex
	byID   map[string]models.User
	nextID int
	err    error

	updated *models.User
}

func newFakeUsersRepo(seed ...models.User) *fakeUsersRepo {
	r := &fakeUsersRepo{byID: map[string]models.User{}}
	for _, u := range seed {
		r.byID[u.ID] = u
	}
	return r
}

func (r *fakeUsersRepo) List(ctx context.Context) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := []models.User{}
	for _, u := range r.byID {
		u.Password = ""
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}

func (r *fakeUsersRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.byID {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *fakeUsersRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	r.nextID++
	user.ID = fmt.Sprintf("u%d", r.nextID)
	r.byID[user.ID] = *user
	return user, nil
}

func (r *fakeUsersRepo) Update(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	if _, ok := r.byID[user.ID]; !ok {
		return nil, common.ErrorNotFound
	}
	r.byID[user.ID] = *user
	r.updated = user
	return user, nil
}

type fakeNotesRepo struct {
	mu     sync.Mutex
	byID   map[string]models.Note
	order  []string
	nextID int
	err    error

	deleted []string
}

func newFakeNotesRepo(seed ...models.Note) *fakeNotesRepo {
	r := &fakeNotesRepo{byID: map[string]models.Note{}}
	for _, n := range seed {
		r.byID[n.ID] = n
		r.order = append(r.order, n.ID)
	}
	return r
}

func (r *fakeNotesRepo) List(ctx context.Context) ([]models.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := []models.Note{}
	for _, id := range r.order {
		if n, ok := r.byID[id]; ok {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *fakeNotesRepo) GetByID(ctx context.Context, id string) (*models.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	n, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &n, nil
}

func (r *fakeNotesRepo) GetByTitle(ctx context.Context, title string) (*models.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, n := range r.byID {
		if n.Title == title {
			return &n, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *fakeNotesRepo) Create(ctx context.Context, note *models.Note) (*models.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	r.nextID++
	note.ID = fmt.Sprintf("n%d", r.nextID)
	r.byID[note.ID] = *note
	r.order = append(r.order, note.ID)
	return note, nil
}

func (r *fakeNotesRepo) Update(ctx context.Context, note *models.Note) (*models.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	if _, ok := r.byID[note.ID]; !ok {
		return nil, common.ErrorNotFound
	}
	r.byID[note.ID] = *note
	return note, nil
}

func (r *fakeNotesRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	if _, ok := r.byID[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.byID, id)
	r.deleted = append(r.deleted, id)
	return nil
}
