package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementa UserRepository sobre el almacén en memoria.
// El email es único sin distinguir mayúsculas.
type UserRepo struct{ base }

func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	return r.write(ctx, CollectionUsers, func(st *state) error {
		if emailTaken(st, u.Email, "") {
			return domain.ErrEmailAlreadyExists
		}
		st.users = append(st.users, *u)
		return nil
	})
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.ID == id }), nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return strings.EqualFold(u.Email, email) }), nil
}

func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	return r.write(ctx, CollectionUsers, func(st *state) error {
		if emailTaken(st, u.Email, u.ID) {
			return domain.ErrEmailAlreadyExists
		}
		for i := range st.users {
			if st.users[i].ID == u.ID {
				st.users[i] = *u
				return nil
			}
		}
		return fmt.Errorf("usuario %s: %w", u.ID, domain.ErrNotFound)
	})
}

// List devuelve los usuarios ordenados por nombre.
func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	var list []*entity.User
	r.read(func(st *state) {
		for i := range st.users {
			u := st.users[i]
			list = append(list, &u)
		}
	})
	sort.SliceStable(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *UserRepo) Delete(ctx context.Context, id string) error {
	return r.write(ctx, CollectionUsers, func(st *state) error {
		for i := range st.users {
			if st.users[i].ID == id {
				st.users = append(st.users[:i], st.users[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("usuario %s: %w", id, domain.ErrNotFound)
	})
}

func (r *UserRepo) find(match func(u *entity.User) bool) *entity.User {
	var out *entity.User
	r.read(func(st *state) {
		for i := range st.users {
			if match(&st.users[i]) {
				u := st.users[i]
				out = &u
				return
			}
		}
	})
	return out
}

func emailTaken(st *state, email, exceptID string) bool {
	for i := range st.users {
		if st.users[i].ID != exceptID && strings.EqualFold(st.users[i].Email, email) {
			return true
		}
	}
	return false
}
