package memory

import (
	"context"
	"strings"

	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo usuarios en memoria; el email es único sin distinguir mayúsculas.
type UserRepo struct {
	sc scope
}

func cloneUser(u *entity.User) *entity.User {
	c := *u
	return &c
}

func findByEmail(st *state, email string) *entity.User {
	var out *entity.User
	st.users.each(func(u *entity.User) {
		if out == nil && strings.EqualFold(u.Email, email) {
			out = u
		}
	})
	return out
}

func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	return r.sc.write(func(st *state) error {
		if _, ok := st.users.get(user.ID); ok || findByEmail(st, user.Email) != nil {
			return domain.ErrDuplicate
		}
		st.users.put(user.ID, cloneUser(user))
		return nil
	})
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.sc.read(func(st *state) error {
		if u, ok := st.users.get(id); ok {
			out = cloneUser(u)
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	var out *entity.User
	err := r.sc.read(func(st *state) error {
		if u := findByEmail(st, email); u != nil {
			out = cloneUser(u)
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) Count(_ context.Context) (int, error) {
	n := 0
	err := r.sc.read(func(st *state) error {
		n = len(st.users.rows)
		return nil
	})
	return n, err
}
