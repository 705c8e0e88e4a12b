package customers

import (
	"context"
	"sync"

	"eshoplabs.dev/eshop-web/internal/api"
)

// StaticService provides deterministic customer data suitable for local
// development and tests.
type StaticService struct {
	mu    sync.Mutex
	users []api.User
}

// NewStaticService returns a StaticService populated with representative accounts.
func NewStaticService() *StaticService {
	return &StaticService{
		users: []api.User{
			{ID: "64f1c0ffee0ddba11ca7ee01", Name: "Jess", Email: "jess@example.com"},
			{ID: "64f1c0ffee0ddba11ca7ee02", Name: "Sam", Email: "sam@example.com"},
			{ID: "64f1c0ffee0ddba11ca7ee03", Name: "Ana", Email: "ana@example.com"},
			{ID: "64f1c0ffee0ddba11ca7ee04", Name: "Val", Email: "val@example.com", IsAdmin: true},
		},
	}
}

// List returns a filtered page of the fixture customers.
func (s *StaticService) List(ctx context.Context, token string, query Query) (ListResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := append([]api.User(nil), s.users...)
	return filterAndPage(all, query), nil
}

// Delete removes a fixture customer.
func (s *StaticService) Delete(ctx context.Context, token, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == id {
			if s.users[i].IsAdmin {
				return ErrCannotDeleteAdmin
			}
			s.users = append(s.users[:i], s.users[i+1:]...)
			return nil
		}
	}
	return ErrCustomerNotFound
}
