package customers

import (
	"context"
	"errors"

	"eshoplabs.dev/eshop-web/internal/api"
)

// HTTPService implements Service against the backend REST API.
type HTTPService struct {
	client *api.Client
}

// NewHTTPService wraps the shared API client.
func NewHTTPService(client *api.Client) *HTTPService {
	return &HTTPService{client: client}
}

// List fetches every account and applies filters locally.
func (s *HTTPService) List(ctx context.Context, token string, query Query) (ListResult, error) {
	all, err := s.client.ListUsers(ctx, token)
	if err != nil {
		return ListResult{}, err
	}
	return filterAndPage(all, query), nil
}

// Delete removes an account. Admin accounts are refused before the backend
// call so a typo cannot lock the console out.
func (s *HTTPService) Delete(ctx context.Context, token, id string) error {
	all, err := s.client.ListUsers(ctx, token)
	if err != nil {
		return err
	}
	for _, u := range all {
		if u.ID == id && u.IsAdmin {
			return ErrCannotDeleteAdmin
		}
	}
	if err := s.client.DeleteUser(ctx, token, id); err != nil {
		var statusErr *api.StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == 404 {
			return ErrCustomerNotFound
		}
		return err
	}
	return nil
}
