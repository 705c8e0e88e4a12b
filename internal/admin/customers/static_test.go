package customers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStaticListSearch(t *testing.T) {
	svc := NewStaticService()

	res, err := svc.List(context.Background(), "tok", Query{Search: "sam@"})
	require.NoError(t, err)
	require.Len(t, res.Customers, 1)
	require.Equal(t, "Sam", res.Customers[0].Name)
}

func TestStaticDelete(t *testing.T) {
	svc := NewStaticService()
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, "tok", "64f1c0ffee0ddba11ca7ee02"))

	res, err := svc.List(ctx, "tok", Query{})
	require.NoError(t, err)
	require.Len(t, res.Customers, 3)

	require.ErrorIs(t, svc.Delete(ctx, "tok", "ffffffffffffffffffffffff"), ErrCustomerNotFound)
}

func TestStaticDeleteRefusesAdmins(t *testing.T) {
	svc := NewStaticService()

	err := svc.Delete(context.Background(), "tok", "64f1c0ffee0ddba11ca7ee04")
	require.ErrorIs(t, err, ErrCannotDeleteAdmin)
}
