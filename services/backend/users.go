package backendsvc

import (
	"context"
	"net/url"
	"strconv"

	"github.com/volatiletech/null/v8"

	"github.com/DrumilPatell/sms-system/core/session"
)

// UpdateUser defines what information may be provided to modify a User.
type UpdateUser struct {
	FullName       null.String `json:"full_name,omitempty"`
	ProfilePicture null.String `json:"profile_picture,omitempty"`
	IsActive       null.Bool   `json:"is_active,omitempty"`
}

type UserFilter struct {
	Search   string
	Role     session.Role
	IsActive *bool
}

func (f UserFilter) values() url.Values {
	v := make(url.Values)
	if f.Search != "" {
		v.Set("search", f.Search)
	}
	if f.Role != "" {
		v.Set("role", f.Role.String())
	}
	if f.IsActive != nil {
		v.Set("is_active", strconv.FormatBool(*f.IsActive))
	}
	return v
}

func (c *Client) QueryUsers(ctx context.Context, filter UserFilter) ([]session.User, error) {
	var users []session.User
	if err := c.get(ctx, "/users/", filter.values(), &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) GetUser(ctx context.Context, id int) (session.User, error) {
	var usr session.User
	if err := c.get(ctx, "/users/"+strconv.Itoa(id), nil, &usr); err != nil {
		return session.User{}, err
	}
	return usr, nil
}

func (c *Client) UpdateUser(ctx context.Context, id int, data UpdateUser) (session.User, error) {
	var usr session.User
	if err := c.patch(ctx, "/users/"+strconv.Itoa(id), data, &usr); err != nil {
		return session.User{}, err
	}
	return usr, nil
}

func (c *Client) DeleteUser(ctx context.Context, id int) error {
	return c.delete(ctx, "/users/"+strconv.Itoa(id))
}
