package service

import (
	"errors"

	"connectrpc.com/connect"

	"github.com/mmynk/groupadmin/internal/groups"
	"github.com/mmynk/groupadmin/internal/listing"
	"github.com/mmynk/groupadmin/internal/models"
	"github.com/mmynk/groupadmin/pkg/api"
)

func toProtoUser(u models.User) *api.User {
	return &api.User{
		Id:          u.ID,
		Name:        u.Name,
		Initials:    u.Initials,
		Avatar:      u.Avatar,
		Role:        u.Role,
		DisplayRole: u.DisplayRole(),
		AvatarColor: u.AvatarColor(),
	}
}

func toProtoUsers(users []models.User) []*api.User {
	out := make([]*api.User, len(users))
	for i, u := range users {
		out[i] = toProtoUser(u)
	}
	return out
}

func toProtoGroup(g models.Group) *api.Group {
	return &api.Group{
		Id:        g.ID,
		Name:      g.Name,
		Picture:   g.Picture,
		Managers:  toProtoUsers(g.Managers),
		Members:   toProtoUsers(g.Members),
		CreatedAt: g.CreatedAt,
	}
}

func toPageInfo[T any](p listing.Page[T]) *api.PageInfo {
	return &api.PageInfo{
		Page:       int32(p.Page),
		PageSize:   int32(p.PageSize),
		TotalCount: int32(p.Total),
		TotalPages: int32(p.TotalPages),
		Summary:    p.Summary(),
	}
}

// window applies search and pagination. Page 0 returns every match as a single page.
func window[T any](items []T, search string, page, pageSize int32, name func(T) string) listing.Page[T] {
	if page == 0 {
		filtered := listing.Filter(items, search, name)
		return listing.Paginate(filtered, 1, max(len(filtered), 1))
	}
	return listing.Query(items, listing.Params{
		Search:   search,
		Page:     int(page),
		PageSize: int(pageSize),
	}, name)
}

// toConnectError maps service error kinds to Connect codes.
func toConnectError(err error) error {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return err
	}
	code := connect.CodeInternal
	switch groups.KindOf(err) {
	case groups.KindNotFound:
		code = connect.CodeNotFound
	case groups.KindInvalidArgument:
		code = connect.CodeInvalidArgument
	case groups.KindConflict:
		code = connect.CodeAlreadyExists
	case groups.KindUnavailable:
		code = connect.CodeUnavailable
	}
	return connect.NewError(code, err)
}

func requireID(field, value string) error {
	if value == "" {
		return connect.NewError(connect.CodeInvalidArgument, errors.New(field+" required"))
	}
	return nil
}
