package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/groupadmin/internal/groups"
	"github.com/mmynk/groupadmin/internal/models"
	"github.com/mmynk/groupadmin/pkg/api"
	"github.com/mmynk/groupadmin/pkg/api/apiconnect"
)

// Ensure UserService implements the Connect handler interface.
var _ apiconnect.UserServiceHandler = (*UserService)(nil)

// UserService implements the Connect UserService.
type UserService struct {
	groups *groups.Service
}

// NewUserService creates a new UserService over the group service.
func NewUserService(svc *groups.Service) *UserService {
	return &UserService{groups: svc}
}

// ListUsers returns users matching the search, optionally paged.
func (s *UserService) ListUsers(ctx context.Context, req *connect.Request[api.ListUsersRequest]) (*connect.Response[api.ListUsersResponse], error) {
	slog.Info("ListUsers request received",
		"search", req.Msg.Search,
		"page", req.Msg.Page,
		"page_size", req.Msg.PageSize,
	)

	users, err := s.groups.FetchUsers(ctx)
	if err != nil {
		slog.Error("ListUsers failed", "error", err)
		return nil, toConnectError(err)
	}

	page := window(users, req.Msg.Search, req.Msg.Page, req.Msg.PageSize, func(u models.User) string { return u.Name })

	slog.Info("ListUsers successful", "count", len(page.Items), "total", page.Total)

	return connect.NewResponse(&api.ListUsersResponse{
		Users:    toProtoUsers(page.Items),
		PageInfo: toPageInfo(page),
	}), nil
}
