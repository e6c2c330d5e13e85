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

// Ensure GroupService implements the Connect handler interface.
var _ apiconnect.GroupServiceHandler = (*GroupService)(nil)

// GroupService implements the Connect GroupService
type GroupService struct {
	apiconnect.UnimplementedGroupServiceHandler
	groups *groups.Service
}

// NewGroupService creates a new GroupService over the group service.
func NewGroupService(svc *groups.Service) *GroupService {
	return &GroupService{groups: svc}
}

// ListGroups returns groups matching the search, optionally paged.
func (s *GroupService) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	slog.Info("ListGroups request received",
		"search", req.Msg.Search,
		"page", req.Msg.Page,
		"page_size", req.Msg.PageSize,
	)

	all, err := s.groups.FetchGroups(ctx)
	if err != nil {
		slog.Error("ListGroups failed", "error", err)
		return nil, toConnectError(err)
	}

	page := window(all, req.Msg.Search, req.Msg.Page, req.Msg.PageSize, func(g models.Group) string { return g.Name })

	protoGroups := make([]*api.Group, len(page.Items))
	for i, group := range page.Items {
		protoGroups[i] = toProtoGroup(group)
	}

	slog.Info("ListGroups successful", "count", len(protoGroups), "total", page.Total)

	return connect.NewResponse(&api.ListGroupsResponse{
		Groups:   protoGroups,
		PageInfo: toPageInfo(page),
	}), nil
}

// GetGroup retrieves a group by ID.
func (s *GroupService) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	slog.Info("GetGroup request received", "group_id", req.Msg.GroupId)

	if err := requireID("group_id", req.Msg.GroupId); err != nil {
		return nil, err
	}

	group, err := s.groups.GetGroup(ctx, req.Msg.GroupId)
	if err != nil {
		slog.Error("GetGroup failed", "group_id", req.Msg.GroupId, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("GetGroup successful", "group_id", group.ID, "name", group.Name)

	return connect.NewResponse(&api.GetGroupResponse{Group: toProtoGroup(group)}), nil
}

// CreateGroup creates a new group and adds any requested members.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	slog.Info("CreateGroup request received",
		"name", req.Msg.Name,
		"managers_count", len(req.Msg.ManagerIds),
		"members_count", len(req.Msg.MemberIds),
	)

	params := groups.CreateGroupParams{
		Name:       req.Msg.Name,
		Picture:    req.Msg.Picture,
		ManagerIDs: req.Msg.ManagerIds,
	}

	var (
		id  string
		err error
	)
	if len(req.Msg.MemberIds) > 0 {
		id, err = s.groups.CreateGroupWithMembers(ctx, params, req.Msg.MemberIds)
	} else {
		id, err = s.groups.CreateGroup(ctx, params)
	}
	if err != nil {
		slog.Error("CreateGroup failed", "name", req.Msg.Name, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Group created", "group_id", id)

	return connect.NewResponse(&api.CreateGroupResponse{GroupId: id}), nil
}

// AddUserToGroup adds a single member. Adding an existing member is not an error.
func (s *GroupService) AddUserToGroup(ctx context.Context, req *connect.Request[api.AddUserToGroupRequest]) (*connect.Response[api.AddUserToGroupResponse], error) {
	slog.Info("AddUserToGroup request received", "group_id", req.Msg.GroupId, "user_id", req.Msg.UserId)

	if err := requireID("group_id", req.Msg.GroupId); err != nil {
		return nil, err
	}
	if err := requireID("user_id", req.Msg.UserId); err != nil {
		return nil, err
	}

	added, err := s.groups.AddUserToGroup(ctx, req.Msg.GroupId, req.Msg.UserId)
	if err != nil {
		slog.Error("AddUserToGroup failed", "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.AddUserToGroupResponse{Added: added}), nil
}

// UpdateGroup updates the name and/or picture of an existing group.
func (s *GroupService) UpdateGroup(ctx context.Context, req *connect.Request[api.UpdateGroupRequest]) (*connect.Response[api.UpdateGroupResponse], error) {
	slog.Info("UpdateGroup request received",
		"group_id", req.Msg.GroupId,
		"has_name", req.Msg.Name != nil,
		"has_picture", req.Msg.Picture != nil,
	)

	if err := requireID("group_id", req.Msg.GroupId); err != nil {
		return nil, err
	}

	group, err := s.groups.UpdateGroup(ctx, req.Msg.GroupId, groups.GroupUpdate{
		Name:    req.Msg.Name,
		Picture: req.Msg.Picture,
	})
	if err != nil {
		slog.Error("UpdateGroup failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Group updated", "group_id", group.ID)

	return connect.NewResponse(&api.UpdateGroupResponse{Group: toProtoGroup(group)}), nil
}

// UpdateGroupMembers replaces a group's members.
func (s *GroupService) UpdateGroupMembers(ctx context.Context, req *connect.Request[api.UpdateGroupMembersRequest]) (*connect.Response[api.UpdateGroupMembersResponse], error) {
	slog.Info("UpdateGroupMembers request received",
		"group_id", req.Msg.GroupId,
		"members_count", len(req.Msg.MemberIds),
	)

	if err := requireID("group_id", req.Msg.GroupId); err != nil {
		return nil, err
	}

	group, err := s.groups.UpdateGroupMembers(ctx, req.Msg.GroupId, req.Msg.MemberIds)
	if err != nil {
		slog.Error("UpdateGroupMembers failed", "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.UpdateGroupMembersResponse{Group: toProtoGroup(group)}), nil
}

// DeleteGroup removes a group by ID.
func (s *GroupService) DeleteGroup(ctx context.Context, req *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error) {
	slog.Info("DeleteGroup request received", "group_id", req.Msg.GroupId)

	if err := requireID("group_id", req.Msg.GroupId); err != nil {
		return nil, err
	}

	if err := s.groups.DeleteGroup(ctx, req.Msg.GroupId); err != nil {
		slog.Error("DeleteGroup failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Group deleted", "group_id", req.Msg.GroupId)

	return connect.NewResponse(&api.DeleteGroupResponse{}), nil
}
