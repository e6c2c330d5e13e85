// Package apiconnect wires the groupadmin.v1 services to Connect handlers and clients.
package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/groupadmin/pkg/api"
)

const (
	// UserServiceName is the fully-qualified name of the UserService service.
	UserServiceName = "groupadmin.v1.UserService"
	// GroupServiceName is the fully-qualified name of the GroupService service.
	GroupServiceName = "groupadmin.v1.GroupService"
)

// Procedure paths, used both for routing and for interceptor labels.
const (
	UserServiceListUsersProcedure           = "/" + UserServiceName + "/ListUsers"
	GroupServiceListGroupsProcedure         = "/" + GroupServiceName + "/ListGroups"
	GroupServiceGetGroupProcedure           = "/" + GroupServiceName + "/GetGroup"
	GroupServiceCreateGroupProcedure        = "/" + GroupServiceName + "/CreateGroup"
	GroupServiceAddUserToGroupProcedure     = "/" + GroupServiceName + "/AddUserToGroup"
	GroupServiceUpdateGroupProcedure        = "/" + GroupServiceName + "/UpdateGroup"
	GroupServiceUpdateGroupMembersProcedure = "/" + GroupServiceName + "/UpdateGroupMembers"
	GroupServiceDeleteGroupProcedure        = "/" + GroupServiceName + "/DeleteGroup"
)

// UserServiceHandler is implemented by the user service.
type UserServiceHandler interface {
	ListUsers(context.Context, *connect.Request[api.ListUsersRequest]) (*connect.Response[api.ListUsersResponse], error)
}

// GroupServiceHandler is implemented by the group service.
type GroupServiceHandler interface {
	ListGroups(context.Context, *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error)
	GetGroup(context.Context, *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error)
	CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error)
	AddUserToGroup(context.Context, *connect.Request[api.AddUserToGroupRequest]) (*connect.Response[api.AddUserToGroupResponse], error)
	UpdateGroup(context.Context, *connect.Request[api.UpdateGroupRequest]) (*connect.Response[api.UpdateGroupResponse], error)
	UpdateGroupMembers(context.Context, *connect.Request[api.UpdateGroupMembersRequest]) (*connect.Response[api.UpdateGroupMembersResponse], error)
	DeleteGroup(context.Context, *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error)
}

// NewUserServiceHandler builds an HTTP handler for the UserService and
// returns the path to mount it on.
func NewUserServiceHandler(svc UserServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	routes := map[string]http.Handler{
		UserServiceListUsersProcedure: connect.NewUnaryHandler(UserServiceListUsersProcedure, svc.ListUsers, opts...),
	}
	return "/" + UserServiceName + "/", router(routes)
}

// NewGroupServiceHandler builds an HTTP handler for the GroupService and
// returns the path to mount it on.
func NewGroupServiceHandler(svc GroupServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	routes := map[string]http.Handler{
		GroupServiceListGroupsProcedure:         connect.NewUnaryHandler(GroupServiceListGroupsProcedure, svc.ListGroups, opts...),
		GroupServiceGetGroupProcedure:           connect.NewUnaryHandler(GroupServiceGetGroupProcedure, svc.GetGroup, opts...),
		GroupServiceCreateGroupProcedure:        connect.NewUnaryHandler(GroupServiceCreateGroupProcedure, svc.CreateGroup, opts...),
		GroupServiceAddUserToGroupProcedure:     connect.NewUnaryHandler(GroupServiceAddUserToGroupProcedure, svc.AddUserToGroup, opts...),
		GroupServiceUpdateGroupProcedure:        connect.NewUnaryHandler(GroupServiceUpdateGroupProcedure, svc.UpdateGroup, opts...),
		GroupServiceUpdateGroupMembersProcedure: connect.NewUnaryHandler(GroupServiceUpdateGroupMembersProcedure, svc.UpdateGroupMembers, opts...),
		GroupServiceDeleteGroupProcedure:        connect.NewUnaryHandler(GroupServiceDeleteGroupProcedure, svc.DeleteGroup, opts...),
	}
	return "/" + GroupServiceName + "/", router(routes)
}

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)
}

func router(routes map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		h.ServeHTTP(w, r)
	})
}

// UserServiceClient is a client for the UserService.
type UserServiceClient interface {
	ListUsers(context.Context, *connect.Request[api.ListUsersRequest]) (*connect.Response[api.ListUsersResponse], error)
}

// NewUserServiceClient constructs a client for the UserService at baseURL.
func NewUserServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) UserServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &userServiceClient{
		listUsers: connect.NewClient[api.ListUsersRequest, api.ListUsersResponse](httpClient, baseURL+UserServiceListUsersProcedure, opts...),
	}
}

type userServiceClient struct {
	listUsers *connect.Client[api.ListUsersRequest, api.ListUsersResponse]
}

func (c *userServiceClient) ListUsers(ctx context.Context, req *connect.Request[api.ListUsersRequest]) (*connect.Response[api.ListUsersResponse], error) {
	return c.listUsers.CallUnary(ctx, req)
}

// GroupServiceClient is a client for the GroupService.
type GroupServiceClient interface {
	GroupServiceHandler
}

// NewGroupServiceClient constructs a client for the GroupService at baseURL.
func NewGroupServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) GroupServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &groupServiceClient{
		listGroups:         connect.NewClient[api.ListGroupsRequest, api.ListGroupsResponse](httpClient, baseURL+GroupServiceListGroupsProcedure, opts...),
		getGroup:           connect.NewClient[api.GetGroupRequest, api.GetGroupResponse](httpClient, baseURL+GroupServiceGetGroupProcedure, opts...),
		createGroup:        connect.NewClient[api.CreateGroupRequest, api.CreateGroupResponse](httpClient, baseURL+GroupServiceCreateGroupProcedure, opts...),
		addUserToGroup:     connect.NewClient[api.AddUserToGroupRequest, api.AddUserToGroupResponse](httpClient, baseURL+GroupServiceAddUserToGroupProcedure, opts...),
		updateGroup:        connect.NewClient[api.UpdateGroupRequest, api.UpdateGroupResponse](httpClient, baseURL+GroupServiceUpdateGroupProcedure, opts...),
		updateGroupMembers: connect.NewClient[api.UpdateGroupMembersRequest, api.UpdateGroupMembersResponse](httpClient, baseURL+GroupServiceUpdateGroupMembersProcedure, opts...),
		deleteGroup:        connect.NewClient[api.DeleteGroupRequest, api.DeleteGroupResponse](httpClient, baseURL+GroupServiceDeleteGroupProcedure, opts...),
	}
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(jsonCodec{})}, opts...)
}

type groupServiceClient struct {
	listGroups         *connect.Client[api.ListGroupsRequest, api.ListGroupsResponse]
	getGroup           *connect.Client[api.GetGroupRequest, api.GetGroupResponse]
	createGroup        *connect.Client[api.CreateGroupRequest, api.CreateGroupResponse]
	addUserToGroup     *connect.Client[api.AddUserToGroupRequest, api.AddUserToGroupResponse]
	updateGroup        *connect.Client[api.UpdateGroupRequest, api.UpdateGroupResponse]
	updateGroupMembers *connect.Client[api.UpdateGroupMembersRequest, api.UpdateGroupMembersResponse]
	deleteGroup        *connect.Client[api.DeleteGroupRequest, api.DeleteGroupResponse]
}

func (c *groupServiceClient) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	return c.listGroups.CallUnary(ctx, req)
}

func (c *groupServiceClient) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	return c.getGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	return c.createGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) AddUserToGroup(ctx context.Context, req *connect.Request[api.AddUserToGroupRequest]) (*connect.Response[api.AddUserToGroupResponse], error) {
	return c.addUserToGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) UpdateGroup(ctx context.Context, req *connect.Request[api.UpdateGroupRequest]) (*connect.Response[api.UpdateGroupResponse], error) {
	return c.updateGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) UpdateGroupMembers(ctx context.Context, req *connect.Request[api.UpdateGroupMembersRequest]) (*connect.Response[api.UpdateGroupMembersResponse], error) {
	return c.updateGroupMembers.CallUnary(ctx, req)
}

func (c *groupServiceClient) DeleteGroup(ctx context.Context, req *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error) {
	return c.deleteGroup.CallUnary(ctx, req)
}

// UnimplementedGroupServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedGroupServiceHandler struct{}

var errUnimplemented = errors.New("not implemented")

func (UnimplementedGroupServiceHandler) ListGroups(context.Context, *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented)
}

func (UnimplementedGroupServiceHandler) GetGroup(context.Context, *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented)
}

func (UnimplementedGroupServiceHandler) CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented)
}

func (UnimplementedGroupServiceHandler) AddUserToGroup(context.Context, *connect.Request[api.AddUserToGroupRequest]) (*connect.Response[api.AddUserToGroupResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented)
}

func (UnimplementedGroupServiceHandler) UpdateGroup(context.Context, *connect.Request[api.UpdateGroupRequest]) (*connect.Response[api.UpdateGroupResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented)
}

func (UnimplementedGroupServiceHandler) UpdateGroupMembers(context.Context, *connect.Request[api.UpdateGroupMembersRequest]) (*connect.Response[api.UpdateGroupMembersResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented)
}

func (UnimplementedGroupServiceHandler) DeleteGroup(context.Context, *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented)
}
