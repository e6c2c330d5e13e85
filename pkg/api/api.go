// Package api defines the wire messages of the groupadmin.v1 Connect services.
package api

import "time"

// User is the wire form of a user.
type User struct {
	Id          string `json:"id"`
	Name        string `json:"name"`
	Initials    string `json:"initials"`
	Avatar      string `json:"avatar,omitempty"`
	Role        string `json:"role,omitempty"`
	DisplayRole string `json:"display_role"`
	AvatarColor string `json:"avatar_color"`
}

// Group is the wire form of a group.
type Group struct {
	Id        string    `json:"id"`
	Name      string    `json:"name"`
	Picture   string    `json:"picture,omitempty"`
	Managers  []*User   `json:"managers"`
	Members   []*User   `json:"members"`
	CreatedAt time.Time `json:"created_at"`
}

// PageInfo describes the window returned by list calls.
type PageInfo struct {
	Page       int32  `json:"page"`
	PageSize   int32  `json:"page_size"`
	TotalCount int32  `json:"total_count"`
	TotalPages int32  `json:"total_pages"`
	Summary    string `json:"summary"`
}

// ListUsersRequest filters and pages users. Page 0 returns every match.
type ListUsersRequest struct {
	Search   string `json:"search,omitempty"`
	Page     int32  `json:"page,omitempty"`
	PageSize int32  `json:"page_size,omitempty"`
}

type ListUsersResponse struct {
	Users    []*User   `json:"users"`
	PageInfo *PageInfo `json:"page_info"`
}

// ListGroupsRequest filters and pages groups. Page 0 returns every match.
type ListGroupsRequest struct {
	Search   string `json:"search,omitempty"`
	Page     int32  `json:"page,omitempty"`
	PageSize int32  `json:"page_size,omitempty"`
}

type ListGroupsResponse struct {
	Groups   []*Group  `json:"groups"`
	PageInfo *PageInfo `json:"page_info"`
}

type GetGroupRequest struct {
	GroupId string `json:"group_id"`
}

type GetGroupResponse struct {
	Group *Group `json:"group"`
}

// CreateGroupRequest creates a group. A null manager_ids selects the default
// manager; member_ids are added after creation.
type CreateGroupRequest struct {
	Name       string   `json:"name"`
	Picture    string   `json:"picture,omitempty"`
	ManagerIds []string `json:"manager_ids"`
	MemberIds  []string `json:"member_ids,omitempty"`
}

type CreateGroupResponse struct {
	GroupId string `json:"group_id"`
}

type AddUserToGroupRequest struct {
	GroupId string `json:"group_id"`
	UserId  string `json:"user_id"`
}

type AddUserToGroupResponse struct {
	Added bool `json:"added"`
}

// UpdateGroupRequest changes the fields that are present.
type UpdateGroupRequest struct {
	GroupId string  `json:"group_id"`
	Name    *string `json:"name,omitempty"`
	Picture *string `json:"picture,omitempty"`
}

type UpdateGroupResponse struct {
	Group *Group `json:"group"`
}

type UpdateGroupMembersRequest struct {
	GroupId   string   `json:"group_id"`
	MemberIds []string `json:"member_ids"`
}

type UpdateGroupMembersResponse struct {
	Group *Group `json:"group"`
}

type DeleteGroupRequest struct {
	GroupId string `json:"group_id"`
}

type DeleteGroupResponse struct{}
