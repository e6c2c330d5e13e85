package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/groupadmin/internal/groups"
	"github.com/mmynk/groupadmin/internal/middleware"
	"github.com/mmynk/groupadmin/internal/storage/memory"
	"github.com/mmynk/groupadmin/internal/storage/seed"
	"github.com/mmynk/groupadmin/pkg/api"
	"github.com/mmynk/groupadmin/pkg/api/apiconnect"
)

// setupTestServer creates a test server with both UserService and GroupService
// over a seeded in-memory store.
func setupTestServer(t *testing.T) (apiconnect.GroupServiceClient, apiconnect.UserServiceClient) {
	t.Helper()

	store := memory.New()
	if err := seed.Load(context.Background(), store); err != nil {
		t.Fatalf("failed to seed store: %v", err)
	}
	svc := groups.New(store, groups.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))

	interceptors := connect.WithInterceptors(middleware.LoggingInterceptor())
	userPath, userHandler := apiconnect.NewUserServiceHandler(NewUserService(svc), interceptors)
	groupPath, groupHandler := apiconnect.NewGroupServiceHandler(NewGroupService(svc), interceptors)

	mux := http.NewServeMux()
	mux.Handle(userPath, userHandler)
	mux.Handle(groupPath, groupHandler)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return apiconnect.NewGroupServiceClient(http.DefaultClient, server.URL),
		apiconnect.NewUserServiceClient(http.DefaultClient, server.URL)
}

func strPtr(s string) *string { return &s }

func assertCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		t.Fatalf("expected connect.Error, got %T", err)
	}
	if connectErr.Code() != want {
		t.Errorf("expected %v, got %v", want, connectErr.Code())
	}
}

func memberIDs(g *api.Group) []string {
	ids := make([]string, len(g.Members))
	for i, m := range g.Members {
		ids[i] = m.Id
	}
	return ids
}

func TestListUsers(t *testing.T) {
	_, client := setupTestServer(t)

	resp, err := client.ListUsers(context.Background(), connect.NewRequest(&api.ListUsersRequest{}))
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if len(resp.Msg.Users) != 8 {
		t.Fatalf("expected 8 users, got %d", len(resp.Msg.Users))
	}

	first := resp.Msg.Users[0]
	if first.DisplayRole != "Group Manager" || first.AvatarColor != "pink" {
		t.Errorf("unexpected first user %+v", first)
	}
	if resp.Msg.Users[1].DisplayRole != "Member" {
		t.Errorf("expected default role, got '%s'", resp.Msg.Users[1].DisplayRole)
	}
}

func TestListUsers_Search(t *testing.T) {
	_, client := setupTestServer(t)

	resp, err := client.ListUsers(context.Background(), connect.NewRequest(&api.ListUsersRequest{
		Search: "jo",
	}))
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	// John Doe, Alex Johnson
	if len(resp.Msg.Users) != 2 {
		t.Errorf("expected 2 users, got %d", len(resp.Msg.Users))
	}
}

func TestListGroups_Paged(t *testing.T) {
	client, _ := setupTestServer(t)

	resp, err := client.ListGroups(context.Background(), connect.NewRequest(&api.ListGroupsRequest{
		Page:     1,
		PageSize: 10,
	}))
	if err != nil {
		t.Fatalf("ListGroups failed: %v", err)
	}
	if len(resp.Msg.Groups) != 4 {
		t.Errorf("expected 4 groups, got %d", len(resp.Msg.Groups))
	}
	info := resp.Msg.PageInfo
	if info.TotalPages != 1 || info.TotalCount != 4 || info.Summary != "1-4 of 4" {
		t.Errorf("unexpected page info %+v", info)
	}

	resp, err = client.ListGroups(context.Background(), connect.NewRequest(&api.ListGroupsRequest{
		Page:     2,
		PageSize: 3,
	}))
	if err != nil {
		t.Fatalf("ListGroups failed: %v", err)
	}
	if len(resp.Msg.Groups) != 1 || resp.Msg.Groups[0].Name != "Group 4" {
		t.Errorf("expected only Group 4 on page 2, got %d groups", len(resp.Msg.Groups))
	}
}

func TestListGroups_SearchWithoutPaging(t *testing.T) {
	client, _ := setupTestServer(t)

	resp, err := client.ListGroups(context.Background(), connect.NewRequest(&api.ListGroupsRequest{
		Search: "GROUP 3",
	}))
	if err != nil {
		t.Fatalf("ListGroups failed: %v", err)
	}
	if len(resp.Msg.Groups) != 1 || resp.Msg.Groups[0].Id != "3" {
		t.Errorf("expected only group 3, got %d groups", len(resp.Msg.Groups))
	}
}

func TestCreateGroup(t *testing.T) {
	client, _ := setupTestServer(t)
	ctx := context.Background()

	resp, err := client.CreateGroup(ctx, connect.NewRequest(&api.CreateGroupRequest{
		Name:      "Eng",
		MemberIds: []string{"3", "4"},
	}))
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	if resp.Msg.GroupId == "" {
		t.Fatal("expected non-empty group ID")
	}

	getResp, err := client.GetGroup(ctx, connect.NewRequest(&api.GetGroupRequest{GroupId: resp.Msg.GroupId}))
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}
	g := getResp.Msg.Group
	if g.Name != "Eng" {
		t.Errorf("name: expected 'Eng', got '%s'", g.Name)
	}
	if len(g.Managers) != 1 || g.Managers[0].Id != groups.DefaultManagerID {
		t.Errorf("expected default manager, got %+v", g.Managers)
	}
	if len(g.Members) != 3 {
		t.Errorf("members: expected 3, got %v", memberIDs(g))
	}
	if g.CreatedAt.IsZero() {
		t.Error("expected non-zero CreatedAt")
	}
}

func TestCreateGroup_UnknownMemberIsDropped(t *testing.T) {
	client, _ := setupTestServer(t)
	ctx := context.Background()

	resp, err := client.CreateGroup(ctx, connect.NewRequest(&api.CreateGroupRequest{
		Name:      "Eng",
		MemberIds: []string{"2", "ghost"},
	}))
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	listResp, err := client.ListGroups(ctx, connect.NewRequest(&api.ListGroupsRequest{}))
	if err != nil {
		t.Fatalf("ListGroups failed: %v", err)
	}
	var created []*api.Group
	for _, g := range listResp.Msg.Groups {
		if g.Name == "Eng" {
			created = append(created, g)
		}
	}
	if len(created) != 1 || created[0].Id != resp.Msg.GroupId {
		t.Fatalf("expected exactly one stored group %s, got %d", resp.Msg.GroupId, len(created))
	}
	got := memberIDs(created[0])
	if len(got) != 2 || got[0] != "1" || got[1] != "2" {
		t.Errorf("expected members [1 2], got %v", got)
	}
}

func TestCreateGroup_ExplicitNoManagers(t *testing.T) {
	client, _ := setupTestServer(t)
	ctx := context.Background()

	resp, err := client.CreateGroup(ctx, connect.NewRequest(&api.CreateGroupRequest{
		Name:       "Unmanaged",
		ManagerIds: []string{},
	}))
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	getResp, err := client.GetGroup(ctx, connect.NewRequest(&api.GetGroupRequest{GroupId: resp.Msg.GroupId}))
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}
	if len(getResp.Msg.Group.Managers) != 0 {
		t.Errorf("expected no managers, got %d", len(getResp.Msg.Group.Managers))
	}
}

func TestCreateGroup_EmptyName(t *testing.T) {
	client, _ := setupTestServer(t)

	_, err := client.CreateGroup(context.Background(), connect.NewRequest(&api.CreateGroupRequest{Name: "  "}))
	assertCode(t, err, connect.CodeInvalidArgument)
}

func TestGetGroup_NotFound(t *testing.T) {
	client, _ := setupTestServer(t)

	_, err := client.GetGroup(context.Background(), connect.NewRequest(&api.GetGroupRequest{
		GroupId: "nonexistent-id",
	}))
	assertCode(t, err, connect.CodeNotFound)
}

func TestGetGroup_MissingID(t *testing.T) {
	client, _ := setupTestServer(t)

	_, err := client.GetGroup(context.Background(), connect.NewRequest(&api.GetGroupRequest{}))
	assertCode(t, err, connect.CodeInvalidArgument)
}

func TestAddUserToGroup(t *testing.T) {
	client, _ := setupTestServer(t)
	ctx := context.Background()

	req := &api.AddUserToGroupRequest{GroupId: "2", UserId: "8"}
	resp, err := client.AddUserToGroup(ctx, connect.NewRequest(req))
	if err != nil {
		t.Fatalf("AddUserToGroup failed: %v", err)
	}
	if !resp.Msg.Added {
		t.Error("expected user to be added")
	}

	resp, err = client.AddUserToGroup(ctx, connect.NewRequest(req))
	if err != nil {
		t.Fatalf("AddUserToGroup failed: %v", err)
	}
	if resp.Msg.Added {
		t.Error("expected repeat add to be a no-op")
	}

	_, err = client.AddUserToGroup(ctx, connect.NewRequest(&api.AddUserToGroupRequest{GroupId: "2", UserId: "nobody"}))
	assertCode(t, err, connect.CodeNotFound)
}

func TestUpdateGroup(t *testing.T) {
	client, _ := setupTestServer(t)
	ctx := context.Background()

	resp, err := client.UpdateGroup(ctx, connect.NewRequest(&api.UpdateGroupRequest{
		GroupId: "1",
		Name:    strPtr("Updated Name"),
	}))
	if err != nil {
		t.Fatalf("UpdateGroup failed: %v", err)
	}
	if resp.Msg.Group.Name != "Updated Name" {
		t.Errorf("name not updated: expected 'Updated Name', got '%s'", resp.Msg.Group.Name)
	}
	if len(resp.Msg.Group.Members) != 3 {
		t.Errorf("members changed: %v", memberIDs(resp.Msg.Group))
	}

	_, err = client.UpdateGroup(ctx, connect.NewRequest(&api.UpdateGroupRequest{
		GroupId: "1",
		Name:    strPtr(""),
	}))
	assertCode(t, err, connect.CodeInvalidArgument)

	getResp, err := client.GetGroup(ctx, connect.NewRequest(&api.GetGroupRequest{GroupId: "1"}))
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}
	if getResp.Msg.Group.Name != "Updated Name" {
		t.Errorf("persisted name mismatch: expected 'Updated Name', got '%s'", getResp.Msg.Group.Name)
	}
}

func TestUpdateGroup_NotFound(t *testing.T) {
	client, _ := setupTestServer(t)

	_, err := client.UpdateGroup(context.Background(), connect.NewRequest(&api.UpdateGroupRequest{
		GroupId: "nonexistent-id",
		Name:    strPtr("Test"),
	}))
	assertCode(t, err, connect.CodeNotFound)
}

func TestUpdateGroupMembers(t *testing.T) {
	client, _ := setupTestServer(t)

	resp, err := client.UpdateGroupMembers(context.Background(), connect.NewRequest(&api.UpdateGroupMembersRequest{
		GroupId:   "4",
		MemberIds: []string{"7", "2", "missing"},
	}))
	if err != nil {
		t.Fatalf("UpdateGroupMembers failed: %v", err)
	}
	got := memberIDs(resp.Msg.Group)
	if len(got) != 2 || got[0] != "2" || got[1] != "7" {
		t.Errorf("expected members [2 7], got %v", got)
	}
}

func TestDeleteGroup(t *testing.T) {
	client, _ := setupTestServer(t)
	ctx := context.Background()

	_, err := client.DeleteGroup(ctx, connect.NewRequest(&api.DeleteGroupRequest{GroupId: "3"}))
	if err != nil {
		t.Fatalf("DeleteGroup failed: %v", err)
	}

	_, err = client.GetGroup(ctx, connect.NewRequest(&api.GetGroupRequest{GroupId: "3"}))
	assertCode(t, err, connect.CodeNotFound)

	_, err = client.DeleteGroup(ctx, connect.NewRequest(&api.DeleteGroupRequest{GroupId: "3"}))
	assertCode(t, err, connect.CodeNotFound)

	listResp, err := client.ListGroups(ctx, connect.NewRequest(&api.ListGroupsRequest{}))
	if err != nil {
		t.Fatalf("ListGroups failed: %v", err)
	}
	if len(listResp.Msg.Groups) != 3 {
		t.Errorf("expected 3 groups, got %d", len(listResp.Msg.Groups))
	}
}

func TestToConnectError(t *testing.T) {
	tests := []struct {
		kind groups.Kind
		want connect.Code
	}{
		{groups.KindNotFound, connect.CodeNotFound},
		{groups.KindInvalidArgument, connect.CodeInvalidArgument},
		{groups.KindConflict, connect.CodeAlreadyExists},
		{groups.KindUnavailable, connect.CodeUnavailable},
		{groups.KindInternal, connect.CodeInternal},
	}
	for _, tt := range tests {
		err := toConnectError(&groups.Error{Kind: tt.kind, Op: "op", Err: errors.New("boom")})
		if got := connect.CodeOf(err); got != tt.want {
			t.Errorf("kind %v: expected %v, got %v", tt.kind, tt.want, got)
		}
	}
}
