package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/api"
	"github.com/mmynk/splitledger/internal/api/apiconnect"
	"github.com/mmynk/splitledger/internal/ledger"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// GroupStore is the storage the group service needs.
type GroupStore interface {
	storage.UserStore
	storage.GroupStore
}

// GroupService implements the Connect GroupService.
type GroupService struct {
	store  GroupStore
	logger *slog.Logger
}

var _ apiconnect.GroupServiceHandler = (*GroupService)(nil)

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store GroupStore, logger *slog.Logger) *GroupService {
	return &GroupService{store: store, logger: logger}
}

// CreateGroup creates a new group. Every member must be an existing user.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	s.logger.InfoContext(ctx, "CreateGroup request received",
		"name", req.Msg.Name,
		"members_count", len(req.Msg.Members),
	)

	if err := validateRequest(req.Msg); err != nil {
		return nil, toConnectError(err)
	}

	members := dedupe(req.Msg.Members)
	users, err := s.requireUsers(ctx, members)
	if err != nil {
		s.logger.WarnContext(ctx, "CreateGroup rejected", "error", err)
		return nil, toConnectError(err)
	}

	group := &models.Group{
		Name:    strings.TrimSpace(req.Msg.Name),
		Members: members,
	}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		s.logger.ErrorContext(ctx, "CreateGroup failed", "error", err)
		return nil, toConnectError(err)
	}

	s.logger.InfoContext(ctx, "Group created", "group_id", group.ID)
	return connect.NewResponse(&api.CreateGroupResponse{Group: toAPIGroup(group, users)}), nil
}

// GetGroup retrieves a group by ID.
func (s *GroupService) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, toConnectError(err)
	}

	group, users, err := s.loadGroup(ctx, req.Msg.GroupID)
	if err != nil {
		s.logger.ErrorContext(ctx, "GetGroup failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.GetGroupResponse{Group: toAPIGroup(group, users)}), nil
}

// ListGroups retrieves all groups with member names filled in.
func (s *GroupService) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	groups, err := s.store.ListGroups(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "ListGroups failed", "error", err)
		return nil, toConnectError(err)
	}

	var ids []string
	for _, group := range groups {
		ids = append(ids, group.Members...)
	}
	users, err := s.store.GetUsersByIDs(ctx, dedupe(ids))
	if err != nil {
		s.logger.ErrorContext(ctx, "ListGroups failed to resolve members", "error", err)
		return nil, toConnectError(err)
	}

	out := make([]*api.Group, len(groups))
	for i, group := range groups {
		out[i] = toAPIGroup(group, users)
	}

	s.logger.DebugContext(ctx, "ListGroups successful", "count", len(out))
	return connect.NewResponse(&api.ListGroupsResponse{Groups: out}), nil
}

// ListMembers returns a group's members in joining order.
func (s *GroupService) ListMembers(ctx context.Context, req *connect.Request[api.ListMembersRequest]) (*connect.Response[api.ListMembersResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, toConnectError(err)
	}

	group, users, err := s.loadGroup(ctx, req.Msg.GroupID)
	if err != nil {
		s.logger.ErrorContext(ctx, "ListMembers failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.ListMembersResponse{Members: toAPIGroup(group, users).Members}), nil
}

// AddMembers adds existing users to a group. Users already in it are ignored.
func (s *GroupService) AddMembers(ctx context.Context, req *connect.Request[api.AddMembersRequest]) (*connect.Response[api.AddMembersResponse], error) {
	s.logger.InfoContext(ctx, "AddMembers request received",
		"group_id", req.Msg.GroupID,
		"users_count", len(req.Msg.UserIDs),
	)

	if err := validateRequest(req.Msg); err != nil {
		return nil, toConnectError(err)
	}

	userIDs := dedupe(req.Msg.UserIDs)
	if _, err := s.requireUsers(ctx, userIDs); err != nil {
		s.logger.WarnContext(ctx, "AddMembers rejected", "group_id", req.Msg.GroupID, "error", err)
		return nil, toConnectError(err)
	}
	if err := s.store.AddGroupMembers(ctx, req.Msg.GroupID, userIDs); err != nil {
		s.logger.ErrorContext(ctx, "AddMembers failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, toConnectError(err)
	}

	group, users, err := s.loadGroup(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, toConnectError(err)
	}

	s.logger.InfoContext(ctx, "Group members added", "group_id", group.ID, "members_count", len(group.Members))
	return connect.NewResponse(&api.AddMembersResponse{Group: toAPIGroup(group, users)}), nil
}

// RenameGroup changes a group's display name.
func (s *GroupService) RenameGroup(ctx context.Context, req *connect.Request[api.RenameGroupRequest]) (*connect.Response[api.RenameGroupResponse], error) {
	s.logger.InfoContext(ctx, "RenameGroup request received", "group_id", req.Msg.GroupID, "name", req.Msg.Name)

	if err := validateRequest(req.Msg); err != nil {
		return nil, toConnectError(err)
	}

	if err := s.store.RenameGroup(ctx, req.Msg.GroupID, strings.TrimSpace(req.Msg.Name)); err != nil {
		s.logger.ErrorContext(ctx, "RenameGroup failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, toConnectError(err)
	}

	group, users, err := s.loadGroup(ctx, req.Msg.GroupID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to fetch renamed group", "group_id", req.Msg.GroupID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.RenameGroupResponse{Group: toAPIGroup(group, users)}), nil
}

// DeleteGroup deletes a group together with all of its expenses.
func (s *GroupService) DeleteGroup(ctx context.Context, req *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error) {
	s.logger.InfoContext(ctx, "DeleteGroup request received", "group_id", req.Msg.GroupID)

	if err := validateRequest(req.Msg); err != nil {
		return nil, toConnectError(err)
	}

	if err := s.store.DeleteGroup(ctx, req.Msg.GroupID); err != nil {
		s.logger.ErrorContext(ctx, "DeleteGroup failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, toConnectError(err)
	}

	s.logger.InfoContext(ctx, "Group deleted", "group_id", req.Msg.GroupID)
	return connect.NewResponse(&api.DeleteGroupResponse{}), nil
}

func (s *GroupService) loadGroup(ctx context.Context, groupID string) (*models.Group, map[string]*models.User, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, nil, err
	}
	users, err := s.store.GetUsersByIDs(ctx, group.Members)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve members: %w", err)
	}
	return group, users, nil
}

// requireUsers fetches ids, failing with ErrUnknownMember if any is missing.
func (s *GroupService) requireUsers(ctx context.Context, ids []string) (map[string]*models.User, error) {
	users, err := s.store.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to look up users: %w", err)
	}
	var missing []string
	for _, id := range ids {
		if _, ok := users[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: no such user %s", ledger.ErrUnknownMember, strings.Join(missing, ", "))
	}
	return users, nil
}

// dedupe drops repeated ids, keeping the first occurrence of each.
func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
