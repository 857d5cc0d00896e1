package api

// Member is a group member with its display name resolved.
type Member struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
}

type Group struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Members   []*Member `json:"members"`
	CreatedAt int64     `json:"createdAt"`
}

type CreateGroupRequest struct {
	Name    string   `json:"name" validate:"required"`
	Members []string `json:"members" validate:"required,min=1,dive,required"`
}

type CreateGroupResponse struct {
	Group *Group `json:"group"`
}

type GetGroupRequest struct {
	GroupID string `json:"groupId" validate:"required"`
}

type GetGroupResponse struct {
	Group *Group `json:"group"`
}

type ListGroupsRequest struct{}

type ListGroupsResponse struct {
	Groups []*Group `json:"groups"`
}

type ListMembersRequest struct {
	GroupID string `json:"groupId" validate:"required"`
}

type ListMembersResponse struct {
	Members []*Member `json:"members"`
}

type AddMembersRequest struct {
	GroupID string   `json:"groupId" validate:"required"`
	UserIDs []string `json:"userIds" validate:"required,min=1,dive,required"`
}

type AddMembersResponse struct {
	Group *Group `json:"group"`
}

type RenameGroupRequest struct {
	GroupID string `json:"groupId" validate:"required"`
	Name    string `json:"name" validate:"required"`
}

type RenameGroupResponse struct {
	Group *Group `json:"group"`
}

type DeleteGroupRequest struct {
	GroupID string `json:"groupId" validate:"required"`
}

type DeleteGroupResponse struct{}
