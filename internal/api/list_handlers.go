package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/medialog/medialog-server/internal/domain"
	"github.com/medialog/medialog-server/internal/service"
)

func (s *Server) registerListRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "addListEntry",
		Method:      http.MethodPost,
		Path:        "/api/v1/users/{userID}/lists/{category}/entries/{itemID}",
		Summary:     "Add list entry",
		Description: "Puts a catalog item on the user's list for a category",
		Tags:        []string{"Lists"},
	}, s.handleAddListEntry)

	huma.Register(s.api, huma.Operation{
		OperationID: "getListEntry",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/{userID}/lists/{category}/entries/{itemID}",
		Summary:     "Get list entry",
		Description: "Returns one list entry",
		Tags:        []string{"Lists"},
	}, s.handleGetListEntry)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateListEntry",
		Method:      http.MethodPatch,
		Path:        "/api/v1/users/{userID}/lists/{category}/entries/{itemID}",
		Summary:     "Update list entry",
		Description: "Applies a partial update to a list entry",
		Tags:        []string{"Lists"},
	}, s.handleUpdateListEntry)

	huma.Register(s.api, huma.Operation{
		OperationID: "removeListEntry",
		Method:      http.MethodDelete,
		Path:        "/api/v1/users/{userID}/lists/{category}/entries/{itemID}",
		Summary:     "Remove list entry",
		Description: "Takes an item off the user's list",
		Tags:        []string{"Lists"},
	}, s.handleRemoveListEntry)

	huma.Register(s.api, huma.Operation{
		OperationID: "listEntries",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/{userID}/lists/{category}/entries",
		Summary:     "List entries",
		Description: "Returns all of the user's entries in a category",
		Tags:        []string{"Lists"},
	}, s.handleListEntries)
}

// === DTOs ===

// ListEntryResponse contains list entry data in API responses.
type ListEntryResponse struct {
	UserID      string    `json:"user_id" doc:"Owning user ID"`
	ItemID      string    `json:"item_id" doc:"Catalog item ID"`
	Category    string    `json:"category" doc:"Media category"`
	Status      string    `json:"status" doc:"Workflow status"`
	Rating      *float64  `json:"rating,omitempty" doc:"Rating, absent when unrated"`
	Favorite    bool      `json:"favorite" doc:"Favorite flag"`
	Comment     string    `json:"comment,omitempty" doc:"Free-form comment"`
	Redo        int       `json:"redo,omitempty" doc:"Rewatch/reread count"`
	Progress    int       `json:"progress,omitempty" doc:"Consumed units"`
	PlaytimeMin int       `json:"playtime_min,omitempty" doc:"Accumulated playtime in minutes (games)"`
	CreatedAt   time.Time `json:"created_at" doc:"Creation time"`
	UpdatedAt   time.Time `json:"updated_at" doc:"Last update time"`
}

// AddListEntryRequest is the request body for adding an entry.
type AddListEntryRequest struct {
	Status      string   `json:"status,omitempty" doc:"Initial status, defaults to the category's active status"`
	Rating      *float64 `json:"rating,omitempty" minimum:"0" maximum:"10" doc:"Initial rating"`
	Favorite    bool     `json:"favorite,omitempty" doc:"Favorite flag"`
	Comment     string   `json:"comment,omitempty" doc:"Free-form comment"`
	Progress    int      `json:"progress,omitempty" minimum:"0" doc:"Consumed units"`
	PlaytimeMin int      `json:"playtime_min,omitempty" minimum:"0" doc:"Playtime in minutes (games)"`
}

// ListEntryPathInput identifies one entry by path.
type ListEntryPathInput struct {
	UserID   string `path:"userID" doc:"User ID"`
	Category string `path:"category" doc:"Media category"`
	ItemID   string `path:"itemID" doc:"Catalog item ID"`
}

// AddListEntryInput wraps the add entry request for Huma.
type AddListEntryInput struct {
	ListEntryPathInput
	Body AddListEntryRequest
}

// ListEntryOutput wraps the entry response for Huma.
type ListEntryOutput struct {
	Body ListEntryResponse
}

// UpdateListEntryRequest is the request body for patching an entry.
// Absent fields are left unchanged; clear_rating removes the rating.
type UpdateListEntryRequest struct {
	Status      *string  `json:"status,omitempty" doc:"New status"`
	Rating      *float64 `json:"rating,omitempty" minimum:"0" maximum:"10" doc:"New rating"`
	ClearRating bool     `json:"clear_rating,omitempty" doc:"Remove the rating; wins over rating"`
	Favorite    *bool    `json:"favorite,omitempty" doc:"Favorite flag"`
	Comment     *string  `json:"comment,omitempty" doc:"Free-form comment"`
	Redo        *int     `json:"redo,omitempty" minimum:"0" doc:"Rewatch/reread count"`
	Progress    *int     `json:"progress,omitempty" minimum:"0" doc:"Consumed units"`
	PlaytimeMin *int     `json:"playtime_min,omitempty" minimum:"0" doc:"Playtime in minutes (games)"`
}

// UpdateListEntryInput wraps the patch request for Huma.
type UpdateListEntryInput struct {
	ListEntryPathInput
	Body UpdateListEntryRequest
}

// ListEntriesInput contains parameters for listing a user's entries.
type ListEntriesInput struct {
	UserID   string `path:"userID" doc:"User ID"`
	Category string `path:"category" doc:"Media category"`
}

// ListEntriesResponse contains a user's entries in one category.
type ListEntriesResponse struct {
	Entries []ListEntryResponse `json:"entries" doc:"List entries"`
}

// ListEntriesOutput wraps the list entries response for Huma.
type ListEntriesOutput struct {
	Body ListEntriesResponse
}

func toListEntryResponse(e *domain.ListEntry) ListEntryResponse {
	return ListEntryResponse{
		UserID:      e.UserID,
		ItemID:      e.ItemID,
		Category:    string(e.Category),
		Status:      string(e.Status),
		Rating:      e.Rating,
		Favorite:    e.Favorite,
		Comment:     e.Comment,
		Redo:        e.Redo,
		Progress:    e.Progress,
		PlaytimeMin: e.PlaytimeMin,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// === Handlers ===

func (s *Server) handleAddListEntry(ctx context.Context, input *AddListEntryInput) (*ListEntryOutput, error) {
	params := service.AddEntryParams{
		Rating:      input.Body.Rating,
		Favorite:    input.Body.Favorite,
		Comment:     input.Body.Comment,
		Progress:    input.Body.Progress,
		PlaytimeMin: input.Body.PlaytimeMin,
	}
	if input.Body.Status != "" {
		status := domain.Status(input.Body.Status)
		params.Status = &status
	}

	entry, err := s.services.List.AddEntry(ctx, input.UserID, domain.Category(input.Category), input.ItemID, params)
	if err != nil {
		return nil, err
	}

	return &ListEntryOutput{Body: toListEntryResponse(entry)}, nil
}

func (s *Server) handleGetListEntry(ctx context.Context, input *ListEntryPathInput) (*ListEntryOutput, error) {
	entry, err := s.services.List.GetEntry(ctx, input.UserID, domain.Category(input.Category), input.ItemID)
	if err != nil {
		return nil, err
	}

	return &ListEntryOutput{Body: toListEntryResponse(entry)}, nil
}

func (s *Server) handleUpdateListEntry(ctx context.Context, input *UpdateListEntryInput) (*ListEntryOutput, error) {
	patch := service.EntryPatch{
		Rating:      input.Body.Rating,
		ClearRating: input.Body.ClearRating,
		Favorite:    input.Body.Favorite,
		Comment:     input.Body.Comment,
		Redo:        input.Body.Redo,
		Progress:    input.Body.Progress,
		PlaytimeMin: input.Body.PlaytimeMin,
	}
	if input.Body.Status != nil {
		status := domain.Status(*input.Body.Status)
		patch.Status = &status
	}

	entry, err := s.services.List.UpdateEntry(ctx, input.UserID, domain.Category(input.Category), input.ItemID, patch)
	if err != nil {
		return nil, err
	}

	return &ListEntryOutput{Body: toListEntryResponse(entry)}, nil
}

func (s *Server) handleRemoveListEntry(ctx context.Context, input *ListEntryPathInput) (*MessageOutput, error) {
	if err := s.services.List.RemoveEntry(ctx, input.UserID, domain.Category(input.Category), input.ItemID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Entry removed"}}, nil
}

func (s *Server) handleListEntries(ctx context.Context, input *ListEntriesInput) (*ListEntriesOutput, error) {
	entries, err := s.services.List.ListEntries(ctx, input.UserID, domain.Category(input.Category))
	if err != nil {
		return nil, err
	}

	resp := make([]ListEntryResponse, len(entries))
	for i, e := range entries {
		resp[i] = toListEntryResponse(e)
	}

	return &ListEntriesOutput{Body: ListEntriesResponse{Entries: resp}}, nil
}
