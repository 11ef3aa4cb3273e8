package http

import (
	"time"

	"github.com/example/arena-booking/internal/application"
)

type sessionRequest struct {
	ResourceID   string    `json:"resource_id"`
	GameID       string    `json:"game_id"`
	StartAt      time.Time `json:"start_at"`
	DurationMin  int       `json:"duration_min"`
	Status       string    `json:"status"`
	Players      *int      `json:"players"`
	ContactName  *string   `json:"contact_name"`
	ContactPhone *string   `json:"contact_phone"`
	Comment      *string   `json:"comment"`
}

func (r sessionRequest) toInput() application.SessionInput {
	return application.SessionInput{
		ResourceID:   r.ResourceID,
		GameID:       r.GameID,
		StartAt:      r.StartAt,
		DurationMin:  r.DurationMin,
		Status:       application.SessionStatus(r.Status),
		Players:      r.Players,
		ContactName:  r.ContactName,
		ContactPhone: r.ContactPhone,
		Comment:      r.Comment,
	}
}

// sessionPatchRequest distinguishes absent fields from provided ones; absent
// fields are left untouched.
type sessionPatchRequest struct {
	ResourceID   *string    `json:"resource_id"`
	GameID       *string    `json:"game_id"`
	StartAt      *time.Time `json:"start_at"`
	DurationMin  *int       `json:"duration_min"`
	Status       *string    `json:"status"`
	Players      *int       `json:"players"`
	ContactName  *string    `json:"contact_name"`
	ContactPhone *string    `json:"contact_phone"`
	Comment      *string    `json:"comment"`
}

func (r sessionPatchRequest) toPatch() application.SessionPatch {
	patch := application.SessionPatch{
		ResourceID:   r.ResourceID,
		GameID:       r.GameID,
		StartAt:      r.StartAt,
		DurationMin:  r.DurationMin,
		Players:      r.Players,
		ContactName:  r.ContactName,
		ContactPhone: r.ContactPhone,
		Comment:      r.Comment,
	}
	if r.Status != nil {
		status := application.SessionStatus(*r.Status)
		patch.Status = &status
	}
	return patch
}

type reasonRequest struct {
	Reason string `json:"reason"`
}

type sessionResponse struct {
	ID             string     `json:"id"`
	LocationID     string     `json:"location_id"`
	ResourceID     string     `json:"resource_id"`
	ResourceName   string     `json:"resource_name"`
	GameID         string     `json:"game_id"`
	GameName       string     `json:"game_name"`
	GameIcon       string     `json:"game_icon"`
	StartAt        time.Time  `json:"start_at"`
	EndAt          time.Time  `json:"end_at"`
	DurationMin    int        `json:"duration_min"`
	Status         string     `json:"status"`
	Players        *int       `json:"players"`
	ContactName    *string    `json:"contact_name"`
	ContactPhone   *string    `json:"contact_phone"`
	Comment        *string    `json:"comment"`
	CanceledReason *string    `json:"canceled_reason"`
	CanceledAt     *time.Time `json:"canceled_at"`
	CompletedAt    *time.Time `json:"completed_at"`
	CreatedBy      string     `json:"created_by"`
	UpdatedBy      string     `json:"updated_by"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func newSessionResponse(view application.SessionView) sessionResponse {
	return sessionResponse{
		ID:             view.ID,
		LocationID:     view.LocationID,
		ResourceID:     view.ResourceID,
		ResourceName:   view.ResourceName,
		GameID:         view.GameID,
		GameName:       view.GameName,
		GameIcon:       view.GameIcon,
		StartAt:        view.StartAt,
		EndAt:          view.EndAt,
		DurationMin:    view.DurationMin,
		Status:         string(view.Status),
		Players:        view.Players,
		ContactName:    view.ContactName,
		ContactPhone:   view.ContactPhone,
		Comment:        view.Comment,
		CanceledReason: view.CanceledReason,
		CanceledAt:     view.CanceledAt,
		CompletedAt:    view.CompletedAt,
		CreatedBy:      view.CreatedBy,
		UpdatedBy:      view.UpdatedBy,
		CreatedAt:      view.CreatedAt,
		UpdatedAt:      view.UpdatedAt,
	}
}

func newSessionResponses(views []application.SessionView) []sessionResponse {
	responses := make([]sessionResponse, 0, len(views))
	for _, view := range views {
		responses = append(responses, newSessionResponse(view))
	}
	return responses
}

type gameRequest struct {
	Name     string  `json:"name"`
	ModeIcon *string `json:"mode_icon"`
}

type gamePatchRequest struct {
	Name     *string `json:"name"`
	ModeIcon *string `json:"mode_icon"`
	IsActive *bool   `json:"is_active"`
}

type gameResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ModeIcon  *string   `json:"mode_icon"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func newGameResponse(game application.Game) gameResponse {
	return gameResponse{
		ID:        game.ID,
		Name:      game.Name,
		ModeIcon:  game.ModeIcon,
		IsActive:  game.IsActive,
		CreatedAt: game.CreatedAt,
	}
}

type resourceResponse struct {
	ID         string    `json:"id"`
	LocationID string    `json:"location_id"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_at"`
}

func newResourceResponse(resource application.Resource) resourceResponse {
	return resourceResponse{
		ID:         resource.ID,
		LocationID: resource.LocationID,
		Name:       resource.Name,
		CreatedAt:  resource.CreatedAt,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	LocationID string `json:"location_id,omitempty"`
}

type loginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        userResponse `json:"user"`
}

func newLoginResponse(result application.AuthenticateResult) loginResponse {
	return loginResponse{
		AccessToken: result.Token,
		TokenType:   "bearer",
		ExpiresAt:   result.ExpiresAt,
		User: userResponse{
			ID:         result.User.ID,
			Email:      result.User.Email,
			Role:       string(result.User.Role),
			LocationID: result.User.LocationID,
		},
	}
}
