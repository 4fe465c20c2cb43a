/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract. Password
  hashes and salts never appear in any response type.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"github.com/warp/vacation-tracker/vacation"
)

// =============================================================================
// USER TYPES
// =============================================================================

// UserDTO represents a user in API responses.
type UserDTO struct {
	ID             int64  `json:"id"`
	Username       string `json:"username"`
	Mail           string `json:"mail"`
	IsAdmin        bool   `json:"is_admin"`
	VacationAmount int    `json:"vacation_amount"`
	CountryCode    string `json:"country_code"`
	JoinDate       string `json:"join_date"`
}

func toUserDTO(u *vacation.User) UserDTO {
	return UserDTO{
		ID:             u.ID,
		Username:       u.Username,
		Mail:           u.Mail,
		IsAdmin:        u.IsAdmin,
		VacationAmount: u.VacationAmount,
		CountryCode:    u.CountryCode,
		JoinDate:       u.JoinDate.String(),
	}
}

// CreateUserRequest is the request to create a user account.
type CreateUserRequest struct {
	Username       string `json:"username"`
	Mail           string `json:"mail"`
	Password       string `json:"password"`
	IsAdmin        bool   `json:"is_admin"`
	VacationAmount int    `json:"vacation_amount,omitempty"`
	CountryCode    string `json:"country_code,omitempty"`
	JoinDate       string `json:"join_date,omitempty"`
}

// BalanceDTO reports a user's remaining allowance for one year.
type BalanceDTO struct {
	UserID    int64  `json:"user_id"`
	Year      int    `json:"year"`
	Allowance int    `json:"allowance"`
	Remaining string `json:"remaining"`
}

// =============================================================================
// VACATION TYPES
// =============================================================================

// VacationDTO represents a vacation request in API responses.
type VacationDTO struct {
	ID           int64  `json:"id"`
	UserID       int64  `json:"user_id"`
	Start        string `json:"start"`
	End          string `json:"end"`
	Status       string `json:"status"`
	DenialReason string `json:"denial_reason,omitempty"`
}

func toVacationDTO(v *vacation.Vacation) VacationDTO {
	return VacationDTO{
		ID:           v.ID,
		UserID:       v.UserID,
		Start:        v.Start.String(),
		End:          v.End.String(),
		Status:       string(v.Status),
		DenialReason: v.DenialReason,
	}
}

func toVacationDTOs(vs []vacation.Vacation) []VacationDTO {
	dtos := make([]VacationDTO, len(vs))
	for i := range vs {
		dtos[i] = toVacationDTO(&vs[i])
	}
	return dtos
}

// CreateVacationRequest is the request to create a vacation.
// End may be omitted for a single-day request.
type CreateVacationRequest struct {
	Start string `json:"start"`
	End   string `json:"end,omitempty"`
}

// DenyVacationRequest carries the optional denial reason.
type DenyVacationRequest struct {
	Reason string `json:"reason,omitempty"`
}

// =============================================================================
// AUTH TYPES
// =============================================================================

// LoginRequest carries credentials for token issuance.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse returns the signed token and the authenticated user.
type LoginResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
