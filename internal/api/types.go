// Package api describes the storefront REST contract: the JSON shapes
// exchanged with the backend. Field names follow the backend verbatim.
//
// Money fields use decimal.Decimal, which accepts both JSON numbers and
// numeric strings (NUMERIC columns often arrive quoted).
package api

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// User is the authenticated account as returned by login and profile calls.
type User struct {
	ID          *int64          `json:"id_usuario,omitempty"`
	Username    string          `json:"username"`
	DisplayName string          `json:"nombre_completo"`
	Balance     decimal.Decimal `json:"saldo"`
	Photo       string          `json:"foto_perfil_s3,omitempty"`
}

// Clone returns a deep copy.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	if u.ID != nil {
		id := *u.ID
		c.ID = &id
	}
	return &c
}

// Artwork is a catalog item.
type Artwork struct {
	ID        int64           `json:"id_obra"`
	Title     string          `json:"titulo"`
	Author    string          `json:"autor_nombre"`
	Year      int             `json:"anio_publicacion"`
	Price     decimal.Decimal `json:"precio"`
	Image     string          `json:"imagen_s3,omitempty"`
	Available bool            `json:"disponible"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Username    string `json:"username"`
	DisplayName string `json:"nombre_completo"`
	Password    string `json:"password"`
	PhotoKey    string `json:"foto_perfil_key,omitempty"`
}

// MessageResponse is the generic acknowledgement body.
type MessageResponse struct {
	Msg string `json:"msg"`
}

type PurchaseRequest struct {
	Username  string `json:"username"`
	ArtworkID int64  `json:"id_obra"`
}

type PurchaseResponse struct {
	Msg     string          `json:"msg"`
	Balance decimal.Decimal `json:"saldo"`
}

// UpdateProfileRequest carries only the fields being changed; empty optional
// fields are omitted from the payload.
type UpdateProfileRequest struct {
	Username        string `json:"username"`
	PasswordConfirm string `json:"passwordConfirm"`
	NewUsername     string `json:"usernameNuevo,omitempty"`
	DisplayName     string `json:"nombre_completo,omitempty"`
	PhotoKey        string `json:"foto_perfil_key,omitempty"`
}

// TopupRequest sends the amount as a bare JSON number.
type TopupRequest struct {
	Username string      `json:"username"`
	Amount   json.Number `json:"monto"`
}

type TopupResponse struct {
	Balance decimal.Decimal `json:"saldo"`
}

type PresignRequest struct {
	Folder      string `json:"folder"`
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
}

type PresignResponse struct {
	UploadURL string `json:"uploadUrl"`
	Key       string `json:"key"`
}

// ErrorResponse is what the reference server writes on failures.
type ErrorResponse struct {
	Error string `json:"error"`
}
