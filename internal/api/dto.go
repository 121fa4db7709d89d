package api

import (
	"time"

	"github.com/goccy/go-json"

	"github.com/mmynk/holocron/internal/models"
)

// UserResponse is the JSON form of a user. The password hash is never
// included.
type UserResponse struct {
	ID               int64   `json:"id"`
	Email            string  `json:"email"`
	FirstName        *string `json:"first_name"`
	LastName         *string `json:"last_name"`
	SubscriptionDate *string `json:"subscription_date"`
}

type PersonResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Height      *string `json:"height"`
	Mass        *string `json:"mass"`
	HairColor   *string `json:"hair_color"`
	SkinColor   *string `json:"skin_color"`
	EyeColor    *string `json:"eye_color"`
	BirthYear   *string `json:"birth_year"`
	Gender      *string `json:"gender"`
	Description *string `json:"description"`
}

type PlanetResponse struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Climate        *string `json:"climate"`
	Diameter       *string `json:"diameter"`
	Gravity        *string `json:"gravity"`
	OrbitalPeriod  *string `json:"orbital_period"`
	RotationPeriod *string `json:"rotation_period"`
	Population     *string `json:"population"`
	SurfaceWater   *string `json:"surface_water"`
	Terrain        *string `json:"terrain"`
	Description    *string `json:"description"`
}

// FavoriteItem describes the target of a favorite. A favorite without a
// target renders as {}.
type FavoriteItem struct {
	Type string  `json:"type"`
	ID   int64   `json:"id"`
	Name *string `json:"name"`
}

// MarshalJSON implements json.Marshaler.
func (f FavoriteItem) MarshalJSON() ([]byte, error) {
	if f.Type == "" {
		return []byte("{}"), nil
	}
	type item FavoriteItem
	return json.Marshal(item(f))
}

type FavoriteResponse struct {
	ID           int64        `json:"id"`
	UserID       int64        `json:"user_id"`
	FavoriteItem FavoriteItem `json:"favorite_item"`
	DateAdded    *string      `json:"date_added"`
}

// AddFavoriteResponse is returned when a favorite is created.
type AddFavoriteResponse struct {
	Message  string           `json:"message"`
	Favorite FavoriteResponse `json:"favorite"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:               u.ID,
		Email:            u.Email,
		FirstName:        optional(u.FirstName),
		LastName:         optional(u.LastName),
		SubscriptionDate: timestamp(u.SubscriptionDate),
	}
}

func NewPersonResponse(p *models.Person) PersonResponse {
	return PersonResponse{
		ID:          p.ID,
		Name:        p.Name,
		Height:      optional(p.Height),
		Mass:        optional(p.Mass),
		HairColor:   optional(p.HairColor),
		SkinColor:   optional(p.SkinColor),
		EyeColor:    optional(p.EyeColor),
		BirthYear:   optional(p.BirthYear),
		Gender:      optional(p.Gender),
		Description: optional(p.Description),
	}
}

func NewPlanetResponse(p *models.Planet) PlanetResponse {
	return PlanetResponse{
		ID:             p.ID,
		Name:           p.Name,
		Climate:        optional(p.Climate),
		Diameter:       optional(p.Diameter),
		Gravity:        optional(p.Gravity),
		OrbitalPeriod:  optional(p.OrbitalPeriod),
		RotationPeriod: optional(p.RotationPeriod),
		Population:     optional(p.Population),
		SurfaceWater:   optional(p.SurfaceWater),
		Terrain:        optional(p.Terrain),
		Description:    optional(p.Description),
	}
}

func NewFavoriteResponse(f *models.Favorite) FavoriteResponse {
	resp := FavoriteResponse{
		ID:        f.ID,
		UserID:    f.UserID,
		DateAdded: timestamp(f.DateAdded),
	}
	if !f.Target.IsZero() {
		resp.FavoriteItem = FavoriteItem{
			Type: string(f.Target.Kind),
			ID:   f.Target.ID,
			Name: f.TargetName,
		}
	}
	return resp
}

// mapSlice applies fn to every element. The result is never nil so empty
// collections encode as [].
func mapSlice[T any, R any](in []T, fn func(T) R) []R {
	out := make([]R, 0, len(in))
	for _, v := range in {
		out = append(out, fn(v))
	}
	return out
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// timestamp formats t as RFC 3339 in UTC; the zero time is null.
func timestamp(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}
