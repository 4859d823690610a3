package api

import (
	"context"
	"net/http"
)

// ProgrammerProfile is the public showcase of a programmer.
type ProgrammerProfile struct {
	ID              int64    `json:"id"`
	UserID          int64    `json:"userId"`
	UserName        string   `json:"userName"`
	UserEmail       string   `json:"userEmail"`
	JobTitle        string   `json:"jobTitle,omitempty"`
	Bio             string   `json:"bio,omitempty"`
	ImageURL        string   `json:"imageUrl,omitempty"`
	Skills          []string `json:"skills,omitempty"`
	GithubURL       string   `json:"githubUrl,omitempty"`
	LinkedinURL     string   `json:"linkedinUrl,omitempty"`
	InstagramURL    string   `json:"instagramUrl,omitempty"`
	WhatsappURL     string   `json:"whatsappUrl,omitempty"`
	YearsExperience *int     `json:"yearsExperience,omitempty"`
	Rating          *float64 `json:"rating,omitempty"`
	CreatedAt       string   `json:"createdAt,omitempty"`
	UpdatedAt       string   `json:"updatedAt,omitempty"`
}

type UpdateProfileData struct {
	JobTitle        string   `json:"jobTitle,omitempty"`
	Bio             string   `json:"bio,omitempty"`
	ImageURL        string   `json:"imageUrl,omitempty"`
	Skills          []string `json:"skills,omitempty"`
	GithubURL       string   `json:"githubUrl,omitempty"`
	LinkedinURL     string   `json:"linkedinUrl,omitempty"`
	InstagramURL    string   `json:"instagramUrl,omitempty"`
	WhatsappURL     string   `json:"whatsappUrl,omitempty"`
	YearsExperience *int     `json:"yearsExperience,omitempty"`
}

func markProfileNotFound(e *Error) {
	if e.StatusCode == http.StatusNotFound {
		e.Kind = ErrProfileNotFound
	}
}

// GetMyProfile returns ErrProfileNotFound when the session holder has not
// created a profile yet.
func (c *Client) GetMyProfile(ctx context.Context) (*ProgrammerProfile, error) {
	const op = "get my profile"
	if _, err := c.requireSession(ctx, op); err != nil {
		return nil, err
	}

	var profile ProgrammerProfile
	if err := c.send(ctx, op, http.MethodGet, pathMyProfile, nil, &profile, markProfileNotFound); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *Client) GetProfileByUser(ctx context.Context, userID int64) (*ProgrammerProfile, error) {
	var profile ProgrammerProfile
	if err := c.send(ctx, "get profile", http.MethodGet, profileByUserPath(userID), nil, &profile, markProfileNotFound); err != nil {
		return nil, err
	}
	return &profile, nil
}

// ListProfiles returns every programmer profile for the directory page.
func (c *Client) ListProfiles(ctx context.Context) ([]ProgrammerProfile, error) {
	return list[ProgrammerProfile](ctx, c, "list profiles", pathAllProfiles)
}

// SaveProfile creates the profile of the session holder, or updates it.
func (c *Client) SaveProfile(ctx context.Context, data UpdateProfileData) (*ProgrammerProfile, error) {
	const op = "save profile"
	if _, err := c.requireSession(ctx, op); err != nil {
		return nil, err
	}

	var profile ProgrammerProfile
	if err := c.send(ctx, op, http.MethodPost, pathProfiles, data, &profile, nil); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile is SaveProfile.
func (c *Client) UpdateProfile(ctx context.Context, data UpdateProfileData) (*ProgrammerProfile, error) {
	return c.SaveProfile(ctx, data)
}

func (c *Client) DeleteProfile(ctx context.Context) error {
	const op = "delete profile"
	if _, err := c.requireSession(ctx, op); err != nil {
		return err
	}
	return c.send(ctx, op, http.MethodDelete, pathProfiles, nil, nil, nil)
}
