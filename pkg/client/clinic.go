package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	apperrors "salalivre/pkg/errors"
	"salalivre/pkg/model"
)

// ClinicDirectory resolves clinic records and ownership. Clinic CRUD lives in
// a separate service; this client is the only way the appointments service
// sees clinics.
type ClinicDirectory interface {
	GetClinic(ctx context.Context, clinicID string) (*model.Clinic, error)
	IsOwner(ctx context.Context, clinicID, userID string) (bool, error)
	ClinicsOwnedBy(ctx context.Context, userID string) ([]string, error)
}

type clinicDirectoryClient struct {
	http *HttpClient
}

func NewClinicDirectory(baseURL string) ClinicDirectory {
	return &clinicDirectoryClient{
		http: NewHttpClient(baseURL),
	}
}

type clinicEnvelope struct {
	Data model.Clinic `json:"data"`
}

type clinicIDsEnvelope struct {
	Data []string `json:"data"`
}

func (c *clinicDirectoryClient) GetClinic(ctx context.Context, clinicID string) (*model.Clinic, error) {
	resp, err := c.http.GET("/api/v1/clinics/id/" + url.PathEscape(clinicID))
	if err != nil {
		return nil, apperrors.Internal("Failed to reach clinic directory", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, apperrors.NotFoundWithID("Clinic", clinicID)
	default:
		return nil, apperrors.Internal(
			fmt.Sprintf("Clinic directory returned status %d", resp.StatusCode), nil)
	}

	var envelope clinicEnvelope
	if err := resp.DecodeJSON(&envelope); err != nil {
		return nil, apperrors.Internal("Failed to decode clinic directory response", err)
	}

	return &envelope.Data, nil
}

func (c *clinicDirectoryClient) IsOwner(ctx context.Context, clinicID, userID string) (bool, error) {
	clinic, err := c.GetClinic(ctx, clinicID)
	if err != nil {
		return false, err
	}
	return clinic.OwnerID == userID, nil
}

func (c *clinicDirectoryClient) ClinicsOwnedBy(ctx context.Context, userID string) ([]string, error) {
	resp, err := c.http.GET("/api/v1/clinics?owner_id=" + url.QueryEscape(userID))
	if err != nil {
		return nil, apperrors.Internal("Failed to reach clinic directory", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.Internal(
			fmt.Sprintf("Clinic directory returned status %d", resp.StatusCode), nil)
	}

	var envelope clinicIDsEnvelope
	if err := resp.DecodeJSON(&envelope); err != nil {
		return nil, apperrors.Internal("Failed to decode clinic directory response", err)
	}

	return envelope.Data, nil
}
