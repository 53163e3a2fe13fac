package handler

import (
	"github.com/dispatchiq/backend/internal/application/catalog"
)

// CategoryResponse is the service category view returned by the API
type CategoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
}

// ServiceTypeResponse is the service type view returned by the API
type ServiceTypeResponse struct {
	ID          string `json:"id"`
	CategoryID  string `json:"category_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	BaseRate    string `json:"base_rate"`
	Emergency   bool   `json:"emergency"`
	Active      bool   `json:"active"`
}

func toCategoryResponse(info catalog.CategoryInfo) CategoryResponse {
	return CategoryResponse{
		ID:          info.ID.String(),
		Name:        info.Name,
		Description: info.Description,
		Active:      info.Active,
	}
}

func toServiceTypeResponse(info catalog.ServiceTypeInfo) ServiceTypeResponse {
	return ServiceTypeResponse{
		ID:          info.ID.String(),
		CategoryID:  info.CategoryID.String(),
		Name:        info.Name,
		Description: info.Description,
		BaseRate:    info.BaseRate.StringFixed(2),
		Emergency:   info.Emergency,
		Active:      info.Active,
	}
}

func toCategoryResponses(infos []catalog.CategoryInfo) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(infos))
	for _, info := range infos {
		out = append(out, toCategoryResponse(info))
	}
	return out
}

func toServiceTypeResponses(infos []catalog.ServiceTypeInfo) []ServiceTypeResponse {
	out := make([]ServiceTypeResponse, 0, len(infos))
	for _, info := range infos {
		out = append(out, toServiceTypeResponse(info))
	}
	return out
}
