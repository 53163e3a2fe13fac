package handler

import (
	"time"

	"github.com/dispatchiq/backend/internal/application/workorder"
)

// WorkOrderResponse is the work order view returned by the API
type WorkOrderResponse struct {
	ID              string     `json:"id"`
	PropertyID      string     `json:"property_id"`
	PropertyName    string     `json:"property_name"`
	UnitID          *string    `json:"unit_id"`
	UnitLabel       string     `json:"unit_label"`
	ServiceTypeID   *string    `json:"service_type_id"`
	Issue           string     `json:"issue"`
	Description     string     `json:"description"`
	Priority        string     `json:"priority"`
	Status          string     `json:"status"`
	PTE             bool       `json:"pte"`
	PreferredWindow string     `json:"preferred_window"`
	TenantName      string     `json:"tenant_name"`
	TenantPhone     string     `json:"tenant_phone"`
	TechnicianID    *string    `json:"technician_id"`
	PayoutAmount    string     `json:"payout_amount"`
	ReportedBy      string     `json:"reported_by"`
	AssignedAt      *time.Time `json:"assigned_at"`
	StartedAt       *time.Time `json:"started_at"`
	CompletedAt     *time.Time `json:"completed_at"`
	CancelledAt     *time.Time `json:"cancelled_at"`
	CancelReason    string     `json:"cancel_reason"`
	CreatedAt       time.Time  `json:"created_at"`
}

// EvidenceResponse is the job evidence view returned by the API
type EvidenceResponse struct {
	ID          string    `json:"id"`
	WorkOrderID string    `json:"work_order_id"`
	Kind        string    `json:"kind"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	Caption     string    `json:"caption"`
	UploadedBy  string    `json:"uploaded_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// DownloadURLResponse carries a presigned download URL
type DownloadURLResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UnitOptionResponse is a selectable unit within a property option
type UnitOptionResponse struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// PropertyOptionResponse is a property with its units, used by intake forms
type PropertyOptionResponse struct {
	ID    string               `json:"id"`
	Name  string               `json:"name"`
	Units []UnitOptionResponse `json:"units"`
}

func toWorkOrderResponse(info workorder.Info) WorkOrderResponse {
	resp := WorkOrderResponse{
		ID:              info.ID.String(),
		PropertyID:      info.PropertyID.String(),
		PropertyName:    info.PropertyName,
		UnitLabel:       info.UnitLabel,
		Issue:           info.Issue,
		Description:     info.Description,
		Priority:        info.Priority,
		Status:          info.Status,
		PTE:             info.PTE,
		PreferredWindow: info.PreferredWindow,
		TenantName:      info.TenantName,
		TenantPhone:     info.TenantPhone,
		PayoutAmount:    info.PayoutAmount.StringFixed(2),
		ReportedBy:      info.ReportedBy,
		AssignedAt:      info.AssignedAt,
		StartedAt:       info.StartedAt,
		CompletedAt:     info.CompletedAt,
		CancelledAt:     info.CancelledAt,
		CancelReason:    info.CancelReason,
		CreatedAt:       info.CreatedAt,
	}
	if info.UnitID != nil {
		unitID := info.UnitID.String()
		resp.UnitID = &unitID
	}
	if info.ServiceType != nil {
		serviceTypeID := info.ServiceType.String()
		resp.ServiceTypeID = &serviceTypeID
	}
	if info.TechnicianID != nil {
		technicianID := info.TechnicianID.String()
		resp.TechnicianID = &technicianID
	}
	return resp
}

func toWorkOrderResponses(infos []workorder.Info) []WorkOrderResponse {
	out := make([]WorkOrderResponse, 0, len(infos))
	for _, info := range infos {
		out = append(out, toWorkOrderResponse(info))
	}
	return out
}

func toEvidenceResponse(info workorder.EvidenceInfo) EvidenceResponse {
	return EvidenceResponse{
		ID:          info.ID.String(),
		WorkOrderID: info.WorkOrderID.String(),
		Kind:        info.Kind,
		FileName:    info.FileName,
		ContentType: info.ContentType,
		SizeBytes:   info.SizeBytes,
		Caption:     info.Caption,
		UploadedBy:  info.UploadedBy.String(),
		CreatedAt:   info.CreatedAt,
	}
}

func toEvidenceResponses(infos []workorder.EvidenceInfo) []EvidenceResponse {
	out := make([]EvidenceResponse, 0, len(infos))
	for _, info := range infos {
		out = append(out, toEvidenceResponse(info))
	}
	return out
}

func toPropertyOptionResponses(options []workorder.PropertyOption) []PropertyOptionResponse {
	out := make([]PropertyOptionResponse, 0, len(options))
	for _, opt := range options {
		units := make([]UnitOptionResponse, 0, len(opt.Units))
		for _, u := range opt.Units {
			units = append(units, UnitOptionResponse{ID: u.ID.String(), Label: u.Label})
		}
		out = append(out, PropertyOptionResponse{ID: opt.ID.String(), Name: opt.Name, Units: units})
	}
	return out
}
