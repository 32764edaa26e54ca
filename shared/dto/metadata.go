package dto

import (
	"folio/shared/constant"
	"folio/shared/model"
	"folio/shared/timezone"
)

// Metadata is the audit trail shared by every response. ModifiedAt stays empty until the first
// update.
type Metadata struct {
	CreatedAt  string `json:"created_at"`
	ModifiedAt string `json:"modified_at,omitempty"`
	CreatedBy  string `json:"created_by"`
	ModifiedBy string `json:"modified_by,omitempty"`
}

func (m *Metadata) FromModel(model model.Metadata) {
	m.CreatedAt = timezone.Format(model.CreatedAt, constant.DateFormat)

	if !model.ModifiedAt.IsZero() {
		m.ModifiedAt = timezone.Format(model.ModifiedAt, constant.DateFormat)
	}

	m.CreatedBy = model.CreatedBy
	m.ModifiedBy = model.ModifiedBy
}
