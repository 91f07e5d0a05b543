package dto

import (
	"hotelpms/shared/constant"
	"hotelpms/shared/model"
	"hotelpms/shared/timezone"
)

// Metadata is the audit block shared by every resource. Timestamps are rendered in the hotel timezone.
type Metadata struct {
	CreatedAt  string `json:"created_at"`
	CreatedBy  string `json:"created_by"`
	ModifiedAt string `json:"modified_at,omitempty"`
	ModifiedBy string `json:"modified_by,omitempty"`
}

func (m *Metadata) FromModel(audit model.Metadata) {
	m.CreatedAt = timezone.Format(audit.CreatedAt, constant.DateFormat)
	m.CreatedBy = audit.CreatedBy

	// Rows that were never touched after insert report no modification.
	if audit.ModifiedAt.IsZero() || audit.ModifiedAt.Equal(audit.CreatedAt) {
		return
	}

	m.ModifiedAt = timezone.Format(audit.ModifiedAt, constant.DateFormat)
	m.ModifiedBy = audit.ModifiedBy
}
