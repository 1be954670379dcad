package domain

import (
	"time"

	"github.com/google/uuid"
)

// OwnerKind - физическое или юридическое лицо
type OwnerKind string

const (
	OwnerKindIndividual OwnerKind = "PF"
	OwnerKindCompany    OwnerKind = "PJ"
)

// Owner - собственник техники ("proprietário").
// Флаг Active не редактируется напрямую: он пересчитывается автоматически
// и истинен, когда у собственника есть хотя бы один тягач со сцепленным прицепом.
type Owner struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code,omitempty"`
	Name      string    `json:"name"`
	Kind      OwnerKind `json:"kind,omitempty"`
	Active    bool      `json:"active"`
	WhatsApp  string    `json:"whatsapp,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate проверяет корректность данных собственника
func (o *Owner) Validate() error {
	if o.Name == "" {
		return ErrInvalidOwnerData
	}
	if o.Kind != "" && o.Kind != OwnerKindIndividual && o.Kind != OwnerKindCompany {
		return ErrInvalidOwnerData
	}
	return nil
}
