// FILE: internal/entity/activity_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type ActivityKind string

const (
	ActivityDocumentCreated ActivityKind = "document_created"
	ActivityProUpgraded     ActivityKind = "pro_upgraded"
)

func ParseActivityKind(s string) (ActivityKind, bool) {
	switch k := ActivityKind(s); k {
	case ActivityDocumentCreated, ActivityProUpgraded:
		return k, true
	}
	return "", false
}

// Activity is one ledger line: something a signed-in user did that counts
// towards their quota or entitlement.
type Activity struct {
	Id         uuid.UUID
	SessionId  uuid.UUID
	UserId     string
	Kind       ActivityKind
	TemplateId *string // Set for document_created
	CreatedAt  time.Time
}
