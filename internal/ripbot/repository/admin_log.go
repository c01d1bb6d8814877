package repository

import (
	"context"
	"fmt"
	"strings"

	cerrors "github.com/park285/llm-kakao-bots/rip-bot-go/internal/common/errors"
)

// AdminActionAddXP 등 관리자 조정 액션 상수 목록이다.
const (
	AdminActionAddXP  = "addexp"
	AdminActionAddRip = "addrips"
)

// AdminAuditParams: 관리자 조정 기록 파라미터 구조체
type AdminAuditParams struct {
	ChatID       string
	AdminUserID  string
	TargetUserID string
	Action       string
	Delta        int64
	ResultValue  int64
}

// RecordAdminAudit: 관리자 스탯 조정 내역을 기록합니다.
func (r *Repository) RecordAdminAudit(ctx context.Context, p AdminAuditParams) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("db is nil")
	}

	p.ChatID = strings.TrimSpace(p.ChatID)
	p.AdminUserID = strings.TrimSpace(p.AdminUserID)
	p.TargetUserID = strings.TrimSpace(p.TargetUserID)
	if p.ChatID == "" || p.AdminUserID == "" || p.TargetUserID == "" {
		return nil
	}

	entity := AdminAuditLog{
		ChatID:       p.ChatID,
		AdminUserID:  p.AdminUserID,
		TargetUserID: p.TargetUserID,
		Action:       p.Action,
		Delta:        p.Delta,
		ResultValue:  p.ResultValue,
	}
	if err := r.db.WithContext(ctx).Create(&entity).Error; err != nil {
		return cerrors.DatabaseError{Operation: "admin_audit_insert", Err: err}
	}
	return nil
}
