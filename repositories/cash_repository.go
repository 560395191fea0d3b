package repositories

import (
	"errors"
	"time"

	"erp-app/models"
	"erp-app/types"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CashRepository struct {
	db *gorm.DB
}

func NewCashRepository(db *gorm.DB) *CashRepository {
	return &CashRepository{db: db}
}

// OpenSession opens a till session. Only one session may be open per point of
// sale at a time.
func (r *CashRepository) OpenSession(tenantID, posID types.SnowflakeID, openingBalance decimal.Decimal, userID types.SnowflakeID) (*models.CashRegisterSession, error) {
	var session models.CashRegisterSession

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.CashRegisterSession
		err := lockForUpdate(tx).
			Where("tenant_id = ? AND point_of_sale_id = ? AND status = ?",
				tenantID, posID, models.CashSessionOpen).
			Take(&existing).Error
		if err == nil {
			return models.ErrSessionAlreadyOpen
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		session = models.CashRegisterSession{
			TenantID:       tenantID,
			PointOfSaleID:  posID,
			OpenedBy:       userID,
			OpeningBalance: openingBalance,
			Status:         models.CashSessionOpen,
			OpenedAt:       time.Now(),
		}
		return tx.Create(&session).Error
	})
	if err != nil {
		return nil, err
	}
	return &session, nil
}

type RecordMovementInput struct {
	SessionID     types.SnowflakeID `json:"session_id"`
	Type          string            `json:"type" validate:"required,oneof=in out"`
	Category      string            `json:"category" validate:"required"`
	PaymentMethod string            `json:"payment_method"`
	Amount        decimal.Decimal   `json:"amount" validate:"required"`
	Reference     string            `json:"reference"`
	Description   string            `json:"description"`
}

// RecordMovement appends a ledger row and, when tied to an open session, bumps
// the matching session counter. Both writes share one transaction so the
// ledger and the running totals cannot drift apart.
func (r *CashRepository) RecordMovement(tenantID types.SnowflakeID, input RecordMovementInput, userID types.SnowflakeID) (*models.CashMovement, error) {
	if input.Amount.Sign() <= 0 {
		return nil, models.ErrInvalidQuantity
	}
	if input.PaymentMethod == "" {
		input.PaymentMethod = models.PaymentCash
	}

	movement := models.CashMovement{
		TenantID:      tenantID,
		SessionID:     input.SessionID,
		Type:          input.Type,
		Category:      input.Category,
		PaymentMethod: input.PaymentMethod,
		Amount:        input.Amount,
		Reference:     input.Reference,
		Description:   input.Description,
		PerformedBy:   userID,
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if input.SessionID != 0 {
			var session models.CashRegisterSession
			if err := lockForUpdate(tx).
				Where("id = ? AND tenant_id = ?", input.SessionID, tenantID).
				Take(&session).Error; err != nil {
				return err
			}
			if err := session.Apply(&movement); err != nil {
				return err
			}
			if err := tx.Save(&session).Error; err != nil {
				return err
			}
		}
		return tx.Create(&movement).Error
	})
	if err != nil {
		return nil, err
	}
	return &movement, nil
}

// CloseSession counts the drawer. Double close is rejected.
func (r *CashRepository) CloseSession(tenantID, id types.SnowflakeID, closingBalance decimal.Decimal, userID types.SnowflakeID, notes string) (*models.CashRegisterSession, error) {
	var session models.CashRegisterSession

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).
			Where("id = ? AND tenant_id = ?", id, tenantID).
			Take(&session).Error; err != nil {
			return err
		}
		if err := session.CloseWith(closingBalance, userID, notes, time.Now()); err != nil {
			return err
		}
		return tx.Save(&session).Error
	})
	if err != nil {
		return nil, err
	}
	return &session, nil
}

type CreateRemittanceInput struct {
	ReceiverID types.SnowflakeID `json:"receiver_id" validate:"required"`
	SessionID  types.SnowflakeID `json:"session_id"`
	Amount     decimal.Decimal   `json:"amount" validate:"required"`
	Notes      string            `json:"notes"`
}

// CreateRemittance opens a pending hand-off and books the cash out of the
// sender's session.
func (r *CashRepository) CreateRemittance(tenantID types.SnowflakeID, input CreateRemittanceInput, senderID types.SnowflakeID) (*models.CashRemittance, error) {
	if input.Amount.Sign() <= 0 {
		return nil, models.ErrInvalidQuantity
	}

	remittance := models.CashRemittance{
		TenantID:   tenantID,
		SenderID:   senderID,
		ReceiverID: input.ReceiverID,
		Reference:  "RM-" + uuid.NewString()[:8],
		Amount:     input.Amount,
		Status:     models.RemittancePending,
		Notes:      input.Notes,
		SentAt:     time.Now(),
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&remittance).Error; err != nil {
			return err
		}
		cashRepo := NewCashRepository(tx)
		_, err := cashRepo.RecordMovement(tenantID, RecordMovementInput{
			SessionID:   input.SessionID,
			Type:        models.CashMoveOut,
			Category:    models.CashCategoryRemittance,
			Amount:      input.Amount,
			Reference:   remittance.Reference,
			Description: "cash remittance sent",
		}, senderID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &remittance, nil
}

// ReceiveRemittance acknowledges physical receipt and books the cash into the
// receiver's session.
func (r *CashRepository) ReceiveRemittance(tenantID, id types.SnowflakeID, sessionID, receiverID types.SnowflakeID) (*models.CashRemittance, error) {
	var remittance models.CashRemittance

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).
			Where("id = ? AND tenant_id = ?", id, tenantID).
			Take(&remittance).Error; err != nil {
			return err
		}
		if !remittance.CanTransition(models.RemittanceReceived) {
			return models.ErrInvalidTransition
		}

		now := time.Now()
		remittance.Status = models.RemittanceReceived
		remittance.ReceivedAt = &now
		if err := tx.Save(&remittance).Error; err != nil {
			return err
		}

		cashRepo := NewCashRepository(tx)
		_, err := cashRepo.RecordMovement(tenantID, RecordMovementInput{
			SessionID:   sessionID,
			Type:        models.CashMoveIn,
			Category:    models.CashCategoryRemittance,
			Amount:      remittance.Amount,
			Reference:   remittance.Reference,
			Description: "cash remittance received",
		}, receiverID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &remittance, nil
}

// ValidateRemittance is a manager sign-off with no cash side effect.
func (r *CashRepository) ValidateRemittance(tenantID, id, managerID types.SnowflakeID) (*models.CashRemittance, error) {
	return r.decideRemittance(tenantID, id, managerID, models.RemittanceValidated, "")
}

// RejectRemittance refuses the hand-off with a reason.
func (r *CashRepository) RejectRemittance(tenantID, id, managerID types.SnowflakeID, reason string) (*models.CashRemittance, error) {
	if reason == "" {
		return nil, models.ErrReasonRequired
	}
	return r.decideRemittance(tenantID, id, managerID, models.RemittanceRejected, reason)
}

func (r *CashRepository) decideRemittance(tenantID, id, managerID types.SnowflakeID, target, reason string) (*models.CashRemittance, error) {
	var remittance models.CashRemittance

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).
			Where("id = ? AND tenant_id = ?", id, tenantID).
			Take(&remittance).Error; err != nil {
			return err
		}
		if !remittance.CanTransition(target) {
			return models.ErrInvalidTransition
		}

		now := time.Now()
		remittance.Status = target
		remittance.ValidatedBy = managerID
		remittance.ValidatedAt = &now
		remittance.RejectReason = reason
		return tx.Save(&remittance).Error
	})
	if err != nil {
		return nil, err
	}
	return &remittance, nil
}

func (r *CashRepository) GetSession(tenantID, id types.SnowflakeID) (*models.CashRegisterSession, error) {
	var session models.CashRegisterSession
	if err := r.db.Where("id = ? AND tenant_id = ?", id, tenantID).Take(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *CashRepository) ListSessions(tenantID, posID types.SnowflakeID, status string) ([]models.CashRegisterSession, error) {
	var sessions []models.CashRegisterSession
	q := r.db.Where("tenant_id = ?", tenantID)
	if posID != 0 {
		q = q.Where("point_of_sale_id = ?", posID)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Order("id desc").Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *CashRepository) ListMovements(tenantID, sessionID types.SnowflakeID) ([]models.CashMovement, error) {
	var movements []models.CashMovement
	q := r.db.Where("tenant_id = ?", tenantID)
	if sessionID != 0 {
		q = q.Where("session_id = ?", sessionID)
	}
	if err := q.Order("id").Limit(500).Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

func (r *CashRepository) ListRemittances(tenantID types.SnowflakeID, status string) ([]models.CashRemittance, error) {
	var remittances []models.CashRemittance
	q := r.db.Where("tenant_id = ?", tenantID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Order("id desc").Find(&remittances).Error; err != nil {
		return nil, err
	}
	return remittances, nil
}
