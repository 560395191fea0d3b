package repositories

import (
	"fmt"
	"time"

	"erp-app/models"
	"erp-app/types"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ReconciliationRepository struct {
	db *gorm.DB
}

func NewReconciliationRepository(db *gorm.DB) *ReconciliationRepository {
	return &ReconciliationRepository{db: db}
}

// GenerateReference builds REC-{YYYYMMDD}-{NNNN}: sequence is the count of
// reconciliations created for this tenant today, plus one.
func (r *ReconciliationRepository) GenerateReference(tx *gorm.DB, tenantID types.SnowflakeID, now time.Time) (string, error) {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var count int64
	if err := tx.Model(&models.ServerReconciliation{}).
		Where("tenant_id = ? AND created_at >= ? AND created_at < ?", tenantID, dayStart, dayStart.AddDate(0, 0, 1)).
		Count(&count).Error; err != nil {
		return "", err
	}

	return fmt.Sprintf("REC-%s-%04d", now.Format("20060102"), count+1), nil
}

// Open starts a settlement session for a seller.
func (r *ReconciliationRepository) Open(tenantID, serverID, managerID, posID types.SnowflakeID) (*models.ServerReconciliation, error) {
	var rec models.ServerReconciliation

	err := r.db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		reference, err := r.GenerateReference(tx, tenantID, now)
		if err != nil {
			return err
		}

		rec = models.ServerReconciliation{
			TenantID:      tenantID,
			ServerID:      serverID,
			ManagerID:     managerID,
			PointOfSaleID: posID,
			Reference:     reference,
			SessionStart:  now,
			Status:        models.ReconciliationOpen,
		}
		return tx.Create(&rec).Error
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// calculateTotals recomputes the four aggregates from the seller's ServerStock
// rows inside the session window. cash_expected is total_sales by construction.
func (r *ReconciliationRepository) calculateTotals(tx *gorm.DB, rec *models.ServerReconciliation) error {
	end := time.Now()
	if rec.SessionEnd != nil {
		end = *rec.SessionEnd
	}

	var stocks []models.ServerStock
	if err := tx.
		Where("tenant_id = ? AND server_id = ? AND status IN ? AND delegated_at >= ? AND delegated_at <= ?",
			rec.TenantID, rec.ServerID,
			[]string{models.ServerStockActive, models.ServerStockReconciling},
			rec.SessionStart, end).
		Find(&stocks).Error; err != nil {
		return err
	}

	totalDelegated := decimal.Zero
	totalSales := decimal.Zero
	totalReturned := decimal.Zero
	totalLosses := decimal.Zero

	for _, s := range stocks {
		totalDelegated = totalDelegated.Add(s.UnitPrice.Mul(decimal.NewFromInt(int64(s.QuantityDelegated))))
		totalSales = totalSales.Add(s.TotalSalesAmount)
		totalReturned = totalReturned.Add(s.UnitPrice.Mul(decimal.NewFromInt(int64(s.QuantityReturned))))
		totalLosses = totalLosses.Add(s.UnitPrice.Mul(decimal.NewFromInt(int64(s.QuantityLost))))
	}

	rec.TotalDelegatedValue = totalDelegated
	rec.TotalSales = totalSales
	rec.TotalReturnedValue = totalReturned
	rec.TotalLossesValue = totalLosses
	rec.CashExpected = totalSales
	rec.CashDifference = rec.CashCollected.Sub(rec.CashExpected)
	return nil
}

// CalculateTotals recomputes and persists the aggregates.
func (r *ReconciliationRepository) CalculateTotals(tenantID, id types.SnowflakeID) (*models.ServerReconciliation, error) {
	var rec models.ServerReconciliation

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).
			Where("id = ? AND tenant_id = ?", id, tenantID).
			Take(&rec).Error; err != nil {
			return err
		}
		if err := r.calculateTotals(tx, &rec); err != nil {
			return err
		}
		return tx.Save(&rec).Error
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// SubmitForValidation closes the session window with the seller-declared cash:
// totals are recomputed, the session goes pending, and the seller's active
// delegations flip to reconciling.
func (r *ReconciliationRepository) SubmitForValidation(tenantID, id types.SnowflakeID, cashCollected decimal.Decimal, notes string) (*models.ServerReconciliation, error) {
	var rec models.ServerReconciliation

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).
			Where("id = ? AND tenant_id = ?", id, tenantID).
			Take(&rec).Error; err != nil {
			return err
		}
		if !rec.CanTransition(models.ReconciliationPending) {
			return models.ErrInvalidTransition
		}

		now := time.Now()
		rec.SessionEnd = &now
		rec.ServerNotes = notes
		if err := r.calculateTotals(tx, &rec); err != nil {
			return err
		}
		rec.ApplyCollected(cashCollected)
		rec.Status = models.ReconciliationPending
		if err := tx.Save(&rec).Error; err != nil {
			return err
		}

		return tx.Model(&models.ServerStock{}).
			Where("tenant_id = ? AND server_id = ? AND status = ?",
				tenantID, rec.ServerID, models.ServerStockActive).
			Updates(map[string]interface{}{
				"status":        models.ServerStockReconciling,
				"reconciled_at": now,
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Validate is the manager's sign-off: the session is validated and the
// seller's reconciling delegations close for good.
func (r *ReconciliationRepository) Validate(tenantID, id, managerID types.SnowflakeID, notes string) (*models.ServerReconciliation, error) {
	var rec models.ServerReconciliation

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).
			Where("id = ? AND tenant_id = ?", id, tenantID).
			Take(&rec).Error; err != nil {
			return err
		}
		if !rec.CanTransition(models.ReconciliationValidated) {
			return models.ErrInvalidTransition
		}

		now := time.Now()
		rec.Status = models.ReconciliationValidated
		rec.ManagerID = managerID
		rec.ValidatedBy = managerID
		rec.ValidatedAt = &now
		rec.ManagerNotes = notes
		if err := tx.Save(&rec).Error; err != nil {
			return err
		}

		return tx.Model(&models.ServerStock{}).
			Where("tenant_id = ? AND server_id = ? AND status = ?",
				tenantID, rec.ServerID, models.ServerStockReconciling).
			Updates(map[string]interface{}{
				"status":           models.ServerStockClosed,
				"closed_at":        now,
				"amount_collected": gorm.Expr("total_sales_amount"),
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Dispute flags the session for manual resolution. The seller's stocks stay
// reconciling, which also blocks further sales until the dispute is resolved
// by resubmission.
func (r *ReconciliationRepository) Dispute(tenantID, id, managerID types.SnowflakeID, reason string) (*models.ServerReconciliation, error) {
	if reason == "" {
		return nil, models.ErrReasonRequired
	}

	var rec models.ServerReconciliation
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).
			Where("id = ? AND tenant_id = ?", id, tenantID).
			Take(&rec).Error; err != nil {
			return err
		}
		if !rec.CanTransition(models.ReconciliationDisputed) {
			return models.ErrInvalidTransition
		}

		rec.Status = models.ReconciliationDisputed
		rec.ManagerID = managerID
		rec.DisputeReason = reason
		return tx.Save(&rec).Error
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Resubmit sends a disputed session back to the manager with corrected cash.
func (r *ReconciliationRepository) Resubmit(tenantID, id types.SnowflakeID, cashCollected decimal.Decimal, notes string) (*models.ServerReconciliation, error) {
	var rec models.ServerReconciliation

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).
			Where("id = ? AND tenant_id = ?", id, tenantID).
			Take(&rec).Error; err != nil {
			return err
		}
		if rec.Status != models.ReconciliationDisputed {
			return models.ErrInvalidTransition
		}

		rec.ServerNotes = notes
		if err := r.calculateTotals(tx, &rec); err != nil {
			return err
		}
		rec.ApplyCollected(cashCollected)
		rec.Status = models.ReconciliationPending
		return tx.Save(&rec).Error
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// CloseReconciliation archives a validated session.
func (r *ReconciliationRepository) CloseReconciliation(tenantID, id types.SnowflakeID) (*models.ServerReconciliation, error) {
	var rec models.ServerReconciliation

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).
			Where("id = ? AND tenant_id = ?", id, tenantID).
			Take(&rec).Error; err != nil {
			return err
		}
		if !rec.CanTransition(models.ReconciliationClosed) {
			return models.ErrInvalidTransition
		}
		rec.Status = models.ReconciliationClosed
		return tx.Save(&rec).Error
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *ReconciliationRepository) GetByID(tenantID, id types.SnowflakeID) (*models.ServerReconciliation, error) {
	var rec models.ServerReconciliation
	if err := r.db.Where("id = ? AND tenant_id = ?", id, tenantID).Take(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *ReconciliationRepository) List(tenantID, serverID types.SnowflakeID, status string) ([]models.ServerReconciliation, error) {
	var recs []models.ServerReconciliation
	q := r.db.Where("tenant_id = ?", tenantID)
	if serverID != 0 {
		q = q.Where("server_id = ?", serverID)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Order("id desc").Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}
