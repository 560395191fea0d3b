package repositories

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"erp-app/models"
	"erp-app/types"

	"gorm.io/gorm"
)

type TransferRepository struct {
	db *gorm.DB
}

func NewTransferRepository(db *gorm.DB) *TransferRepository {
	return &TransferRepository{db: db}
}

// GenerateTransferNumber builds TR{YYMMDD}{NNNN}, restarting the sequence each day.
func (r *TransferRepository) GenerateTransferNumber(tx *gorm.DB) (string, error) {
	var lastTransfer models.Transfer
	if err := tx.Last(&lastTransfer).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	currentDate := time.Now().Format("060102")

	var transferNo string
	if lastTransfer.Reference != "" && len(lastTransfer.Reference) >= 12 {
		lastDatePart := lastTransfer.Reference[2:8]
		lastSequenceStr := lastTransfer.Reference[len(lastTransfer.Reference)-4:]

		if currentDate != lastDatePart {
			transferNo = fmt.Sprintf("TR%s%04d", currentDate, 1)
		} else {
			lastSequenceInt, _ := strconv.Atoi(lastSequenceStr)
			transferNo = fmt.Sprintf("TR%s%04d", currentDate, lastSequenceInt+1)
		}
	} else {
		transferNo = fmt.Sprintf("TR%s%04d", currentDate, 1)
	}

	return transferNo, nil
}

type CreateStockRequestInput struct {
	ProductID       types.SnowflakeID `json:"product_id" validate:"required"`
	FromWarehouseID types.SnowflakeID `json:"from_warehouse_id" validate:"required"`
	ToWarehouseID   types.SnowflakeID `json:"to_warehouse_id" validate:"required"`
	Quantity        int               `json:"quantity" validate:"required,min=1"`
	Reason          string            `json:"reason"`
}

func (r *TransferRepository) CreateRequest(tenantID types.SnowflakeID, input CreateStockRequestInput, userID types.SnowflakeID) (*models.StockRequest, error) {
	request := models.StockRequest{
		TenantID:        tenantID,
		ProductID:       input.ProductID,
		FromWarehouseID: input.FromWarehouseID,
		ToWarehouseID:   input.ToWarehouseID,
		Quantity:        input.Quantity,
		Reason:          input.Reason,
		Status:          models.RequestDraft,
		RequestedBy:     userID,
	}
	if err := r.db.Create(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

// SubmitRequest moves a draft to requested.
func (r *TransferRepository) SubmitRequest(tenantID, id types.SnowflakeID) (*models.StockRequest, error) {
	return r.transitionRequest(tenantID, id, models.RequestRequested, func(req *models.StockRequest) {
		now := time.Now()
		req.RequestedAt = &now
	})
}

// ApproveRequest grants the request. No stock moves yet; a Transfer has to be
// created and completed separately.
func (r *TransferRepository) ApproveRequest(tenantID, id, userID types.SnowflakeID) (*models.StockRequest, error) {
	return r.transitionRequest(tenantID, id, models.RequestApproved, func(req *models.StockRequest) {
		now := time.Now()
		req.ApprovedBy = userID
		req.DecidedAt = &now
	})
}

func (r *TransferRepository) RejectRequest(tenantID, id, userID types.SnowflakeID, reason string) (*models.StockRequest, error) {
	if reason == "" {
		return nil, models.ErrReasonRequired
	}
	return r.transitionRequest(tenantID, id, models.RequestRejected, func(req *models.StockRequest) {
		now := time.Now()
		req.ApprovedBy = userID
		req.RejectReason = reason
		req.DecidedAt = &now
	})
}

func (r *TransferRepository) CancelRequest(tenantID, id types.SnowflakeID) (*models.StockRequest, error) {
	return r.transitionRequest(tenantID, id, models.RequestCancelled, nil)
}

func (r *TransferRepository) transitionRequest(tenantID, id types.SnowflakeID, target string, mutate func(*models.StockRequest)) (*models.StockRequest, error) {
	var request models.StockRequest

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).
			Where("id = ? AND tenant_id = ?", id, tenantID).
			Take(&request).Error; err != nil {
			return err
		}
		if !request.CanTransition(target) {
			return models.ErrInvalidTransition
		}
		request.Status = target
		if mutate != nil {
			mutate(&request)
		}
		return tx.Save(&request).Error
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// CreateTransferFromRequest turns an approved request into a pending transfer
// carrying a single item line.
func (r *TransferRepository) CreateTransferFromRequest(tenantID, requestID, userID types.SnowflakeID) (*models.Transfer, error) {
	var transfer models.Transfer

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var request models.StockRequest
		if err := lockForUpdate(tx).
			Where("id = ? AND tenant_id = ?", requestID, tenantID).
			Take(&request).Error; err != nil {
			return err
		}
		if request.Status != models.RequestApproved {
			return models.ErrInvalidTransition
		}

		reference, err := r.GenerateTransferNumber(tx)
		if err != nil {
			return err
		}

		transfer = models.Transfer{
			TenantID:        tenantID,
			Reference:       reference,
			FromWarehouseID: request.FromWarehouseID,
			ToWarehouseID:   request.ToWarehouseID,
			Status:          models.TransferPending,
			CreatedBy:       userID,
			Items: []models.TransferItem{
				{
					TenantID:  tenantID,
					ProductID: request.ProductID,
					Quantity:  request.Quantity,
				},
			},
		}
		if err := tx.Create(&transfer).Error; err != nil {
			return err
		}

		request.Status = models.RequestTransferred
		request.TransferID = transfer.ID
		return tx.Save(&request).Error
	})
	if err != nil {
		return nil, err
	}
	return &transfer, nil
}

type TransferItemInput struct {
	ProductID types.SnowflakeID `json:"product_id" validate:"required"`
	Quantity  int               `json:"quantity" validate:"required,min=1"`
}

type CreateTransferInput struct {
	FromWarehouseID types.SnowflakeID   `json:"from_warehouse_id" validate:"required"`
	ToWarehouseID   types.SnowflakeID   `json:"to_warehouse_id" validate:"required"`
	Notes           string              `json:"notes"`
	Items           []TransferItemInput `json:"items" validate:"required,min=1,dive"`
}

// CreateTransfer opens a standalone pending transfer.
func (r *TransferRepository) CreateTransfer(tenantID types.SnowflakeID, input CreateTransferInput, userID types.SnowflakeID) (*models.Transfer, error) {
	var transfer models.Transfer

	err := r.db.Transaction(func(tx *gorm.DB) error {
		reference, err := r.GenerateTransferNumber(tx)
		if err != nil {
			return err
		}

		transfer = models.Transfer{
			TenantID:        tenantID,
			Reference:       reference,
			FromWarehouseID: input.FromWarehouseID,
			ToWarehouseID:   input.ToWarehouseID,
			Status:          models.TransferPending,
			Notes:           input.Notes,
			CreatedBy:       userID,
		}
		for _, item := range input.Items {
			transfer.Items = append(transfer.Items, models.TransferItem{
				TenantID:  tenantID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
			})
		}
		return tx.Create(&transfer).Error
	})
	if err != nil {
		return nil, err
	}
	return &transfer, nil
}

// CompleteTransfer physically executes the move: every item leaves the source
// warehouse and enters the destination, each side getting its own ledger entry.
func (r *TransferRepository) CompleteTransfer(tenantID, id, userID types.SnowflakeID) (*models.Transfer, error) {
	var transfer models.Transfer

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).
			Where("id = ? AND tenant_id = ?", id, tenantID).
			Take(&transfer).Error; err != nil {
			return err
		}
		if transfer.Status != models.TransferPending {
			return models.ErrInvalidTransition
		}
		if err := tx.Where("transfer_id = ?", transfer.ID).Find(&transfer.Items).Error; err != nil {
			return err
		}

		stockRepo := NewStockRepository(tx)
		for i, item := range transfer.Items {
			outStock, err := stockRepo.RemoveStock(tenantID, item.ProductID, transfer.FromWarehouseID,
				item.Quantity, models.StockMoveTransferOut, transfer.Reference, "", userID)
			if err != nil {
				return err
			}
			if _, err := stockRepo.AddStock(tenantID, item.ProductID, transfer.ToWarehouseID,
				item.Quantity, outStock.CostAverage, models.StockMoveTransferIn, transfer.Reference, "", userID); err != nil {
				return err
			}
			transfer.Items[i].UnitCost = outStock.CostAverage
			if err := tx.Save(&transfer.Items[i]).Error; err != nil {
				return err
			}
		}

		now := time.Now()
		transfer.Status = models.TransferCompleted
		transfer.CompletedBy = userID
		transfer.CompletedAt = &now
		return tx.Save(&transfer).Error
	})
	if err != nil {
		return nil, err
	}
	return &transfer, nil
}

func (r *TransferRepository) GetRequest(tenantID, id types.SnowflakeID) (*models.StockRequest, error) {
	var request models.StockRequest
	if err := r.db.Where("id = ? AND tenant_id = ?", id, tenantID).Take(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *TransferRepository) ListRequests(tenantID types.SnowflakeID, status string) ([]models.StockRequest, error) {
	var requests []models.StockRequest
	q := r.db.Where("tenant_id = ?", tenantID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Order("id desc").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *TransferRepository) GetTransfer(tenantID, id types.SnowflakeID) (*models.Transfer, error) {
	var transfer models.Transfer
	if err := r.db.Preload("Items").Where("id = ? AND tenant_id = ?", id, tenantID).Take(&transfer).Error; err != nil {
		return nil, err
	}
	return &transfer, nil
}

func (r *TransferRepository) ListTransfers(tenantID types.SnowflakeID, status string) ([]models.Transfer, error) {
	var transfers []models.Transfer
	q := r.db.Preload("Items").Where("tenant_id = ?", tenantID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Order("id desc").Find(&transfers).Error; err != nil {
		return nil, err
	}
	return transfers, nil
}
