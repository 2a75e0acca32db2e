package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Joshi-Yagnik/Financial-summer-project/internal/config"
	"github.com/Joshi-Yagnik/Financial-summer-project/internal/ledger"
	"github.com/Joshi-Yagnik/Financial-summer-project/internal/middleware"
	"github.com/Joshi-Yagnik/Financial-summer-project/internal/models"
	"github.com/Joshi-Yagnik/Financial-summer-project/internal/util"

	"github.com/gin-gonic/gin"
)

// TransactionHandler serves ledger entry CRUD and listing.
type TransactionHandler struct {
	Ledger *ledger.Service
}

func NewTransactionHandler(lgr *ledger.Service) *TransactionHandler {
	return &TransactionHandler{Ledger: lgr}
}

type createTransactionReq struct {
	AccountID    string   `json:"account_id" binding:"required"`
	SubAccountID string   `json:"sub_account_id" binding:"required"`
	Type         string   `json:"transaction_type" binding:"required"`
	Amount       string   `json:"amount" binding:"required"`
	Description  string   `json:"description" binding:"max=255"`
	Category     string   `json:"category" binding:"max=32"`
	Tags         []string `json:"tags"`
	OccurredAt   string   `json:"transaction_date"`

	ToAccountID    string `json:"to_account_id"`
	ToSubAccountID string `json:"to_sub_account_id"`
}

type updateTransactionReq struct {
	AccountID    *string   `json:"account_id"`
	SubAccountID *string   `json:"sub_account_id"`
	Type         *string   `json:"transaction_type"`
	Amount       *string   `json:"amount"`
	Description  *string   `json:"description" binding:"omitempty,max=255"`
	Category     *string   `json:"category" binding:"omitempty,max=32"`
	Tags         *[]string `json:"tags"`
	OccurredAt   *string   `json:"transaction_date"`
}

type transactionResp struct {
	ID           string    `json:"id"`
	AccountID    string    `json:"account_id"`
	SubAccountID string    `json:"sub_account_id"`
	Type         string    `json:"transaction_type"`
	AmountCent   int64     `json:"amount_cent"`
	Amount       string    `json:"amount"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	Tags         []string  `json:"tags"`
	OccurredAt   time.Time `json:"transaction_date"`
	CreatedAt    time.Time `json:"created_at"`

	TransferType        string `json:"transfer_type,omitempty"`
	LinkedTransactionID string `json:"linked_transaction_id,omitempty"`
	ToAccountID         string `json:"to_account_id,omitempty"`
	ToSubAccountID      string `json:"to_sub_account_id,omitempty"`
	FromAccountID       string `json:"from_account_id,omitempty"`
	FromSubAccountID    string `json:"from_sub_account_id,omitempty"`
}

func toTransactionResp(t *models.Transaction) transactionResp {
	var tags []string
	if t.Tags != "" {
		tags = strings.Split(t.Tags, ",")
	}
	return transactionResp{
		ID:                  t.ID,
		AccountID:           t.AccountID,
		SubAccountID:        t.SubAccountID,
		Type:                string(t.Type),
		AmountCent:          t.AmountCent,
		Amount:              util.FormatCent(t.AmountCent),
		Description:         t.Description,
		Category:            t.Category,
		Tags:                tags,
		OccurredAt:          t.OccurredAt,
		CreatedAt:           t.CreatedAt,
		TransferType:        string(t.TransferType),
		LinkedTransactionID: t.LinkedTransactionID,
		ToAccountID:         t.ToAccountID,
		ToSubAccountID:      t.ToSubAccountID,
		FromAccountID:       t.FromAccountID,
		FromSubAccountID:    t.FromSubAccountID,
	}
}

func (h *TransactionHandler) Create(c *gin.Context) {
	var req createTransactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	amountCent, err := util.ParseAmountCent(req.Amount)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid amount")
		return
	}

	var occurredAt time.Time
	if req.OccurredAt != "" {
		occurredAt, err = util.ParseDate(req.OccurredAt)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid transaction date")
			return
		}
	}

	txn, err := h.Ledger.CreateTransaction(middleware.Tenant(c), ledger.CreateTransactionParams{
		AccountID:      req.AccountID,
		SubAccountID:   req.SubAccountID,
		Type:           models.TransactionType(req.Type),
		AmountCent:     amountCent,
		Description:    req.Description,
		Category:       req.Category,
		Tags:           req.Tags,
		OccurredAt:     occurredAt,
		ToAccountID:    req.ToAccountID,
		ToSubAccountID: req.ToSubAccountID,
	})
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{"transaction": toTransactionResp(txn)})
}

func (h *TransactionHandler) Get(c *gin.Context) {
	txn, err := h.Ledger.GetTransaction(middleware.Tenant(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{"transaction": toTransactionResp(txn)})
}

// List supports filtering by account, sub-account, type, category and a
// date range, paged newest-first.
func (h *TransactionHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}
	defSize := 20
	if cfg := config.Get(); cfg != nil && cfg.App.PageSize > 0 {
		defSize = cfg.App.PageSize
	}
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defSize)))
	if size <= 0 || size > 100 {
		size = defSize
	}

	p := ledger.ListTransactionsParams{
		AccountID:    c.Query("account_id"),
		SubAccountID: c.Query("sub_account_id"),
		Type:         models.TransactionType(c.Query("type")),
		Category:     c.Query("category"),
		Limit:        size,
		Offset:       (page - 1) * size,
	}

	if start := c.Query("start"); start != "" {
		t, err := util.ParseDate(start)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid start date")
			return
		}
		p.Start = t
	}
	if end := c.Query("end"); end != "" {
		t, err := util.ParseDate(end)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid end date")
			return
		}
		// treat the end date as inclusive of its whole day
		p.End = t.Add(24 * time.Hour)
	}

	txns, total, err := h.Ledger.ListTransactions(middleware.Tenant(c), p)
	if err != nil {
		fail(c, err)
		return
	}

	items := make([]transactionResp, 0, len(txns))
	for i := range txns {
		items = append(items, toTransactionResp(&txns[i]))
	}
	util.Success(c, util.Response{
		"items": items,
		"total": total,
		"page":  page,
		"size":  size,
	})
}

func (h *TransactionHandler) Update(c *gin.Context) {
	var req updateTransactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	p := ledger.UpdateTransactionParams{
		AccountID:    req.AccountID,
		SubAccountID: req.SubAccountID,
		Description:  req.Description,
		Category:     req.Category,
		Tags:         req.Tags,
	}
	if req.Type != nil {
		t := models.TransactionType(*req.Type)
		p.Type = &t
	}
	if req.Amount != nil {
		amountCent, err := util.ParseAmountCent(*req.Amount)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid amount")
			return
		}
		p.AmountCent = &amountCent
	}
	if req.OccurredAt != nil {
		t, err := util.ParseDate(*req.OccurredAt)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid transaction date")
			return
		}
		p.OccurredAt = &t
	}

	txn, err := h.Ledger.UpdateTransaction(middleware.Tenant(c), c.Param("id"), p)
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{"transaction": toTransactionResp(txn)})
}

func (h *TransactionHandler) Delete(c *gin.Context) {
	if err := h.Ledger.DeleteTransaction(middleware.Tenant(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{"message": "transaction deleted"})
}
