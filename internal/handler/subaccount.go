package handler

import (
	"net/http"
	"time"

	"github.com/Joshi-Yagnik/Financial-summer-project/internal/ledger"
	"github.com/Joshi-Yagnik/Financial-summer-project/internal/middleware"
	"github.com/Joshi-Yagnik/Financial-summer-project/internal/models"
	"github.com/Joshi-Yagnik/Financial-summer-project/internal/util"

	"github.com/gin-gonic/gin"
)

// SubAccountHandler serves sub-account CRUD.
type SubAccountHandler struct {
	Ledger *ledger.Service
}

func NewSubAccountHandler(lgr *ledger.Service) *SubAccountHandler {
	return &SubAccountHandler{Ledger: lgr}
}

type createSubAccountReq struct {
	AccountID string `json:"account_id" binding:"required"`
	Name      string `json:"name" binding:"required,max=64"`
	Color     string `json:"color" binding:"max=16"`
}

type updateSubAccountReq struct {
	Name       *string `json:"name" binding:"omitempty,max=64"`
	Color      *string `json:"color" binding:"omitempty,max=16"`
	IsFavorite *bool   `json:"is_favorite"`
}

type subAccountResp struct {
	ID          string    `json:"id"`
	AccountID   string    `json:"account_id"`
	Name        string    `json:"name"`
	BalanceCent int64     `json:"balance_cent"`
	Balance     string    `json:"balance"`
	IsFavorite  bool      `json:"is_favorite"`
	Color       string    `json:"color"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toSubAccountResp(s *models.SubAccount) subAccountResp {
	return subAccountResp{
		ID:          s.ID,
		AccountID:   s.AccountID,
		Name:        s.Name,
		BalanceCent: s.BalanceCent,
		Balance:     util.FormatCent(s.BalanceCent),
		IsFavorite:  s.IsFavorite,
		Color:       s.Color,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func (h *SubAccountHandler) Create(c *gin.Context) {
	var req createSubAccountReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	sub, err := h.Ledger.CreateSubAccount(middleware.Tenant(c), ledger.CreateSubAccountParams{
		AccountID: req.AccountID,
		Name:      req.Name,
		Color:     req.Color,
	})
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{"sub_account": toSubAccountResp(sub)})
}

func (h *SubAccountHandler) Get(c *gin.Context) {
	sub, err := h.Ledger.GetSubAccount(middleware.Tenant(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{"sub_account": toSubAccountResp(sub)})
}

// List returns the sub-accounts of the account named by ?account_id=.
func (h *SubAccountHandler) List(c *gin.Context) {
	accountID := c.Query("account_id")
	if accountID == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "account_id is required")
		return
	}
	subs, err := h.Ledger.ListSubAccounts(middleware.Tenant(c), accountID)
	if err != nil {
		fail(c, err)
		return
	}
	items := make([]subAccountResp, 0, len(subs))
	for i := range subs {
		items = append(items, toSubAccountResp(&subs[i]))
	}
	util.Success(c, util.Response{"sub_accounts": items})
}

func (h *SubAccountHandler) Update(c *gin.Context) {
	var req updateSubAccountReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	sub, err := h.Ledger.UpdateSubAccount(middleware.Tenant(c), c.Param("id"), ledger.UpdateSubAccountParams{
		Name:       req.Name,
		Color:      req.Color,
		IsFavorite: req.IsFavorite,
	})
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{"sub_account": toSubAccountResp(sub)})
}

func (h *SubAccountHandler) Delete(c *gin.Context) {
	if err := h.Ledger.DeleteSubAccount(middleware.Tenant(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{"message": "sub-account deleted"})
}

// RecomputeBalance re-derives one sub-account's cached balance on demand.
func (h *SubAccountHandler) RecomputeBalance(c *gin.Context) {
	balance, err := h.Ledger.RecomputeSubAccountBalance(middleware.Tenant(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{
		"balance_cent": balance,
		"balance":      util.FormatCent(balance),
	})
}
