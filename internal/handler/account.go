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

// AccountHandler serves account CRUD.
type AccountHandler struct {
	Ledger *ledger.Service
}

func NewAccountHandler(lgr *ledger.Service) *AccountHandler {
	return &AccountHandler{Ledger: lgr}
}

type createAccountReq struct {
	Type  string `json:"account_type" binding:"required"`
	Name  string `json:"name" binding:"required,max=64"`
	Color string `json:"color" binding:"max=16"`
}

type updateAccountReq struct {
	Type       *string `json:"account_type"`
	Name       *string `json:"name" binding:"omitempty,max=64"`
	Color      *string `json:"color" binding:"omitempty,max=16"`
	IsFavorite *bool   `json:"is_favorite"`
}

type accountResp struct {
	ID               string    `json:"id"`
	Type             string    `json:"account_type"`
	Name             string    `json:"name"`
	TotalBalanceCent int64     `json:"total_balance_cent"`
	TotalBalance     string    `json:"total_balance"`
	IsFavorite       bool      `json:"is_favorite"`
	Color            string    `json:"color"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func toAccountResp(a *models.Account) accountResp {
	return accountResp{
		ID:               a.ID,
		Type:             string(a.Type),
		Name:             a.Name,
		TotalBalanceCent: a.TotalBalanceCent,
		TotalBalance:     util.FormatCent(a.TotalBalanceCent),
		IsFavorite:       a.IsFavorite,
		Color:            a.Color,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}

func (h *AccountHandler) Create(c *gin.Context) {
	var req createAccountReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	account, err := h.Ledger.CreateAccount(middleware.Tenant(c), ledger.CreateAccountParams{
		Type:  models.AccountType(req.Type),
		Name:  req.Name,
		Color: req.Color,
	})
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{"account": toAccountResp(account)})
}

func (h *AccountHandler) Get(c *gin.Context) {
	account, err := h.Ledger.GetAccount(middleware.Tenant(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{"account": toAccountResp(account)})
}

func (h *AccountHandler) List(c *gin.Context) {
	accounts, err := h.Ledger.ListAccounts(middleware.Tenant(c))
	if err != nil {
		fail(c, err)
		return
	}
	items := make([]accountResp, 0, len(accounts))
	for i := range accounts {
		items = append(items, toAccountResp(&accounts[i]))
	}
	util.Success(c, util.Response{"accounts": items})
}

func (h *AccountHandler) Update(c *gin.Context) {
	var req updateAccountReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	p := ledger.UpdateAccountParams{
		Name:       req.Name,
		Color:      req.Color,
		IsFavorite: req.IsFavorite,
	}
	if req.Type != nil {
		t := models.AccountType(*req.Type)
		p.Type = &t
	}

	account, err := h.Ledger.UpdateAccount(middleware.Tenant(c), c.Param("id"), p)
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{"account": toAccountResp(account)})
}

func (h *AccountHandler) Delete(c *gin.Context) {
	if err := h.Ledger.DeleteAccount(middleware.Tenant(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{"message": "account deleted"})
}

// RecomputeBalance re-derives one account's cached total on demand.
func (h *AccountHandler) RecomputeBalance(c *gin.Context) {
	total, err := h.Ledger.RecomputeAccountBalance(middleware.Tenant(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{
		"total_balance_cent": total,
		"total_balance":      util.FormatCent(total),
	})
}
