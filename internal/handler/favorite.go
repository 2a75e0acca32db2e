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

// FavoriteHandler serves bookmark add/list/remove.
type FavoriteHandler struct {
	Ledger *ledger.Service
}

func NewFavoriteHandler(lgr *ledger.Service) *FavoriteHandler {
	return &FavoriteHandler{Ledger: lgr}
}

type addFavoriteReq struct {
	AccountID    string `json:"account_id"`
	SubAccountID string `json:"sub_account_id"`
}

type favoriteResp struct {
	ID           string    `json:"id"`
	Type         string    `json:"favorite_type"`
	AccountID    string    `json:"account_id,omitempty"`
	SubAccountID string    `json:"sub_account_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func toFavoriteResp(f *models.Favorite) favoriteResp {
	resp := favoriteResp{
		ID:        f.ID,
		Type:      string(f.Type),
		CreatedAt: f.CreatedAt,
	}
	if f.AccountID != nil {
		resp.AccountID = *f.AccountID
	}
	if f.SubAccountID != nil {
		resp.SubAccountID = *f.SubAccountID
	}
	return resp
}

func (h *FavoriteHandler) Add(c *gin.Context) {
	var req addFavoriteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	fav, err := h.Ledger.AddFavorite(middleware.Tenant(c), ledger.AddFavoriteParams{
		AccountID:    req.AccountID,
		SubAccountID: req.SubAccountID,
	})
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{"favorite": toFavoriteResp(fav)})
}

func (h *FavoriteHandler) List(c *gin.Context) {
	favs, err := h.Ledger.ListFavorites(middleware.Tenant(c))
	if err != nil {
		fail(c, err)
		return
	}
	items := make([]favoriteResp, 0, len(favs))
	for i := range favs {
		items = append(items, toFavoriteResp(&favs[i]))
	}
	util.Success(c, util.Response{"favorites": items})
}

func (h *FavoriteHandler) Remove(c *gin.Context) {
	if err := h.Ledger.RemoveFavorite(middleware.Tenant(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{"message": "favorite removed"})
}
