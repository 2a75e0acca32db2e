package handler

import (
	"errors"
	"net/http"

	"github.com/Joshi-Yagnik/Financial-summer-project/internal/apperr"
	"github.com/Joshi-Yagnik/Financial-summer-project/internal/util"

	"github.com/gin-gonic/gin"
)

// fail translates a core error into the API envelope.
func fail(c *gin.Context, err error) {
	var (
		ve *apperr.ValidationError
		ae *apperr.AuthorizationError
		nf *apperr.NotFoundError
	)
	switch {
	case errors.As(err, &ve):
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, ve.Error())
	case errors.As(err, &ae):
		util.Error(c, http.StatusForbidden, util.CodeForbidden, ae.Error())
	case errors.As(err, &nf):
		util.Error(c, http.StatusNotFound, util.CodeNotFound, nf.Error())
	default:
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "internal error, please retry")
	}
}
