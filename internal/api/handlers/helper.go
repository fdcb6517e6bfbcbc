package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/MrE-Fog/grindery-delight-api/internal/pkg/lifecycle"
	"github.com/MrE-Fog/grindery-delight-api/internal/pkg/validation"
)

// validateRequest snapshots the request and runs the endpoint's rules and
// allow-list. A non-empty error array is written as the 400 body and the
// handler must not proceed: validation is a hard gate in front of any
// store operation.
func validateRequest(ctx *gin.Context, rules []validation.Rule, allowed map[validation.Section][]string) (*validation.Request, bool) {
	req, err := validation.FromGin(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, []validation.Error{{
			Location: string(validation.SectionBody),
			Param:    "",
			Msg:      "must be a JSON object",
		}})
		return nil, false
	}
	errs := validation.Evaluate(req, rules, allowed)
	if len(errs) > 0 {
		ctx.JSON(http.StatusBadRequest, errs)
		return nil, false
	}
	return req, true
}

// userID returns the authenticated caller identity set by the bearer
// middleware. Its absence means the route was wired without authentication,
// which is answered like any other unauthenticated request.
func userID(ctx *gin.Context) (string, bool) {
	id := ctx.GetString("userId")
	if id == "" {
		ctx.AbortWithStatus(http.StatusForbidden)
		return "", false
	}
	return id, true
}

// bindBody decodes the already-validated raw body into a typed request.
func bindBody(ctx *gin.Context, req *validation.Request, out interface{}) bool {
	if err := json.Unmarshal(req.RawBody, out); err != nil {
		log.Error(err)
		ctx.JSON(http.StatusBadRequest, []validation.Error{{
			Location: string(validation.SectionBody),
			Param:    "",
			Msg:      "must be a JSON object",
		}})
		return false
	}
	return true
}

// pagination reads validated offset/limit query values. The numeric rule
// admits fractional strings, so values are parsed as floats and truncated.
// Zero limit means the query is unbounded, which the contract permits.
func pagination(req *validation.Request) (int64, int64) {
	parse := func(key string) int64 {
		raw, ok := req.Query[key].(string)
		if !ok {
			return 0
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil || value < 0 {
			return 0
		}
		return int64(value)
	}
	return parse("offset"), parse("limit")
}

// boolQuery reads a validated optional boolean query value.
func boolQuery(req *validation.Request, key string) *bool {
	raw, ok := req.Query[key].(string)
	if !ok {
		return nil
	}
	value := raw == "true"
	return &value
}

// handleEngineError maps engine sentinels to the wire contract: existence
// and ownership failures are 404 with a {msg} body (including the
// duplicate-creation quirk), anything else is logged and answered 500.
func handleEngineError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, lifecycle.ErrOrderExists),
		errors.Is(err, lifecycle.ErrOfferExists),
		errors.Is(err, lifecycle.ErrBlockchainExists),
		errors.Is(err, lifecycle.ErrOrderNotFound),
		errors.Is(err, lifecycle.ErrOfferNotFound),
		errors.Is(err, lifecycle.ErrBlockchainNotFound),
		errors.Is(err, lifecycle.ErrWalletNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"msg": err.Error()})
	default:
		log.Error(err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"msg": "An unexpected error occurred."})
	}
}
