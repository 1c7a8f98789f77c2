package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/subvista/subvista-backend/api/responses"
	"github.com/subvista/subvista-backend/api/validators"
	billingsvc "github.com/subvista/subvista-backend/internal/billing"
	"github.com/subvista/subvista-backend/internal/insights"
	"github.com/subvista/subvista-backend/internal/planhistory"
	"github.com/subvista/subvista-backend/pkg/enums"
	pkgerrors "github.com/subvista/subvista-backend/pkg/errors"
	"github.com/subvista/subvista-backend/pkg/logger"
	"github.com/subvista/subvista-backend/pkg/pagination"
)

type PlanHistoryService interface {
	GetPlanHistory(ctx context.Context, customerRef string) (*planhistory.PlanHistory, error)
}

type AnalyticsService interface {
	GetAnalytics(ctx context.Context, customerRef string) (*insights.Analytics, error)
}

type ChargesService interface {
	ListCharges(ctx context.Context, params billingsvc.ListChargesParams) (*billingsvc.ChargeList, error)
}

func customerRefFromPath(r *http.Request) (string, error) {
	ref := strings.TrimSpace(chi.URLParam(r, "customerID"))
	if ref == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "customer reference is required")
	}
	return ref, nil
}

func CustomerPlanHistory(svc PlanHistoryService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "plan history service unavailable"))
			return
		}

		ref, err := customerRefFromPath(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		history, err := svc.GetPlanHistory(ctx, ref)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, history)
	}
}

func CustomerAnalytics(svc AnalyticsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "analytics service unavailable"))
			return
		}

		ref, err := customerRefFromPath(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		analytics, err := svc.GetAnalytics(ctx, ref)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, analytics)
	}
}

type chargesQuery struct {
	Status string `json:"status" validate:"omitempty,oneof=pending succeeded failed refunded"`
}

func CustomerCharges(svc ChargesService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "billing service unavailable"))
			return
		}

		ref, err := customerRefFromPath(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		query := chargesQuery{Status: validators.ParseQueryString(r, "status")}
		if err := validators.ValidateStruct(query); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var chargeStatus *enums.ChargeStatus
		if query.Status != "" {
			parsed, parseErr := enums.ParseChargeStatus(query.Status)
			if parseErr != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, parseErr, "invalid status"))
				return
			}
			parsedStatus := parsed
			chargeStatus = &parsedStatus
		}

		result, err := svc.ListCharges(ctx, billingsvc.ListChargesParams{
			CustomerRef: ref,
			Limit:       limit,
			Cursor:      validators.ParseQueryString(r, "cursor"),
			Status:      chargeStatus,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
