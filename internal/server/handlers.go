package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/deltadao/nautilus-bridge-go/pkg/bridge"
	"github.com/deltadao/nautilus-bridge-go/pkg/networks"
)

func (s *Server) getHealth(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, healthResponse{Status: "healthy"})
}

func (s *Server) publish(ctx echo.Context) error {
	errs := fieldErrors{}
	key := privateKey(ctx, errs)
	network := networkParam(ctx, errs)

	var body publishRequest
	if err := ctx.Bind(&body); err != nil {
		errs.add("body", "invalid JSON payload")
	} else {
		for field, message := range body.validate() {
			errs.add(field, message)
		}
	}
	if len(errs) > 0 {
		return ctx.JSON(http.StatusUnprocessableEntity, errorResponse{Error: errs})
	}

	// Fast-fail on currencies the network cannot price. The orchestrator
	// re-validates against the catalog; this check only spares the caller
	// a session setup.
	currency := *body.AssetDescr.Price.Currency
	catalog, err := networks.PricingCatalog(network)
	if err != nil {
		zap.L().Error("pricing catalog lookup failed", zap.String("network", string(network)), zap.Error(err))
		return ctx.NoContent(http.StatusInternalServerError)
	}
	if _, ok := catalog.Lookup(currency); !ok {
		return ctx.JSON(http.StatusUnprocessableEntity,
			errorResponse{Error: fmt.Sprintf("Unknown Currency: '%s'", currency)})
	}

	opCtx, cancel := s.operationContext(ctx)
	defer cancel()

	did, err := s.bridge.PublishDataset(opCtx, network,
		bridge.ServiceDescriptor{
			URL:     *body.ServiceDescr.URL,
			APIKey:  *body.ServiceDescr.APIKey,
			DataKey: *body.ServiceDescr.DataKey,
			Timeout: *body.ServiceDescr.Timeout,
		},
		bridge.AssetDescriptor{
			Name:        *body.AssetDescr.Name,
			Type:        *body.AssetDescr.Type,
			Description: *body.AssetDescr.Description,
			Author:      *body.AssetDescr.Author,
			License:     *body.AssetDescr.License,
			Price: bridge.Price{
				Value:    decimal.NewFromFloat(*body.AssetDescr.Price.Value),
				Currency: currency,
			},
		},
		key)
	if err != nil {
		if errors.Is(err, bridge.ErrUnknownCurrency) {
			return ctx.JSON(http.StatusUnprocessableEntity,
				errorResponse{Error: fmt.Sprintf("Unknown Currency: '%s'", currency)})
		}
		zap.L().Error("publish operation failed", zap.String("network", string(network)), zap.Error(err))
		return ctx.NoContent(http.StatusInternalServerError)
	}

	return ctx.JSON(http.StatusCreated, publishResponse{AssetDID: did})
}

func (s *Server) revoke(ctx echo.Context) error {
	errs := fieldErrors{}
	key := privateKey(ctx, errs)
	network := networkParam(ctx, errs)
	did := assetDIDParam(ctx, errs)
	if len(errs) > 0 {
		return ctx.JSON(http.StatusUnprocessableEntity, errorResponse{Error: errs})
	}

	opCtx, cancel := s.operationContext(ctx)
	defer cancel()

	if err := s.bridge.Revoke(opCtx, network, did, key); err != nil {
		zap.L().Error("revoke operation failed",
			zap.String("network", string(network)),
			zap.String("did", did),
			zap.Error(err))
		return ctx.NoContent(http.StatusInternalServerError)
	}
	return ctx.JSON(http.StatusOK, resultResponse{Result: "success"})
}

func (s *Server) downloadURL(ctx echo.Context) error {
	errs := fieldErrors{}
	key := privateKey(ctx, errs)
	network := networkParam(ctx, errs)
	did := assetDIDParam(ctx, errs)
	if len(errs) > 0 {
		return ctx.JSON(http.StatusUnprocessableEntity, errorResponse{Error: errs})
	}

	opCtx, cancel := s.operationContext(ctx)
	defer cancel()

	url, err := s.bridge.Access(opCtx, network, did, key)
	if err != nil {
		zap.L().Error("access operation failed",
			zap.String("network", string(network)),
			zap.String("did", did),
			zap.Error(err))
		return ctx.NoContent(http.StatusInternalServerError)
	}
	return ctx.JSON(http.StatusOK, urlResponse{URL: url})
}

func (s *Server) updatePrice(ctx echo.Context) error {
	errs := fieldErrors{}
	key := privateKey(ctx, errs)
	network := networkParam(ctx, errs)
	did := assetDIDParam(ctx, errs)

	var body updatePriceRequest
	if err := ctx.Bind(&body); err != nil {
		errs.add("body", "invalid JSON payload")
	} else {
		for field, message := range body.validate() {
			errs.add(field, message)
		}
	}
	if len(errs) > 0 {
		return ctx.JSON(http.StatusUnprocessableEntity, errorResponse{Error: errs})
	}

	opCtx, cancel := s.operationContext(ctx)
	defer cancel()

	if err := s.bridge.ChangePrice(opCtx, network, did, decimal.NewFromFloat(*body.Price), key); err != nil {
		zap.L().Error("price update failed",
			zap.String("network", string(network)),
			zap.String("did", did),
			zap.Error(err))
		return ctx.NoContent(http.StatusInternalServerError)
	}
	return ctx.JSON(http.StatusOK, resultResponse{Result: "success"})
}

// operationContext bounds one lifecycle operation, session setup included.
func (s *Server) operationContext(ctx echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx.Request().Context(), s.timeout)
}
