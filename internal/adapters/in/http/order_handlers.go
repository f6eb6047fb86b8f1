package http

import (
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

type setStatusRequest struct {
	Status       string  `json:"status"`
	ReviewReason *string `json:"review_reason"`
}

type revisionRequest struct {
	RevisionNotes string `json:"revision_notes"`
}

type labelRequest struct {
	TrackingNumber string `json:"tracking_number"`
	LabelURL       string `json:"label_url"`
}

type bulkDeleteRequest struct {
	OrderIDs []string `json:"orderIds"`
}

type clearAllRequest struct {
	Confirm string `json:"confirm"`
}

// SetOrderStatus handles PUT /api/v1/orders/:id/status.
func (s *Server) SetOrderStatus(c echo.Context) error {
	id, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return err
	}

	var req setStatusRequest
	if err = c.Bind(&req); err != nil {
		return err
	}

	cmd, err := commands.NewSetOrderStatusCommand(id, req.Status, req.ReviewReason)
	if err != nil {
		return err
	}

	o, err := s.handlers.SetOrderStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, queries.NewOrderView(o))
}

// StartProduction handles POST /api/v1/orders/:id/production/start.
func (s *Server) StartProduction(c echo.Context) error {
	id, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return err
	}

	cmd, err := commands.NewStartProductionCommand(id)
	if err != nil {
		return err
	}

	o, err := s.handlers.StartProduction.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, queries.NewOrderView(o))
}

// RequestRevision handles POST /api/v1/orders/:id/production/revision.
func (s *Server) RequestRevision(c echo.Context) error {
	id, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return err
	}

	var req revisionRequest
	if err = c.Bind(&req); err != nil {
		return err
	}

	cmd, err := commands.NewRequestRevisionCommand(id, req.RevisionNotes)
	if err != nil {
		return err
	}

	o, err := s.handlers.RequestRevision.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, queries.NewOrderView(o))
}

// AttachShippingLabel handles POST /api/v1/orders/:id/label.
func (s *Server) AttachShippingLabel(c echo.Context) error {
	id, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return err
	}

	var req labelRequest
	if err = c.Bind(&req); err != nil {
		return err
	}

	cmd, err := commands.NewAttachShippingLabelCommand(id, req.TrackingNumber, req.LabelURL)
	if err != nil {
		return err
	}

	o, err := s.handlers.AttachShippingLabel.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, queries.NewOrderView(o))
}

// AutoAdvance handles POST /api/v1/orders/auto-advance.
func (s *Server) AutoAdvance(c echo.Context) error {
	result, err := s.handlers.AutoAdvance.Handle(c.Request().Context(), commands.NewAutoAdvanceOrdersCommand())
	if err != nil {
		return err
	}

	s.metrics.RecordAutoAdvance(result.Promoted, result.Skipped, result.Failed)
	return c.JSON(http.StatusOK, result)
}

// BulkDelete handles POST /api/v1/orders/bulk-delete.
func (s *Server) BulkDelete(c echo.Context) error {
	var req bulkDeleteRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	ids, err := kernel.UUIDsFromStrings(req.OrderIDs)
	if err != nil {
		return err
	}

	cmd, err := commands.NewBulkDeleteOrdersCommand(ids)
	if err != nil {
		return err
	}

	result, err := s.handlers.BulkDelete.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

// ClearAll handles POST /api/v1/orders/clear-all.
func (s *Server) ClearAll(c echo.Context) error {
	var req clearAllRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	cmd, err := commands.NewClearAllOrdersCommand(req.Confirm)
	if err != nil {
		return err
	}

	result, err := s.handlers.ClearAll.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}
