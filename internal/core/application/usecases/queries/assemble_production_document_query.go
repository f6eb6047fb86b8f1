package queries

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrAssembleProductionDocumentQueryIsNotConstructed = errors.New(
	"AssembleProductionDocumentQuery must be created via NewAssembleProductionDocumentQuery constructor",
)

// ErrNoDesignFiles is the cause of the not-found error returned when no page
// could be assembled for a SKU.
var ErrNoDesignFiles = errors.New("no design files found for SKU")

type AssembleProductionDocumentQuery struct { //nolint:recvcheck //using for validation
	sku      string
	orderIDs []kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssembleProductionDocumentQuery requires a SKU. orderIDs narrows the
// eligible orders; nil or empty means every eligible order.
func NewAssembleProductionDocumentQuery(sku string, orderIDs []string) (AssembleProductionDocumentQuery, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return AssembleProductionDocumentQuery{}, errs.NewValueIsRequiredError("sku")
	}

	ids, err := kernel.UUIDsFromStrings(orderIDs)
	if err != nil {
		return AssembleProductionDocumentQuery{}, errs.NewValueIsInvalidErrorWithCause("orderIds", err)
	}

	return AssembleProductionDocumentQuery{
		sku:      sku,
		orderIDs: ids,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q AssembleProductionDocumentQuery) Validate() error {
	return q.guard.Validate(ErrAssembleProductionDocumentQueryIsNotConstructed)
}

func (q AssembleProductionDocumentQuery) SKU() string { return q.sku }

func (q AssembleProductionDocumentQuery) OrderIDs() []kernel.UUID {
	out := make([]kernel.UUID, len(q.orderIDs))
	copy(out, q.orderIDs)
	return out
}

// ProductionDocument is a merged, printable document for one SKU.
type ProductionDocument struct {
	Filename string
	Content  []byte
	Files    int
	Pages    int
}
