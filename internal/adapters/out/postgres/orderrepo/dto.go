package orderrepo

import (
	"encoding/json"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type OrderDTO struct {
	ID                  uuid.UUID      `gorm:"type:uuid;primaryKey"`
	OrderNumber         string         `gorm:"not null;index"`
	StoreID             uuid.UUID      `gorm:"type:uuid;not null;index"`
	CustomerName        string
	CustomerEmail       string
	ShippingAddress     datatypes.JSON `gorm:"type:jsonb"`
	Status              string         `gorm:"type:varchar(32);not null;index"`
	NeedsDesignRevision bool           `gorm:"not null;default:false"`
	DesignRevisionNotes *string
	ReviewReason        *string
	OrderDetail         datatypes.JSON `gorm:"type:jsonb"`
	DesignFiles         datatypes.JSON `gorm:"type:jsonb"`
	TrackingNumber      *string
	LabelURL            *string
	OrderDate           time.Time `gorm:"not null;index"`
	ProductionStartedAt *time.Time
	LoadedForShipmentAt *time.Time
}

func (OrderDTO) TableName() string {
	return "orders"
}

// orderDetailJSON mirrors the marketplace payload stored in order_detail.
// Variations is a pointer so an absent key survives a round trip.
type orderDetailJSON struct {
	Transactions []transactionJSON `json:"transactions"`
}

type transactionJSON struct {
	TransactionID string           `json:"transaction_id"`
	SKU           string           `json:"sku"`
	Quantity      int              `json:"quantity"`
	Title         string           `json:"title"`
	Variations    *[]variationJSON `json:"variations,omitempty"`
}

type variationJSON struct {
	FormattedName  string `json:"formatted_name"`
	FormattedValue string `json:"formatted_value"`
}

type designFileJSON struct {
	LineItemID string `json:"line_item_id"`
	Path       string `json:"path"`
	URL        string `json:"url"`
}

type addressJSON struct {
	Name       string `json:"name,omitempty"`
	Line1      string `json:"line1,omitempty"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`
}

func fromDomain(o *order.Order) (OrderDTO, error) {
	detail := orderDetailJSON{Transactions: make([]transactionJSON, 0)}
	for _, li := range o.Detail().LineItems {
		tx := transactionJSON{
			TransactionID: li.ID,
			SKU:           li.SKU,
			Quantity:      li.Quantity,
			Title:         li.Title,
		}
		if li.HasVariations() {
			variations := make([]variationJSON, len(li.Variations))
			for i, v := range li.Variations {
				variations[i] = variationJSON{FormattedName: v.Name, FormattedValue: v.Value}
			}
			tx.Variations = &variations
		}
		detail.Transactions = append(detail.Transactions, tx)
	}

	files := make([]designFileJSON, 0)
	for _, f := range o.DesignFiles() {
		files = append(files, designFileJSON{LineItemID: f.LineItemID, Path: f.Path, URL: f.URL})
	}

	a := o.ShippingAddress()
	address := addressJSON{
		Name: a.Name, Line1: a.Line1, Line2: a.Line2, City: a.City,
		State: a.State, PostalCode: a.PostalCode, Country: a.Country,
	}

	detailRaw, err := json.Marshal(detail)
	if err != nil {
		return OrderDTO{}, err
	}
	filesRaw, err := json.Marshal(files)
	if err != nil {
		return OrderDTO{}, err
	}
	addressRaw, err := json.Marshal(address)
	if err != nil {
		return OrderDTO{}, err
	}

	return OrderDTO{
		ID:                  o.ID().Bytes(),
		OrderNumber:         o.OrderNumber(),
		StoreID:             o.StoreID().Bytes(),
		CustomerName:        o.Customer().Name,
		CustomerEmail:       o.Customer().Email,
		ShippingAddress:     datatypes.JSON(addressRaw),
		Status:              o.Status().String(),
		NeedsDesignRevision: o.NeedsDesignRevision(),
		DesignRevisionNotes: o.DesignRevisionNotes(),
		ReviewReason:        o.ReviewReason(),
		OrderDetail:         datatypes.JSON(detailRaw),
		DesignFiles:         datatypes.JSON(filesRaw),
		TrackingNumber:      o.TrackingNumber(),
		LabelURL:            o.LabelURL(),
		OrderDate:           o.OrderDate(),
		ProductionStartedAt: o.ProductionStartedAt(),
		LoadedForShipmentAt: o.LoadedForShipmentAt(),
	}, nil
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	storeID, err := kernel.UUIDFromBytes(dto.StoreID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	var detail orderDetailJSON
	if len(dto.OrderDetail) > 0 {
		if err = json.Unmarshal(dto.OrderDetail, &detail); err != nil {
			return nil, err
		}
	}

	var files []designFileJSON
	if len(dto.DesignFiles) > 0 {
		if err = json.Unmarshal(dto.DesignFiles, &files); err != nil {
			return nil, err
		}
	}

	var address addressJSON
	if len(dto.ShippingAddress) > 0 {
		if err = json.Unmarshal(dto.ShippingAddress, &address); err != nil {
			return nil, err
		}
	}

	items := make([]order.LineItem, 0, len(detail.Transactions))
	for _, tx := range detail.Transactions {
		li := order.LineItem{ID: tx.TransactionID, SKU: tx.SKU, Quantity: tx.Quantity, Title: tx.Title}
		if tx.Variations != nil {
			li.Variations = make([]order.Variation, len(*tx.Variations))
			for i, v := range *tx.Variations {
				li.Variations[i] = order.Variation{Name: v.FormattedName, Value: v.FormattedValue}
			}
		}
		items = append(items, li)
	}

	designFiles := make([]order.DesignFile, 0, len(files))
	for _, f := range files {
		designFiles = append(designFiles, order.DesignFile{LineItemID: f.LineItemID, Path: f.Path, URL: f.URL})
	}

	return order.RestoreOrder(order.Snapshot{
		ID:          id,
		OrderNumber: dto.OrderNumber,
		StoreID:     storeID,
		Customer:    order.Customer{Name: dto.CustomerName, Email: dto.CustomerEmail},
		ShippingAddress: order.ShippingAddress{
			Name: address.Name, Line1: address.Line1, Line2: address.Line2, City: address.City,
			State: address.State, PostalCode: address.PostalCode, Country: address.Country,
		},
		Status:              status,
		NeedsDesignRevision: dto.NeedsDesignRevision,
		DesignRevisionNotes: dto.DesignRevisionNotes,
		ReviewReason:        dto.ReviewReason,
		Detail:              order.Detail{LineItems: items},
		DesignFiles:         designFiles,
		TrackingNumber:      dto.TrackingNumber,
		LabelURL:            dto.LabelURL,
		OrderDate:           dto.OrderDate,
		ProductionStartedAt: dto.ProductionStartedAt,
		LoadedForShipmentAt: dto.LoadedForShipmentAt,
	})
}
