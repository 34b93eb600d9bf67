package core

import "time"

// ItemCategory is the fixed set of stock categories. It matches the
// categories the intake form offers; anything else is rejected at intake.
type ItemCategory string

const (
	CategoryDairy      ItemCategory = "Dairy"
	CategoryMeat       ItemCategory = "Meat"
	CategoryVegetables ItemCategory = "Vegetables"
	CategoryFruits     ItemCategory = "Fruits"
	CategoryGrains     ItemCategory = "Grains"
	CategoryBeverages  ItemCategory = "Beverages"
	CategoryOther      ItemCategory = "Other"
)

// Categories lists every valid ItemCategory in display order.
var Categories = []ItemCategory{
	CategoryDairy, CategoryMeat, CategoryVegetables, CategoryFruits,
	CategoryGrains, CategoryBeverages, CategoryOther,
}

func (c ItemCategory) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

// WasteReason is the fixed set of reasons a waste entry may carry.
type WasteReason string

const (
	ReasonExpired        WasteReason = "Expired"
	ReasonSpoiled        WasteReason = "Spoiled"
	ReasonDamaged        WasteReason = "Damaged"
	ReasonOverripe       WasteReason = "Overripe"
	ReasonContaminated   WasteReason = "Contaminated"
	ReasonCustomerReturn WasteReason = "Customer Return"
	ReasonOtherWaste     WasteReason = "Other"
)

var WasteReasons = []WasteReason{
	ReasonExpired, ReasonSpoiled, ReasonDamaged, ReasonOverripe,
	ReasonContaminated, ReasonCustomerReturn, ReasonOtherWaste,
}

func (r WasteReason) Valid() bool {
	for _, v := range WasteReasons {
		if r == v {
			return true
		}
	}
	return false
}

// Destination is the fixed set of redistribution targets.
type Destination string

const (
	DestFoodBank           Destination = "Local Food Bank"
	DestCommunityKitchen   Destination = "Community Kitchen"
	DestAnimalShelter      Destination = "Animal Shelter"
	DestCompostingFacility Destination = "Composting Facility"
	DestCharity            Destination = "Charity Organization"
	DestStaff              Destination = "Staff Distribution"
	DestOther              Destination = "Other"
)

var Destinations = []Destination{
	DestFoodBank, DestCommunityKitchen, DestAnimalShelter,
	DestCompostingFacility, DestCharity, DestStaff, DestOther,
}

func (d Destination) Valid() bool {
	for _, v := range Destinations {
		if d == v {
			return true
		}
	}
	return false
}

// Item is a stock-keeping unit. Quantity is the current on-hand count and is
// only ever decremented through ReservationService; direct sets go through
// ItemService.Update (administrative override). SupplierID is a weak
// reference — the supplier row may not exist, in which case SupplierName is
// nil on reads.
type Item struct {
	ID           int          `json:"item_id"`
	Name         string       `json:"name"`
	Category     ItemCategory `json:"category"`
	Quantity     int          `json:"quantity"`
	PurchaseDate time.Time    `json:"purchase_date"`
	ExpiryDate   time.Time    `json:"expiry_date"`
	SupplierID   *int         `json:"supplier_id,omitempty"`
	SupplierName *string      `json:"supplier_name,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// ItemInput carries the mutable fields of an Item for create and update.
type ItemInput struct {
	Name         string
	Category     ItemCategory
	Quantity     int
	PurchaseDate string // YYYY-MM-DD
	ExpiryDate   string // YYYY-MM-DD
	SupplierID   *int
}

// Supplier is a directory entry. Items reference suppliers by ID only;
// supplier existence is never enforced.
type Supplier struct {
	ID        int       `json:"supplier_id"`
	Name      string    `json:"name"`
	Contact   *string   `json:"contact,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// OutflowChannel names the three ways stock leaves inventory.
type OutflowChannel string

const (
	ChannelSale           OutflowChannel = "sale"
	ChannelWaste          OutflowChannel = "waste"
	ChannelRedistribution OutflowChannel = "redistribution"
)

func (c OutflowChannel) Valid() bool {
	switch c {
	case ChannelSale, ChannelWaste, ChannelRedistribution:
		return true
	}
	return false
}

// OutflowRecord is the audit record paired with a reservation. Exactly one of
// Reason / Destination is set, depending on Channel. ItemID is a non-owning
// reference: deleting the item later leaves the record in place.
type OutflowRecord struct {
	ID          int            `json:"id"`
	Channel     OutflowChannel `json:"channel"`
	ItemID      int            `json:"item_id"`
	Quantity    int            `json:"quantity"`
	Date        time.Time      `json:"date"`
	Reason      *WasteReason   `json:"reason,omitempty"`
	Destination *Destination   `json:"destination,omitempty"`
}

// SaleEntry is a sales-history row joined with best-effort item details.
type SaleEntry struct {
	ID           int       `json:"sale_id"`
	ItemID       int       `json:"item_id"`
	QuantitySold int       `json:"quantity_sold"`
	SaleDate     time.Time `json:"sale_date"`
	ItemName     string    `json:"item_name"`
	Category     string    `json:"category"`
}

// WasteEntry is a waste-log row joined with best-effort item details.
type WasteEntry struct {
	ID             int         `json:"waste_id"`
	ItemID         int         `json:"item_id"`
	QuantityWasted int         `json:"quantity_wasted"`
	Reason         WasteReason `json:"reason"`
	DateLogged     time.Time   `json:"date_logged"`
	ItemName       string      `json:"item_name"`
	Category       string      `json:"category"`
}

// RedistributionEntry is a redistribution-history row joined with
// best-effort item details.
type RedistributionEntry struct {
	ID          int         `json:"redistribution_id"`
	ItemID      int         `json:"item_id"`
	Quantity    int         `json:"quantity"`
	Destination Destination `json:"destination"`
	DateSent    time.Time   `json:"date_sent"`
	ItemName    string      `json:"item_name"`
	Category    string      `json:"category"`
}

// Markers used when a ledger row references an item that has since been
// deleted. Reports degrade to these instead of dropping the row.
const (
	unknownItemName = "Unknown Item"
	unknownCategory = "Unknown"
)
