package models

type PurchaseOrderStatus string

const (
	PurchaseOrderStatusDraft    PurchaseOrderStatus = "Draft"
	PurchaseOrderStatusOrdered  PurchaseOrderStatus = "Ordered"
	PurchaseOrderStatusReceived PurchaseOrderStatus = "Received"
)

func (s PurchaseOrderStatus) valid() bool {
	switch s {
	case PurchaseOrderStatusDraft, PurchaseOrderStatusOrdered, PurchaseOrderStatusReceived:
		return true
	}
	return false
}

type SellOrderStatus string

const (
	SellOrderStatusDraft     SellOrderStatus = "Draft"
	SellOrderStatusConfirmed SellOrderStatus = "Confirmed"
	SellOrderStatusShipped   SellOrderStatus = "Shipped"
)

func (s SellOrderStatus) valid() bool {
	switch s {
	case SellOrderStatusDraft, SellOrderStatusConfirmed, SellOrderStatusShipped:
		return true
	}
	return false
}

type WarehouseType string

const (
	WarehouseTypeMain   WarehouseType = "Main"
	WarehouseTypeBranch WarehouseType = "Branch"
)

func (t WarehouseType) valid() bool {
	return t == WarehouseTypeMain || t == WarehouseTypeBranch
}

type PaymentType string

const (
	PaymentTypeIncoming PaymentType = "Incoming"
	PaymentTypeOutgoing PaymentType = "Outgoing"
)

func (t PaymentType) valid() bool {
	return t == PaymentTypeIncoming || t == PaymentTypeOutgoing
}

type PaymentCategory string

const (
	PaymentCategoryProducts           PaymentCategory = "Products"
	PaymentCategoryTransportationFees PaymentCategory = "TransportationFees"
	PaymentCategoryCustomFees         PaymentCategory = "CustomFees"
	PaymentCategoryAdditionalFees     PaymentCategory = "AdditionalFees"
	PaymentCategoryManual             PaymentCategory = "Manual"
)

func (c PaymentCategory) valid() bool {
	switch c {
	case PaymentCategoryProducts, PaymentCategoryTransportationFees,
		PaymentCategoryCustomFees, PaymentCategoryAdditionalFees, PaymentCategoryManual:
		return true
	}
	return false
}
