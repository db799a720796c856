package models

import "time"

// Stage represents where a pizza order sits in the kitchen pipeline
type Stage string

const (
	StagePlaced   Stage = "Placed"
	StageInMaking Stage = "InMaking"
	StageReady    Stage = "Ready"
	StagePicked   Stage = "Picked"
)

var stageLabels = map[Stage]string{
	StagePlaced:   "Order Placed",
	StageInMaking: "Order in Making",
	StageReady:    "Order Ready",
	StagePicked:   "Order Picked",
}

// Label is the human readable name shown on the tracker board
func (s Stage) Label() string {
	if l, ok := stageLabels[s]; ok {
		return l
	}
	return string(s)
}

type PizzaType string

const (
	TypeVeg    PizzaType = "Veg"
	TypeNonVeg PizzaType = "Non-Veg"
)

func (t PizzaType) Valid() bool { return t == TypeVeg || t == TypeNonVeg }

func PizzaTypes() []PizzaType { return []PizzaType{TypeVeg, TypeNonVeg} }

type Size string

const (
	SizeSmall  Size = "Small"
	SizeMedium Size = "Medium"
	SizeLarge  Size = "Large"
)

func (s Size) Valid() bool { return s == SizeSmall || s == SizeMedium || s == SizeLarge }

func Sizes() []Size { return []Size{SizeSmall, SizeMedium, SizeLarge} }

type Base string

const (
	BaseThin  Base = "Thin"
	BaseThick Base = "Thick"
)

func (b Base) Valid() bool { return b == BaseThin || b == BaseThick }

func Bases() []Base { return []Base{BaseThin, BaseThick} }

// OrderForm is the pending selection used to seed the next placed order
type OrderForm struct {
	Type PizzaType `json:"type" form:"type" binding:"required,enum"`
	Size Size      `json:"size" form:"size" binding:"required,enum"`
	Base Base      `json:"base" form:"base" binding:"required,enum"`
}

// DefaultForm matches what the order form shows before anyone touches it
func DefaultForm() OrderForm {
	return OrderForm{Type: TypeVeg, Size: SizeMedium, Base: BaseThin}
}

type Order struct {
	ID        int       `json:"id"`
	Stage     Stage     `json:"stage"`
	TimeSpent float64   `json:"time_spent"` // minutes since placement
	Type      PizzaType `json:"type"`
	Size      Size      `json:"size"`
	Base      Base      `json:"base"`
}

// HistoryEvent names what happened to an order in a StageHistory row
type HistoryEvent string

const (
	HistoryPlaced    HistoryEvent = "placed"
	HistoryAdvanced  HistoryEvent = "advanced"
	HistoryCancelled HistoryEvent = "cancelled"
)

// StageHistory tracks every lifecycle change of an order
type StageHistory struct {
	ID        uint         `json:"id" gorm:"primaryKey"`
	OrderID   int          `json:"order_id" gorm:"index;not null"`
	Event     HistoryEvent `json:"event" gorm:"not null"`
	FromStage Stage        `json:"from_stage"`
	ToStage   Stage        `json:"to_stage"`
	TimeSpent float64      `json:"time_spent"`
	CreatedAt time.Time    `json:"created_at"`
}
