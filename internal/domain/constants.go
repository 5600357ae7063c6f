package domain

import "github.com/shopspring/decimal"

// Default configuration values
const (
	DefaultBusinessOpen  = "09:00"
	DefaultBusinessClose = "17:00"
	DefaultSlotMinutes   = 120
	DefaultMaxImages     = 5
	DefaultMaxImageBytes = 5 << 20
)

// Business validation constants
const (
	MinSlotMinutes     = 5
	MaxSlotMinutes     = 480 // 8 hours
	MinNumberOfLogs    = 1
	MaxLogItems        = 50
	MaxNotesLength     = 2000
	MaxReasonLength    = 500
	MaxWoodTypeLength  = 100
	CubicInchesPerFoot = 144
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

var (
	// MinTotalCubicFeet минимальный суммарный объём заявки
	MinTotalCubicFeet = decimal.RequireFromString("0.1")

	// MinLogItemCubicFeet минимальный объём позиции, рассчитанный по размерам
	MinLogItemCubicFeet = decimal.RequireFromString("0.01")
)
