package vehicle

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrEmptyMake    = errors.New("vehicle make cannot be empty")
	ErrEmptyModel   = errors.New("vehicle model cannot be empty")
	ErrInvalidYear  = errors.New("vehicle year is out of range")
	ErrNegativeRate = errors.New("daily rate cannot be negative")
	ErrNameTooLong  = errors.New("vehicle make/model is too long (max 255 characters)")
	ErrEmptyColor   = errors.New("vehicle color cannot be empty")
)

const (
	MaxNameLength  = 255
	MinVehicleYear = 1950
	MaxVehicleYear = 2100
)

type Vehicle struct {
	id             uuid.UUID
	make           string
	model          string
	year           int
	color          string
	dailyRateCents int64
	available      bool
}

func NewVehicle(make, model string, year int, color string, dailyRateCents int64, available bool) (*Vehicle, error) {
	make = strings.TrimSpace(make)
	model = strings.TrimSpace(model)
	color = strings.TrimSpace(color)

	if make == "" {
		return nil, ErrEmptyMake
	}
	if model == "" {
		return nil, ErrEmptyModel
	}
	if len(make) > MaxNameLength || len(model) > MaxNameLength {
		return nil, ErrNameTooLong
	}
	if color == "" {
		return nil, ErrEmptyColor
	}
	if year < MinVehicleYear || year > MaxVehicleYear {
		return nil, ErrInvalidYear
	}
	if dailyRateCents < 0 {
		return nil, ErrNegativeRate
	}

	return &Vehicle{
		id:             uuid.New(),
		make:           make,
		model:          model,
		year:           year,
		color:          color,
		dailyRateCents: dailyRateCents,
		available:      available,
	}, nil
}

// IsBookable is the administrative on/off switch only; it says nothing about
// date availability, which is decided against committed reservations.
func (v *Vehicle) IsBookable() bool {
	return v.available
}

func (v *Vehicle) ID() uuid.UUID         { return v.id }
func (v *Vehicle) Make() string          { return v.make }
func (v *Vehicle) Model() string         { return v.model }
func (v *Vehicle) Year() int             { return v.year }
func (v *Vehicle) Color() string         { return v.color }
func (v *Vehicle) DailyRateCents() int64 { return v.dailyRateCents }
func (v *Vehicle) Available() bool       { return v.available }
