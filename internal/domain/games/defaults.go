package games

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	DefaultTimezone = "America/Los_Angeles"
	DefaultOrgID    = OrgHighSchool
)

// Defaults are the batch-wide settings applied to every submitted game.
type Defaults struct {
	Sport       Sport       `json:"sport" validate:"required,sport"`
	SquadID     int         `json:"squadId" validate:"required,oneof=1010 1020 1030 1040 1050 1060"`
	SegmentType SegmentType `json:"segmentType" validate:"required"`
	Timezone    string      `json:"timezone" validate:"required,timezone"`
	State       string      `json:"state,omitempty" validate:"omitempty,len=2,alpha"`
	OrgID       int         `json:"orgId"`
}

// InitialDefaults returns the defaults a new import session starts with.
func InitialDefaults() Defaults {
	return Defaults{
		Timezone: DefaultTimezone,
		OrgID:    DefaultOrgID,
	}
}

// ErrInvalidDefaults marks a Defaults value that cannot be submitted.
var ErrInvalidDefaults = errors.New("invalid defaults")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("sport", func(fl validator.FieldLevel) bool {
		return Sport(fl.Field().String()).Known()
	})
	return v
}

// Validate checks the defaults are complete enough to create games.
func (d Defaults) Validate() error {
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidDefaults, describe(err))
	}
	if !d.Sport.Allows(d.SegmentType) {
		return fmt.Errorf("%w: segmentType %q is not valid for sport %q", ErrInvalidDefaults, d.SegmentType, d.Sport)
	}
	return nil
}

// WithSport sets the sport and resets the segment type to the sport's default when it no longer applies.
func (d Defaults) WithSport(sport Sport) Defaults {
	d.Sport = sport
	if !sport.Allows(d.SegmentType) {
		d.SegmentType = sport.DefaultSegmentType()
	}
	return d
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s failed %s=%s (got %v)", fe.Field(), fe.Tag(), fe.Param(), fe.Value()))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s failed %s (got %v)", fe.Field(), fe.Tag(), fe.Value()))
	}
	return strings.Join(parts, "; ")
}
