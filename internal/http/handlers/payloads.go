package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/preston-bernstein/schedule-import-service/internal/app/imports"
	"github.com/preston-bernstein/schedule-import-service/internal/domain/games"
	"github.com/preston-bernstein/schedule-import-service/internal/schedule"
	"github.com/preston-bernstein/schedule-import-service/internal/wizard"
)

const maxJSONBody = schedule.MaxFileBytes

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
		return games.Sport(fl.Field().String()).Known()
	})
	return v
}

type defaultsPayload struct {
	Sport       *string `json:"sport" validate:"omitempty,sport"`
	SquadID     *int    `json:"squadId" validate:"omitempty,oneof=1010 1020 1030 1040 1050 1060"`
	SegmentType *string `json:"segmentType" validate:"omitempty,min=1"`
	Timezone    *string `json:"timezone" validate:"omitempty,timezone"`
	State       *string `json:"state" validate:"omitempty,len=2,alpha"`
	OrgID       *int    `json:"orgId"`
}

func (p defaultsPayload) update() wizard.DefaultsUpdate {
	u := wizard.DefaultsUpdate{
		SquadID:  p.SquadID,
		Timezone: p.Timezone,
		OrgID:    p.OrgID,
	}
	if p.Sport != nil {
		sport := games.Sport(*p.Sport)
		u.Sport = &sport
	}
	if p.SegmentType != nil {
		st := games.SegmentType(*p.SegmentType)
		u.SegmentType = &st
	}
	if p.State != nil {
		state := strings.ToUpper(*p.State)
		u.State = &state
	}
	return u
}

type createPayload struct {
	FileName string              `json:"fileName"`
	Headers  []string            `json:"headers"`
	Rows     []map[string]string `json:"rows" validate:"required,min=1,max=1000"`
	Mapping  schedule.Mapping    `json:"columnMapping"`
	Defaults defaultsPayload     `json:"defaults"`
}

func (p createPayload) input() imports.CreateInput {
	headers := p.Headers
	if len(headers) == 0 {
		headers = headersFromRows(p.Rows)
	}
	return imports.CreateInput{
		FileName: p.FileName,
		Table:    schedule.Table{Headers: headers, Rows: p.Rows},
		Mapping:  p.Mapping,
		Defaults: p.Defaults.update(),
	}
}

type gamePayload struct {
	Date      *string `json:"date" validate:"omitempty,max=64"`
	Time      *string `json:"time" validate:"omitempty,max=32"`
	HomeScore *int    `json:"homeScore" validate:"omitempty,gte=0"`
	AwayScore *int    `json:"awayScore" validate:"omitempty,gte=0"`
	Selected  *bool   `json:"selected"`
}

func (p gamePayload) update() wizard.GameUpdate {
	return wizard.GameUpdate{
		Date:      p.Date,
		Time:      p.Time,
		HomeScore: p.HomeScore,
		AwayScore: p.AwayScore,
		Selected:  p.Selected,
	}
}

type selectAllPayload struct {
	Selected *bool `json:"selected" validate:"required"`
}

type searchPayload struct {
	Query string `json:"query" validate:"required,min=3,max=256"`
}

type selectPayload struct {
	TeamID int `json:"teamId" validate:"required,gt=0"`
}

// decodePayload reads a JSON body and validates it. Failures wrap imports.ErrInvalidInput.
func decodePayload(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: malformed JSON: %v", imports.ErrInvalidInput, err)
	}
	return validatePayload(dst)
}

func validatePayload(v any) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %s", imports.ErrInvalidInput, describe(err))
	}
	return nil
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}

// headersFromRows collects the keys of every row in a stable order.
func headersFromRows(rows []map[string]string) []string {
	seen := make(map[string]struct{})
	var headers []string
	for _, row := range rows {
		for key := range row {
			if _, ok := seen[key]; !ok {
				seen[key] = struct{}{}
				headers = append(headers, key)
			}
		}
	}
	sort.Strings(headers)
	return headers
}
