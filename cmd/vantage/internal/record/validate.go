// Copyright (C) 2026 Vantage GRC (engineering@vantagegrc.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package record

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError reports which required fields a record is missing
// or carrying invalid values for. Fields holds the JSON field names.
type ValidationError struct {
	OrgID      string
	VendorName string
	Fields     []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("record %s/%s failed validation: missing or invalid fields: %s",
		e.OrgID, e.VendorName, strings.Join(e.Fields, ", "))
}

// requiredView is the validation projection of a Record. A record is
// storable once it identifies the vendor, names an accountable owner,
// rates likelihood/impact, and carries at least one composite score
// (DDQ weighted or bulk-import overall).
type requiredView struct {
	OrgID         string  `validate:"required"`
	VendorName    string  `validate:"required"`
	Service       string  `validate:"required"`
	BusinessOwner string  `validate:"required"`
	Likelihood    string  `validate:"required,oneof=low medium high"`
	Impact        string  `validate:"required,oneof=low medium high"`
	WeightedScore float64 `validate:"required_without=OverallControlScore"`

	OverallControlScore float64
}

// jsonNames maps requiredView struct fields back to record JSON keys
// for error reporting.
var jsonNames = map[string]string{
	"OrgID":         "org_id",
	"VendorName":    "vendor_name",
	"Service":       "service",
	"BusinessOwner": "business_owner",
	"Likelihood":    "likelihood",
	"Impact":        "impact",
	"WeightedScore": "weighted_score/overall_control_score",
}

var fieldValidator = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the record against the storable-record contract.
// It returns a *ValidationError naming every offending field, so a
// caller can report all problems in one pass instead of one at a
// time.
func (r *Record) Validate() error {
	view := requiredView{
		OrgID:               r.OrgID,
		VendorName:          r.VendorName,
		Service:             r.Service,
		BusinessOwner:       r.BusinessOwner,
		Likelihood:          strings.ToLower(r.Likelihood),
		Impact:              strings.ToLower(r.Impact),
		WeightedScore:       r.WeightedScore,
		OverallControlScore: r.OverallControlScore,
	}

	err := fieldValidator.Struct(view)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("record %s/%s failed validation: %w", r.OrgID, r.VendorName, err)
	}

	failed := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		name := jsonNames[fe.StructField()]
		if name == "" {
			name = fe.StructField()
		}
		failed = append(failed, name)
	}
	return &ValidationError{OrgID: r.OrgID, VendorName: r.VendorName, Fields: failed}
}
