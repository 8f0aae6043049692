// Package forms holds the validation schemas of every screen and the
// per-field error state a screen keeps while the user types.
package forms

import (
	"regexp"

	"spese-client/internal/validate"
)

// Field names.
const (
	FieldUsername        = "username"
	FieldPassword        = "password"
	FieldName            = "name"
	FieldEmail           = "email"
	FieldWhatsApp        = "whatsapp"
	FieldClinicName      = "clinicName"
	FieldCNPJ            = "cnpj"
	FieldAddress         = "address"
	FieldConfirmPassword = "confirmPassword"
	FieldAmount          = "amount"
	FieldDescription     = "description"
	FieldSearch          = "search"
)

// MsgPasswordsDoNotMatch is reported on confirmPassword when it differs from
// password.
const MsgPasswordsDoNotMatch = "Passwords do not match"

// AmountPattern accepts a non-negative decimal with at most two fraction
// digits.
var AmountPattern = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)

var (
	Login = validate.MustSchema(validate.Schema{
		FieldUsername: {
			Kind:     validate.KindEmail,
			Required: true,
			Message:  "Please enter a valid email address",
		},
		FieldPassword: {
			Kind:      validate.KindString,
			Required:  true,
			MinLength: 6,
			Message:   "Password must be at least 6 characters",
		},
	})

	// RegisterPersonal is step one of registration.
	RegisterPersonal = validate.MustSchema(validate.Schema{
		FieldName:     {Kind: validate.KindString, Required: true, Message: "Please enter your name"},
		FieldEmail:    {Kind: validate.KindEmail, Required: true, Message: "Please enter a valid email address"},
		FieldWhatsApp: {Kind: validate.KindString, Required: true, Message: "Please enter your WhatsApp number"},
	})

	// RegisterClinic is step two of registration.
	RegisterClinic = validate.MustSchema(validate.Schema{
		FieldClinicName: {Kind: validate.KindString, Required: true, Message: "Please enter the clinic name"},
		FieldCNPJ:       {Kind: validate.KindString, Required: true, Message: "Please enter the clinic CNPJ"},
		FieldAddress:    {Kind: validate.KindString, Required: true, Message: "Please enter the clinic address"},
	})

	// RegisterPassword is step three of registration.
	RegisterPassword = validate.MustSchema(validate.Schema{
		FieldPassword: {
			Kind:      validate.KindString,
			Required:  true,
			MinLength: 6,
			Message:   "Password must be at least 6 characters",
		},
		FieldConfirmPassword: {Kind: validate.KindString, Required: true, Message: "Please confirm your password"},
	})

	NewExpense = validate.MustSchema(validate.Schema{
		FieldName: {Kind: validate.KindString, Required: true, Message: "Name is required"},
		FieldAmount: {
			Kind:     validate.KindString,
			Required: true,
			Pattern:  AmountPattern,
			Message:  "Please enter a valid amount (e.g. 10.50)",
		},
		FieldDescription: {
			Kind:      validate.KindString,
			Required:  true,
			MinLength: 3,
			Message:   "Description must be at least 3 characters",
		},
	})

	Search = validate.MustSchema(validate.Schema{
		FieldSearch: {Kind: validate.KindString, MaxLength: 50, Message: "Search query is too long"},
	})
)
