package domain

import "errors"

var (
	ErrForbidden          = errors.New("access forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidOTP         = errors.New("invalid or expired otp")
	ErrNotVerified        = errors.New("account pending otp verification")

	ErrProductNotFound  = errors.New("product not found")
	ErrEnquiryNotFound  = errors.New("enquiry not found")
	ErrFeedbackNotFound = errors.New("feedback not found")
	ErrOfferNotFound    = errors.New("offer not found")
	ErrRecordNotFound   = errors.New("record not found")

	ErrAlreadyLiked    = errors.New("offer already liked")
	ErrAlreadyReported = errors.New("feedback already reported")
)
