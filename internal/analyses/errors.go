package analyses

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrJDRequired        = errors.New("job description is required")
	ErrInvalidEntry      = errors.New("entry requires id and jdText")
	ErrInvalidConfidence = errors.New("confidence must be know or practice")
	ErrUnknownSkill      = errors.New("skill not part of this analysis")
	ErrUnknownSection    = errors.New("unknown export section")
)

const (
	ErrorCodeValidation = "validation_error"
	ErrorCodeNotFound   = "not_found"
	ErrorCodeStorage    = "storage_error"
	ErrorCodeInternal   = "internal_error"
)
