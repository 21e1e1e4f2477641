package mmarr

type arrayError string

var _ error = arrayError("")

func (err arrayError) Error() string {
	return string(err)
}

const (
	ErrItemSize    = arrayError("item must be at least 1 byte")
	ErrPointerType = arrayError("item type must not contain pointers")
	ErrClosed      = arrayError("array is closed")
)
