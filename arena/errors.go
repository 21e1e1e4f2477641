package arena

import "github.com/webbmaffian/go-own/mmarr"

// ErrPointerType is returned when an off-heap arena is requested for a node
// type the garbage collector would need to scan.
var ErrPointerType = mmarr.ErrPointerType
