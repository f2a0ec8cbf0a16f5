package fare

import "fmt"

// DomainError reports a pricing request the engine cannot serve: an
// unknown vehicle type, or a type whose pricing is switched off.
type DomainError struct {
	VehicleType string
	Reason      string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("vehicle type %q: %s", e.VehicleType, e.Reason)
}
